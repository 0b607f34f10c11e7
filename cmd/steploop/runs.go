package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osokolkov/steploop/internal/registry"
	"github.com/osokolkov/steploop/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [demo]",
	Short: "Show recent run reports",
	Long: `Display recent run reports: configured rates against what the
loop actually achieved. With a demo ID, shows runs for that demo only.

Examples:
  steploop runs
  steploop runs bounce
  steploop runs bounce --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Maximum number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	demoID := ""
	if len(args) > 0 {
		demoID = args[0]
		if !registry.Exists(demoID) {
			fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
			fmt.Fprintln(os.Stderr, "Run 'steploop list' to see available demos.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.RunReport
	if demoID != "" {
		runs, err = store.RunsForDemo(demoID, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if demoID != "" {
		fmt.Printf("Recent runs - %s\n", demoID)
	} else {
		fmt.Println("Recent runs")
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'steploop run <demo>' or 'steploop bench <demo>' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-10s  %-9s  %-13s  %-8s  %-8s  %s\n",
		"Demo", "Rates", "Achieved", "Updates", "Dropped", "Date")
	fmt.Printf("  %-10s  %-9s  %-13s  %-8s  %-8s  %s\n",
		"----", "-----", "--------", "-------", "-------", "----")

	// Print runs
	for _, r := range runs {
		fmt.Printf("  %-10s  %-9s  %-13s  %-8d  %-8d  %s\n",
			r.DemoID,
			fmt.Sprintf("%d/%d", r.UpdateRate, r.FrameRate),
			fmt.Sprintf("%.1f/%.1f", r.AchievedUPS(), r.AchievedFPS()),
			r.Updates,
			r.Dropped,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if demoID != "" {
		stats, statsErr := store.StatsForDemo(demoID)
		if statsErr == nil && stats.RunCount > 0 {
			fmt.Println()
			fmt.Printf("Total: %d runs, %d updates, %d dropped\n",
				stats.RunCount, stats.TotalUpdates, stats.TotalDropped)
		}
	}
}
