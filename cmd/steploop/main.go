// steploop is a terminal playground for fixed-timestep game loops.
//
// Usage:
//
//	steploop list              - List available demos
//	steploop run <demo>        - Run a demo interactively
//	steploop bench <demo>      - Run a demo headless and report loop stats
//	steploop runs [demo]       - Show recent run reports
//	steploop report            - Browse run reports interactively
//	steploop serve             - Start SSH server for remote sessions
//
// Global flags:
//
//	--ups <rate>         - Fixed update rate (default: 50)
//	--fps <rate>         - Render frame rate (default: 60)
//	--max-catchup <n>    - Max updates per frame after a stall (default: 5)
//	--seed <value>       - RNG seed for reproducible demos
//	--db <path>          - Run reports database path (default: ~/.steploop/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import demos to register them
	_ "github.com/osokolkov/steploop/internal/demos/bounce"
	_ "github.com/osokolkov/steploop/internal/demos/starfield"
)

var (
	// Global flags
	flagUPS        int
	flagFPS        int
	flagMaxCatchUp int
	flagSeed       int64
	flagDBPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "steploop",
	Short: "Fixed-timestep loop playground for your terminal",
	Long: `steploop runs small terminal demos on a fixed-timestep loop: the
simulation always advances in identical increments while rendering runs
at its own rate, with interpolation smoothing the gap.

Available commands:
  list     - Show all available demos
  run      - Run a demo interactively
  bench    - Run a demo headless and report timing statistics
  runs     - Show recent run reports
  report   - Interactive run report browser
  serve    - Start SSH server for remote sessions

Examples:
  steploop list
  steploop run bounce
  steploop run starfield --preset cinema
  steploop bench bounce --duration 10s
  steploop runs bounce
  steploop serve --addr :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagUPS, "ups", 50, "Fixed update rate (updates per second)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render frame rate (frames per second)")
	rootCmd.PersistentFlags().IntVar(&flagMaxCatchUp, "max-catchup", 5, "Max updates per frame after a stall")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.steploop/runs.db", "Path to run reports database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}
