package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/osokolkov/steploop/internal/platform/tui"
	"github.com/osokolkov/steploop/internal/storage"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Browse run reports interactively",
	Long: `Open an interactive browser over recorded run reports, grouped
by demo. Use tab or the arrow keys to switch demos.

Examples:
  steploop report
  steploop report --db ./runs.db`,
	Run: runReport,
}

func runReport(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunReportBrowser(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running report browser: %v\n", err)
		os.Exit(1)
	}
}
