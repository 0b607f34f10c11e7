package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/osokolkov/steploop/internal/core"
	"github.com/osokolkov/steploop/internal/registry"
	"github.com/osokolkov/steploop/internal/storage"
	"github.com/osokolkov/steploop/internal/timestep"
)

var (
	flagBenchDuration time.Duration
	flagBenchNoSave   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <demo>",
	Short: "Run a demo headless and report timing statistics",
	Long: `Run the specified demo without a display for a fixed duration,
then report how the loop actually behaved: achieved update and frame
rates, and how many backlog updates were dropped at the catch-up cap.

The result is saved as a run report unless --no-save is given.

Examples:
  steploop bench bounce
  steploop bench starfield --duration 30s
  steploop bench bounce --ups 120 --fps 30
  steploop bench bounce --no-save`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&flagBenchDuration, "duration", 10*time.Second, "How long to run the loop")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not save a run report")
}

func runBench(cmd *cobra.Command, args []string) {
	demoID := args[0]

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bench",
	})

	if !registry.Exists(demoID) {
		logger.Error("unknown demo", "demo", demoID)
		os.Exit(1)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		logger.Error("cannot create demo", "error", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	cfg.UpdateRate = flagUPS
	cfg.FrameRate = flagFPS
	cfg.MaxCatchUp = flagMaxCatchUp
	cfg.Seed = flagSeed
	demo.Reset(cfg)

	// Render into an off-screen buffer so the bench exercises the same
	// per-frame work as the interactive path
	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	input := core.NewInputFrame()

	loop, err := timestep.NewLoop(
		timestep.LoopConfig{
			UpdateRate: cfg.UpdateRate,
			FrameRate:  cfg.FrameRate,
			MaxCatchUp: cfg.MaxCatchUp,
		},
		func(dt time.Duration) { demo.Step(input, dt) },
		func(alpha float64) {
			screen.Clear()
			demo.Render(screen, alpha)
		},
	)
	if err != nil {
		logger.Error("cannot create loop", "error", err)
		os.Exit(1)
	}

	logger.Info("running",
		"demo", demoID,
		"ups", cfg.UpdateRate,
		"fps", cfg.FrameRate,
		"duration", flagBenchDuration,
	)

	ctx, cancel := context.WithTimeout(context.Background(), flagBenchDuration)
	defer cancel()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("loop error", "error", err)
		os.Exit(1)
	}

	stats := loop.Stats()
	logger.Info("finished",
		"updates", stats.Updates,
		"frames", stats.Frames,
		"dropped", stats.Dropped,
		"achieved_ups", fmt.Sprintf("%.2f", stats.UpdatesPerSecond()),
		"achieved_fps", fmt.Sprintf("%.2f", stats.FramesPerSecond()),
	)

	if flagBenchNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return
	}
	defer store.Close()

	report := storage.RunReport{
		DemoID:     demoID,
		UpdateRate: cfg.UpdateRate,
		FrameRate:  cfg.FrameRate,
		MaxCatchUp: cfg.MaxCatchUp,
		Frames:     int64(stats.Frames),
		Updates:    int64(stats.Updates),
		Renders:    int64(stats.Renders),
		Dropped:    int64(stats.Dropped),
		WallMillis: stats.Wall.Milliseconds(),
	}
	if _, err := store.SaveRun(report); err != nil {
		logger.Warn("could not save run report", "error", err)
		return
	}
	logger.Info("run report saved", "db", flagDBPath)
}
