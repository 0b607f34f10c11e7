package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/osokolkov/steploop/internal/config"
	"github.com/osokolkov/steploop/internal/core"
	"github.com/osokolkov/steploop/internal/demos/bounce"
	"github.com/osokolkov/steploop/internal/demos/starfield"
	"github.com/osokolkov/steploop/internal/platform/tui"
	"github.com/osokolkov/steploop/internal/registry"
	"github.com/osokolkov/steploop/internal/storage"
)

var (
	flagConfig   string
	flagPreset   string
	flagNoInterp bool
)

var runCmd = &cobra.Command{
	Use:   "run <demo>",
	Short: "Run a demo interactively",
	Long: `Start the specified demo in the terminal.

Controls:
  Arrows/WASD - Steer (demo specific)
  Space       - Kick (demo specific)
  I           - Toggle render interpolation
  P/Esc       - Pause
  R           - Restart
  Q/Ctrl+C    - Quit

Rate presets:
  smooth   - 50 ups / 60 fps, interpolated (default)
  cinema   - 24 ups / 60 fps, interpolation carries the gap
  battery  - 25 ups / 30 fps, no interpolation
  lockstep - 60 ups / 60 fps, one update per frame

Examples:
  steploop run bounce
  steploop run bounce --preset cinema
  steploop run starfield --ups 30 --fps 60
  steploop run bounce --no-interp
  steploop run bounce --config ./my-bounce.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Rate preset: smooth, cinema, battery, lockstep")
	runCmd.Flags().BoolVar(&flagNoInterp, "no-interp", false, "Disable render interpolation")
}

// loopFromFlags builds the loop configuration from the preset and any
// explicit flag overrides. Explicit flags win over the preset.
func loopFromFlags(cmd *cobra.Command) (config.LoopConfig, error) {
	loop := config.DefaultLoopConfig()

	if flagPreset != "" {
		preset := config.RatePreset(flagPreset)
		if !config.KnownPreset(preset) {
			return loop, fmt.Errorf("unknown preset %q", flagPreset)
		}
		loop = config.LoopForPreset(preset)
	}

	if cmd.Flags().Changed("ups") {
		loop.UpdateRate = flagUPS
	}
	if cmd.Flags().Changed("fps") {
		loop.FrameRate = flagFPS
	}
	if cmd.Flags().Changed("max-catchup") {
		loop.MaxCatchUp = flagMaxCatchUp
	}
	if flagNoInterp {
		loop.Interpolate = false
	}

	if err := loop.Validate(); err != nil {
		return loop, err
	}
	return loop, nil
}

func runRun(cmd *cobra.Command, args []string) {
	demoID := args[0]

	// Check if demo exists
	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'steploop list' to see available demos.")
		os.Exit(1)
	}

	loop, err := loopFromFlags(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size, one line reserved for the HUD
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	height--
	if height < 1 {
		height = 1
	}

	cfg := core.RuntimeConfig{
		ScreenW:     width,
		ScreenH:     height,
		UpdateRate:  loop.UpdateRate,
		FrameRate:   loop.FrameRate,
		MaxCatchUp:  loop.MaxCatchUp,
		Interpolate: loop.Interpolate,
		Seed:        flagSeed,
	}

	// Set config path for demos before creation
	switch demoID {
	case "bounce":
		bounce.SetConfigPath(flagConfig)
	case "starfield":
		starfield.SetConfigPath(flagConfig)
	}

	// Create demo instance
	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}

	// Open run report storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - demo still works
		store = nil
	}

	// Run the demo
	runErr := tui.Run(demo, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", runErr)
		os.Exit(1)
	}
}
