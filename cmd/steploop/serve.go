package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/osokolkov/steploop/internal/core"
	"github.com/osokolkov/steploop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeDemo   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the steploop SSH server",
	Long: `Start an SSH server that serves a demo to remote terminals.

Each SSH connection gets its own session sized to its terminal. Run
reports from all sessions land in the same database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.steploop/host_key

Examples:
  steploop serve                           # Serve bounce on :23234
  steploop serve --ssh :2222               # Listen on port 2222
  steploop serve --demo starfield          # Serve a different demo
  steploop serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeDemo, "demo", "bounce", "Demo to serve")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	loop := core.DefaultConfig()
	loop.UpdateRate = flagUPS
	loop.FrameRate = flagFPS
	loop.MaxCatchUp = flagMaxCatchUp

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		DemoID:      flagServeDemo,
		Loop:        loop,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting steploop SSH server on %s\n", cfg.Address)
	fmt.Printf("Serving demo: %s\n", cfg.DemoID)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
