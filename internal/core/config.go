// Package core provides fundamental types shared by demos and the
// platform layer. It contains no external dependencies (especially no
// Bubble Tea) to keep demo logic pure and testable.
package core

// RuntimeConfig contains configuration passed to demos at initialization
// and to the platform driving them.
type RuntimeConfig struct {
	ScreenW     int   // Screen width in characters
	ScreenH     int   // Screen height in characters
	UpdateRate  int   // Fixed simulation updates per second (default 50)
	FrameRate   int   // Render frames per second (default 60)
	MaxCatchUp  int   // Max logic steps per frame after a stall
	Interpolate bool  // Smooth rendering between updates on idle frames
	Seed        int64 // RNG seed for deterministic simulation (0 = time-based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		UpdateRate:  50,
		FrameRate:   60,
		MaxCatchUp:  5,
		Interpolate: true,
		Seed:        0,
	}
}

// DemoState represents the current state of a demo.
// Returned by Demo.State() to communicate status to the platform.
type DemoState struct {
	Ticks  int  // Fixed updates executed since Reset
	Paused bool // Whether the demo is paused
	Done   bool // Whether the demo has finished
}

// StepResult is returned by Demo.Step() after each fixed update.
type StepResult struct {
	State DemoState
}
