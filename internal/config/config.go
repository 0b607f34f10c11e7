// Package config provides YAML-based demo configuration loading and
// rate preset management for the steploop platform.
package config

import "fmt"

// LoopConfig contains the timing parameters shared by all demos.
type LoopConfig struct {
	UpdateRate  int  `yaml:"update_rate"`   // Fixed simulation updates per second
	FrameRate   int  `yaml:"frame_rate"`    // Render frames per second
	MaxCatchUp  int  `yaml:"max_catch_up"`  // Max logic steps per frame after a stall
	Interpolate bool `yaml:"interpolate"`   // Lerp entities on zero-step frames
}

// Validate rejects configurations the scheduler would refuse anyway,
// so mistakes surface at load time with a readable message.
func (c LoopConfig) Validate() error {
	if c.UpdateRate <= 0 {
		return fmt.Errorf("config: update_rate must be positive, got %d", c.UpdateRate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.FrameRate)
	}
	if c.MaxCatchUp <= 0 {
		return fmt.Errorf("config: max_catch_up must be positive, got %d", c.MaxCatchUp)
	}
	return nil
}

// BounceConfig contains all configuration for the bounce demo.
type BounceConfig struct {
	Loop    LoopConfig    `yaml:"loop"`
	Physics BouncePhysics `yaml:"physics"`
	Balls   int           `yaml:"balls"`
}

// BouncePhysics defines physics parameters for the bounce demo.
type BouncePhysics struct {
	Gravity     float64 `yaml:"gravity"`      // Cells per second squared
	Restitution float64 `yaml:"restitution"`  // Velocity kept after a wall hit
	KickImpulse float64 `yaml:"kick_impulse"` // Upward impulse on ActionKick
	MaxSpeed    float64 `yaml:"max_speed"`    // Velocity magnitude clamp
}

// StarfieldConfig contains all configuration for the starfield demo.
type StarfieldConfig struct {
	Loop      LoopConfig `yaml:"loop"`
	Stars     int        `yaml:"stars"`
	Layers    int        `yaml:"layers"`     // Parallax depth layers
	BaseSpeed float64    `yaml:"base_speed"` // Cells per second for the deepest layer
}

// RatePreset represents a named timing profile.
type RatePreset string

const (
	PresetSmooth   RatePreset = "smooth"   // 50 ups, 60 fps, interpolated
	PresetCinema   RatePreset = "cinema"   // 24 ups, 60 fps, interpolation carries the gap
	PresetBattery  RatePreset = "battery"  // 25 ups, 30 fps, no interpolation
	PresetLockstep RatePreset = "lockstep" // update and render rates matched
)

// LoopForPreset returns the loop configuration for a preset.
// Unknown presets fall back to smooth.
func LoopForPreset(preset RatePreset) LoopConfig {
	switch preset {
	case PresetCinema:
		return LoopConfig{UpdateRate: 24, FrameRate: 60, MaxCatchUp: 5, Interpolate: true}
	case PresetBattery:
		return LoopConfig{UpdateRate: 25, FrameRate: 30, MaxCatchUp: 5, Interpolate: false}
	case PresetLockstep:
		return LoopConfig{UpdateRate: 60, FrameRate: 60, MaxCatchUp: 5, Interpolate: false}
	default:
		return LoopConfig{UpdateRate: 50, FrameRate: 60, MaxCatchUp: 5, Interpolate: true}
	}
}

// KnownPreset reports whether the preset name is recognized.
func KnownPreset(preset RatePreset) bool {
	switch preset {
	case PresetSmooth, PresetCinema, PresetBattery, PresetLockstep:
		return true
	}
	return false
}
