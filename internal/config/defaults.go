package config

import (
	_ "embed"
)

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

//go:embed defaults/starfield.yaml
var defaultStarfieldYAML []byte

// DefaultLoopConfig returns the default timing configuration.
func DefaultLoopConfig() LoopConfig {
	return LoopForPreset(PresetSmooth)
}

// DefaultBounceConfig returns the default bounce demo configuration.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Loop: DefaultLoopConfig(),
		Physics: BouncePhysics{
			Gravity:     30.0,
			Restitution: 0.85,
			KickImpulse: 18.0,
			MaxSpeed:    60.0,
		},
		Balls: 6,
	}
}

// DefaultStarfieldConfig returns the default starfield demo configuration.
func DefaultStarfieldConfig() StarfieldConfig {
	return StarfieldConfig{
		Loop:      DefaultLoopConfig(),
		Stars:     120,
		Layers:    3,
		BaseSpeed: 8.0,
	}
}
