// Package starfield implements a parallax star scroller. Layers move at
// different fixed-step speeds, which makes dropped or capped updates
// immediately visible as a hitch in the scroll.
package starfield

import (
	"math"
	"math/rand"
	"time"

	"github.com/osokolkov/steploop/internal/config"
	"github.com/osokolkov/steploop/internal/core"
	"github.com/osokolkov/steploop/internal/registry"
)

func init() {
	registry.Register("starfield", func() registry.Demo { return New() })
}

var configPath string

// SetConfigPath sets a custom config file path for the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// layerLooks maps a parallax layer to its glyph and color, nearest last.
var layerLooks = []struct {
	r rune
	c core.Color
}{
	{'.', core.ColorGray},
	{'+', core.ColorWhite},
	{'*', core.ColorBrightWhite},
}

type star struct {
	x, px float64 // current and previous-update x position
	y     int
	layer int
}

// Demo is the starfield demo state.
type Demo struct {
	cfg    config.StarfieldConfig
	rng    *rand.Rand
	stars  []star
	width  int
	height int
	boost  float64 // speed multiplier driven by input

	ticks  int
	paused bool
}

// New creates an uninitialized starfield demo.
func New() *Demo {
	return &Demo{}
}

// ID returns the demo identifier.
func (d *Demo) ID() string {
	return "starfield"
}

// Title returns the display name.
func (d *Demo) Title() string {
	return "Starfield"
}

// Reset initializes the field from config and the run seed.
func (d *Demo) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadStarfield(configPath)
	if err != nil {
		cfg = config.DefaultStarfieldConfig()
	}
	if cfg.Layers > len(layerLooks) {
		cfg.Layers = len(layerLooks)
	}
	if cfg.Layers < 1 {
		cfg.Layers = 1
	}
	d.cfg = cfg

	seed := rc.Seed
	if seed == 0 {
		seed = 1
	}
	d.rng = rand.New(rand.NewSource(seed))

	d.width = core.Max(rc.ScreenW, 8)
	d.height = core.Max(rc.ScreenH, 4)
	d.boost = 1.0

	d.stars = make([]star, cfg.Stars)
	for i := range d.stars {
		d.stars[i] = star{
			x:     d.rng.Float64() * float64(d.width),
			y:     d.rng.Intn(d.height),
			layer: d.rng.Intn(cfg.Layers),
		}
		d.stars[i].px = d.stars[i].x
	}

	d.ticks = 0
	d.paused = false
}

// layerSpeed returns cells-per-second for a layer; nearer layers scroll
// faster.
func (d *Demo) layerSpeed(layer int) float64 {
	return d.cfg.BaseSpeed * float64(layer+1) * d.boost
}

// Step advances the scroll by one fixed update.
func (d *Demo) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Has(core.ActionPause) {
		d.paused = !d.paused
	}
	if d.paused {
		return core.StepResult{State: d.State()}
	}

	if in.Has(core.ActionRight) || in.Has(core.ActionUp) {
		d.boost = core.ClampF(d.boost*1.1, 0.25, 8)
	}
	if in.Has(core.ActionLeft) || in.Has(core.ActionDown) {
		d.boost = core.ClampF(d.boost/1.1, 0.25, 8)
	}

	dtSec := dt.Seconds()
	for i := range d.stars {
		s := &d.stars[i]
		s.px = s.x
		s.x -= d.layerSpeed(s.layer) * dtSec
		if s.x < 0 {
			// Respawn on the right edge at a new row. The previous
			// position resets too so the wrap is not lerped across
			// the whole screen.
			s.x += float64(d.width)
			s.px = s.x
			s.y = d.rng.Intn(d.height)
		}
	}

	d.ticks++
	return core.StepResult{State: d.State()}
}

// Render draws every star lerped between its previous and current
// position by alpha.
func (d *Demo) Render(dst *core.Screen, alpha float64) {
	for i := range d.stars {
		s := &d.stars[i]
		look := layerLooks[s.layer%len(layerLooks)]
		x := int(math.Round(core.Lerp(s.px, s.x, alpha)))
		dst.SetColored(x, s.y, look.r, look.c)
	}

	if d.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	}
}

// State returns the current demo state.
func (d *Demo) State() core.DemoState {
	return core.DemoState{
		Ticks:  d.ticks,
		Paused: d.paused,
	}
}
