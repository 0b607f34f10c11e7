// Package bounce implements a ball-pit demo: a handful of balls under
// gravity bouncing inside the screen border. It exists to make timestep
// behavior visible: updates run at a fixed rate while rendering lerps
// each ball between its previous and current simulated position.
package bounce

import (
	"math"
	"math/rand"
	"time"

	"github.com/osokolkov/steploop/internal/config"
	"github.com/osokolkov/steploop/internal/core"
	"github.com/osokolkov/steploop/internal/registry"
)

func init() {
	registry.Register("bounce", func() registry.Demo { return New() })
}

// configPath is set by the CLI before the demo is created.
var configPath string

// SetConfigPath sets a custom config file path for the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

var ballGlyphs = []struct {
	r rune
	c core.Color
}{
	{'●', core.ColorBrightYellow},
	{'●', core.ColorBrightCyan},
	{'●', core.ColorRed},
	{'●', core.ColorGreen},
	{'●', core.ColorMagenta},
	{'●', core.ColorOrange},
}

type ball struct {
	x, y   float64 // current simulated position
	px, py float64 // position at the previous update, for render lerp
	vx, vy float64
	glyph  rune
	color  core.Color
}

// Demo is the bounce demo state.
type Demo struct {
	cfg    config.BounceConfig
	rng    *rand.Rand
	balls  []ball
	bounds core.Rect

	ticks  int
	paused bool
}

// New creates an uninitialized bounce demo. Reset must be called
// before stepping.
func New() *Demo {
	return &Demo{}
}

// ID returns the demo identifier.
func (d *Demo) ID() string {
	return "bounce"
}

// Title returns the display name.
func (d *Demo) Title() string {
	return "Bounce"
}

// Reset initializes the demo from config and the run seed.
func (d *Demo) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadBounce(configPath)
	if err != nil {
		cfg = config.DefaultBounceConfig()
	}
	d.cfg = cfg

	seed := rc.Seed
	if seed == 0 {
		seed = 1
	}
	d.rng = rand.New(rand.NewSource(seed))

	// Interior of the border box.
	d.bounds = core.NewRect(1, 1, core.Max(rc.ScreenW-2, 4), core.Max(rc.ScreenH-2, 4))

	d.balls = make([]ball, 0, cfg.Balls)
	for i := 0; i < cfg.Balls; i++ {
		g := ballGlyphs[i%len(ballGlyphs)]
		b := ball{
			x:     float64(d.bounds.X) + d.rng.Float64()*float64(d.bounds.W-1),
			y:     float64(d.bounds.Y) + d.rng.Float64()*float64(d.bounds.H/2),
			vx:    (d.rng.Float64()*2 - 1) * cfg.Physics.MaxSpeed / 3,
			vy:    d.rng.Float64() * cfg.Physics.MaxSpeed / 6,
			glyph: g.r,
			color: g.c,
		}
		b.px, b.py = b.x, b.y
		d.balls = append(d.balls, b)
	}

	d.ticks = 0
	d.paused = false
}

// Step advances the simulation by one fixed update.
func (d *Demo) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Has(core.ActionPause) {
		d.paused = !d.paused
	}

	if d.paused {
		return core.StepResult{State: d.State()}
	}

	if in.Has(core.ActionKick) {
		d.kick()
	}
	d.nudge(in)
	d.integrate(dt.Seconds())

	d.ticks++
	return core.StepResult{State: d.State()}
}

// kick throws every ball upward with a horizontal scatter.
func (d *Demo) kick() {
	for i := range d.balls {
		d.balls[i].vy = -d.cfg.Physics.KickImpulse
		d.balls[i].vx += (d.rng.Float64()*2 - 1) * d.cfg.Physics.KickImpulse / 3
	}
}

// nudge applies directional input as a small velocity bias.
func (d *Demo) nudge(in core.InputFrame) {
	const push = 4.0
	for i := range d.balls {
		if in.Has(core.ActionLeft) {
			d.balls[i].vx -= push
		}
		if in.Has(core.ActionRight) {
			d.balls[i].vx += push
		}
		if in.Has(core.ActionUp) {
			d.balls[i].vy -= push
		}
		if in.Has(core.ActionDown) {
			d.balls[i].vy += push
		}
	}
}

// integrate moves every ball by one fixed step and resolves wall hits.
func (d *Demo) integrate(dtSec float64) {
	p := d.cfg.Physics
	minX := float64(d.bounds.X)
	maxX := float64(d.bounds.Right() - 1)
	minY := float64(d.bounds.Y)
	maxY := float64(d.bounds.Bottom() - 1)

	for i := range d.balls {
		b := &d.balls[i]
		b.px, b.py = b.x, b.y

		b.vy += p.Gravity * dtSec
		b.vx = core.ClampF(b.vx, -p.MaxSpeed, p.MaxSpeed)
		b.vy = core.ClampF(b.vy, -p.MaxSpeed, p.MaxSpeed)

		b.x += b.vx * dtSec
		b.y += b.vy * dtSec

		if b.x < minX {
			b.x = minX + (minX - b.x)
			b.vx = -b.vx * p.Restitution
		} else if b.x > maxX {
			b.x = maxX - (b.x - maxX)
			b.vx = -b.vx * p.Restitution
		}

		if b.y < minY {
			b.y = minY + (minY - b.y)
			b.vy = -b.vy * p.Restitution
		} else if b.y > maxY {
			b.y = maxY - (b.y - maxY)
			b.vy = -b.vy * p.Restitution
			// Kill the jitter of endless micro-bounces on the floor.
			if math.Abs(b.vy) < 1.0 {
				b.vy = 0
				b.y = maxY
			}
		}

		b.x = core.ClampF(b.x, minX, maxX)
		b.y = core.ClampF(b.y, minY, maxY)
	}
}

// Render draws the border and every ball, lerped between its previous
// and current position by alpha. At alpha 0 this is exactly the last
// completed update; stepping frames pass alpha 0 so fresh state is
// drawn as-is.
func (d *Demo) Render(dst *core.Screen, alpha float64) {
	dst.DrawBox(core.NewRect(0, 0, dst.Width(), dst.Height()))

	for i := range d.balls {
		b := &d.balls[i]
		x := core.Lerp(b.px, b.x, alpha)
		y := core.Lerp(b.py, b.y, alpha)
		dst.SetColored(int(math.Round(x)), int(math.Round(y)), b.glyph, b.color)
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
