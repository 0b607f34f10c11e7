package bounce

import (
	"testing"
	"time"

	"github.com/osokolkov/steploop/internal/core"
)

const stepDt = 20 * time.Millisecond

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 12345
	return cfg
}

func TestDeterminism(t *testing.T) {
	// Two demos with the same seed and inputs stay in lockstep.
	d1 := New()
	d1.Reset(testConfig())
	d2 := New()
	d2.Reset(testConfig())

	input := core.NewInputFrame()
	for i := 0; i < 200; i++ {
		input.Clear()
		if i == 30 {
			input.Set(core.ActionKick)
		}
		if i == 90 {
			input.Set(core.ActionLeft)
		}
		d1.Step(input, stepDt)
		d2.Step(input, stepDt)
	}

	if len(d1.balls) != len(d2.balls) {
		t.Fatalf("Ball count diverged: %d vs %d", len(d1.balls), len(d2.balls))
	}
	for i := range d1.balls {
		a, b := d1.balls[i], d2.balls[i]
		if a.x != b.x || a.y != b.y || a.vx != b.vx || a.vy != b.vy {
			t.Errorf("Ball %d diverged: (%v,%v v=%v,%v) vs (%v,%v v=%v,%v)",
				i, a.x, a.y, a.vx, a.vy, b.x, b.y, b.vx, b.vy)
		}
	}
	if d1.State().Ticks != d2.State().Ticks {
		t.Errorf("Tick mismatch: %d vs %d", d1.State().Ticks, d2.State().Ticks)
	}
}

func TestBallsStayInBounds(t *testing.T) {
	d := New()
	d.Reset(testConfig())

	input := core.NewInputFrame()
	for i := 0; i < 2000; i++ {
		input.Clear()
		if i%100 == 0 {
			input.Set(core.ActionKick)
		}
		d.Step(input, stepDt)

		for j, b := range d.balls {
			if b.x < float64(d.bounds.X) || b.x > float64(d.bounds.Right()-1) ||
				b.y < float64(d.bounds.Y) || b.y > float64(d.bounds.Bottom()-1) {
				t.Fatalf("Tick %d: ball %d escaped at (%v, %v)", i, j, b.x, b.y)
			}
		}
	}
}

func TestGravityPullsDown(t *testing.T) {
	d := New()
	d.Reset(testConfig())

	// Freeze a ball mid-air and let it fall.
	d.balls = d.balls[:1]
	d.balls[0].x = 10
	d.balls[0].y = 5
	d.balls[0].vx = 0
	d.balls[0].vy = 0

	input := core.NewInputFrame()
	d.Step(input, stepDt)

	if d.balls[0].vy <= 0 {
		t.Errorf("Expected downward velocity after a step, got %v", d.balls[0].vy)
	}
	if d.balls[0].y <= 5 {
		t.Errorf("Expected ball to fall below y=5, got %v", d.balls[0].y)
	}
}

func TestKickThrowsUpward(t *testing.T) {
	d := New()
	d.Reset(testConfig())

	input := core.NewInputFrame()
	input.Set(core.ActionKick)
	d.Step(input, stepDt)

	for i, b := range d.balls {
		// Kick sets vy to the negative impulse; one step of gravity
		// cannot cancel it.
		if b.vy >= 0 {
			t.Errorf("Ball %d not moving up after kick: vy=%v", i, b.vy)
		}
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	d := New()
	d.Reset(testConfig())

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	d.Step(input, stepDt)

	if !d.State().Paused {
		t.Fatal("Demo should be paused")
	}

	before := d.balls[0]
	ticksBefore := d.State().Ticks

	input.Clear()
	for i := 0; i < 10; i++ {
		d.Step(input, stepDt)
	}

	if d.balls[0] != before {
		t.Error("Balls moved while paused")
	}
	if d.State().Ticks != ticksBefore {
		t.Error("Ticks advanced while paused")
	}
}

func TestRenderInterpolatesBetweenUpdates(t *testing.T) {
	d := New()
	d.Reset(testConfig())

	input := core.NewInputFrame()
	for i := 0; i < 10; i++ {
		d.Step(input, stepDt)
	}

	b := d.balls[0]
	screen := core.NewScreen(80, 24)

	// alpha 0 draws the previous-update position; alpha just under 1
	// approaches the current one. Verify via the lerp the demo uses.
	at0x, at0y := core.Lerp(b.px, b.x, 0), core.Lerp(b.py, b.y, 0)
	at1x, at1y := core.Lerp(b.px, b.x, 0.999), core.Lerp(b.py, b.y, 0.999)
	if at0x != b.px || at0y != b.py {
		t.Error("alpha 0 should resolve to the previous position")
	}
	if b.px != b.x && at1x == at0x && at1y == at0y {
		t.Errorf("alpha near 1 should move toward the current position (prev %v,%v cur %v,%v)",
			b.px, b.py, b.x, b.y)
	}

	// Smoke-test the actual draw at both extremes.
	d.Render(screen, 0)
	d.Render(screen, 0.999)
}

func TestRenderDrawsBorderAndBalls(t *testing.T) {
	d := New()
	d.Reset(testConfig())

	input := core.NewInputFrame()
	d.Step(input, stepDt)

	screen := core.NewScreen(80, 24)
	d.Render(screen, 0)

	if screen.Get(0, 0) != '┌' {
		t.Error("Border box missing")
	}

	var balls int
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.Get(x, y) == '●' {
				balls++
			}
		}
	}
	if balls == 0 {
		t.Error("No balls drawn")
	}
}

func TestIdentity(t *testing.T) {
	d := New()
	if d.ID() != "bounce" {
		t.Errorf("ID should be 'bounce', got %s", d.ID())
	}
	if d.Title() != "Bounce" {
		t.Errorf("Title should be 'Bounce', got %s", d.Title())
	}
}
