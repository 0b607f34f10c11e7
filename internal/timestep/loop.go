package timestep

import (
	"context"
	"fmt"
	"time"
)

// Stats accumulates counters over a loop run.
type Stats struct {
	Frames  uint64 // trigger fires observed
	Updates uint64 // fixed logic steps executed
	Renders uint64 // render callbacks invoked
	Dropped uint64 // backlog steps discarded at the catch-up cap
	Wall    time.Duration
}

// UpdatesPerSecond reports the achieved update rate over the run.
func (s Stats) UpdatesPerSecond() float64 {
	if s.Wall <= 0 {
		return 0
	}
	return float64(s.Updates) / s.Wall.Seconds()
}

// FramesPerSecond reports the achieved frame rate over the run.
func (s Stats) FramesPerSecond() float64 {
	if s.Wall <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Wall.Seconds()
}

// LoopConfig configures a Loop.
type LoopConfig struct {
	// UpdateRate is the fixed simulation rate in updates per second.
	UpdateRate int

	// FrameRate is the trigger rate in frames per second. Independent
	// of UpdateRate; the scheduler bridges the two.
	FrameRate int

	// MaxCatchUp bounds updates per frame after a stall.
	// Zero means DefaultMaxCatchUp.
	MaxCatchUp int

	// Clock overrides the time source. Nil means SystemClock.
	Clock Clock

	// Trigger overrides the frame source. Nil means a TickerTrigger.
	Trigger FrameTrigger
}

// Loop runs update and render callbacks from a frame trigger through a
// fixed-timestep scheduler. It is the headless embedding of the
// scheduler; the TUI platform drives a Scheduler directly instead.
type Loop struct {
	sched   *Scheduler
	clock   Clock
	trigger FrameTrigger
	frame   time.Duration

	update func(dt time.Duration)
	render func(alpha float64)

	stats Stats
}

// NewLoop validates cfg and wires a loop around the callbacks. Either
// callback may be nil: a nil render makes a pure simulation loop.
func NewLoop(cfg LoopConfig, update func(dt time.Duration), render func(alpha float64)) (*Loop, error) {
	if cfg.FrameRate <= 0 {
		return nil, fmt.Errorf("timestep: frame rate must be positive, got %d", cfg.FrameRate)
	}

	// Zero means default; anything else, including negatives, goes to
	// the scheduler so invalid caps fail here rather than later.
	opts := []Option{}
	if cfg.MaxCatchUp != 0 {
		opts = append(opts, WithMaxCatchUp(cfg.MaxCatchUp))
	}
	sched, err := NewScheduler(cfg.UpdateRate, opts...)
	if err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}
	trigger := cfg.Trigger
	if trigger == nil {
		trigger = NewTickerTrigger()
	}

	return &Loop{
		sched:   sched,
		clock:   clock,
		trigger: trigger,
		frame:   time.Second / time.Duration(cfg.FrameRate),
		update:  update,
		render:  render,
	}, nil
}

// Scheduler exposes the underlying scheduler.
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// Stats returns counters accumulated so far. Call after Run returns,
// or from the loop goroutine.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run drives the loop until ctx is cancelled or the trigger closes its
// channel. Cancellation is the only way to stop a loop: the scheduler
// itself never blocks and never spins on its own.
//
// Each frame is advanced to the timestamp the trigger delivered, not
// to a fresh clock reading: the frame's time is part of the frame. The
// clock only measures wall time for stats.
func (l *Loop) Run(ctx context.Context) error {
	started := l.clock.Now()
	l.trigger.Start(l.frame)
	defer l.trigger.Stop()
	frames := l.trigger.C()

	for {
		select {
		case <-ctx.Done():
			l.stats.Wall = l.clock.Now().Sub(started)
			return ctx.Err()
		case tm, ok := <-frames:
			if !ok {
				l.stats.Wall = l.clock.Now().Sub(started)
				return nil
			}
			l.step(tm)
		}
	}
}

// step processes one frame: run due updates, then render once.
func (l *Loop) step(now time.Time) {
	res := l.sched.Advance(now, l.update)

	l.stats.Frames++
	l.stats.Updates += uint64(res.Steps)
	l.stats.Dropped += uint64(res.Dropped)

	if l.render != nil {
		l.render(res.Alpha)
		l.stats.Renders++
	}
}
