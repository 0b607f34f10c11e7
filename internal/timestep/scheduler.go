// Package timestep implements a fixed-timestep scheduler that decouples
// simulation rate from render rate. Updates run at a constant cadence
// regardless of how often the embedding environment fires frames; renders
// between updates receive an interpolation fraction for smoothing.
package timestep

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by NewScheduler for invalid configuration.
var (
	ErrInvalidRate    = errors.New("timestep: updates per second must be positive")
	ErrInvalidCatchUp = errors.New("timestep: max catch-up steps must be positive")
)

// DefaultMaxCatchUp bounds how many logic steps a single Advance may run
// after a stall (e.g. a suspended terminal). Excess lag is dropped.
const DefaultMaxCatchUp = 5

// FrameResult describes what a single Advance call did.
type FrameResult struct {
	// Steps is the number of fixed logic updates executed, never more
	// than the configured catch-up cap.
	Steps int

	// Dropped counts backlog updates that were discarded because the
	// catch-up cap was hit. Dropped simulation time is gone for good;
	// it is not carried into the next frame.
	Dropped int

	// Alpha is the interpolation fraction in [0,1): how far the current
	// moment lies between the last completed update and the next due
	// one. It is only meaningful (non-zero) on zero-step frames; a frame
	// that ran at least one update renders the fresh state directly.
	Alpha float64
}

// Scheduler decides how many fixed-size logic updates are due at a given
// moment. It holds no timer and spawns nothing; the embedding environment
// calls Advance from whatever frame trigger it uses. Not safe for
// concurrent use, by contract a single goroutine owns it.
type Scheduler struct {
	interval   time.Duration
	maxCatchUp int
	nextDue    time.Time
	started    bool
}

// Option configures a Scheduler.
type Option func(*Scheduler) error

// WithMaxCatchUp overrides the catch-up cap.
func WithMaxCatchUp(steps int) Option {
	return func(s *Scheduler) error {
		if steps <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidCatchUp, steps)
		}
		s.maxCatchUp = steps
		return nil
	}
}

// NewScheduler creates a scheduler running updates at the given rate.
// A non-positive rate is a configuration error, rejected here rather
// than surfacing later as a division by zero or a spinning loop.
func NewScheduler(updatesPerSecond int, opts ...Option) (*Scheduler, error) {
	if updatesPerSecond <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRate, updatesPerSecond)
	}

	s := &Scheduler{
		interval:   time.Second / time.Duration(updatesPerSecond),
		maxCatchUp: DefaultMaxCatchUp,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Interval returns the fixed duration of one logic update.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// MaxCatchUp returns the configured catch-up cap.
func (s *Scheduler) MaxCatchUp() int {
	return s.maxCatchUp
}

// Start anchors the schedule: the first update is due at now.
// This is the only point where the due time is set from the clock;
// afterwards it only ever moves forward in whole intervals.
func (s *Scheduler) Start(now time.Time) {
	s.nextDue = now
	s.started = true
}

// Advance runs every update due at now, bounded by the catch-up cap,
// and reports the interpolation fraction for rendering. step is called
// once per executed update with the fixed delta.
//
// If now lags the schedule (time stood still or the caller replayed an
// old timestamp), no updates run and alpha reflects the last boundary.
// If now is far ahead, at most MaxCatchUp updates run and the remaining
// backlog is dropped by sliding the schedule forward in whole intervals.
func (s *Scheduler) Advance(now time.Time, step func(dt time.Duration)) FrameResult {
	if !s.started {
		s.Start(now)
	}

	var res FrameResult
	for !now.Before(s.nextDue) && res.Steps < s.maxCatchUp {
		if step != nil {
			step(s.interval)
		}
		s.nextDue = s.nextDue.Add(s.interval)
		res.Steps++
	}

	// Cap hit with lag remaining: discard the backlog without running
	// updates. The due time still moves in interval increments only.
	for !now.Before(s.nextDue) {
		s.nextDue = s.nextDue.Add(s.interval)
		res.Dropped++
	}

	if res.Steps == 0 {
		res.Alpha = s.alpha(now)
	}
	return res
}

// alpha computes progress from the previous update boundary toward
// nextDue, clamped to [0,1). Clamping covers timestamps at or before
// the previous boundary (a caller re-sending an old reading).
func (s *Scheduler) alpha(now time.Time) float64 {
	remaining := s.nextDue.Sub(now)
	if remaining >= s.interval {
		return 0
	}
	a := 1 - float64(remaining)/float64(s.interval)
	if a < 0 {
		return 0
	}
	return a
}
