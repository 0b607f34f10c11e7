package timestep

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock is a hand-advanced Clock for deterministic loop tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestLoopRejectsBadConfig(t *testing.T) {
	if _, err := NewLoop(LoopConfig{UpdateRate: 0, FrameRate: 60}, nil, nil); err == nil {
		t.Error("Expected error for zero update rate")
	}
	if _, err := NewLoop(LoopConfig{UpdateRate: 50, FrameRate: 0}, nil, nil); err == nil {
		t.Error("Expected error for zero frame rate")
	}
	if _, err := NewLoop(LoopConfig{UpdateRate: 50, FrameRate: 60, MaxCatchUp: -1}, nil, nil); err == nil {
		t.Error("Expected error for negative catch-up cap")
	}

	// Zero is not invalid, it selects the default cap.
	loop, err := NewLoop(LoopConfig{UpdateRate: 50, FrameRate: 60, MaxCatchUp: 0}, nil, nil)
	if err != nil {
		t.Fatalf("Zero catch-up cap should use the default, got error: %v", err)
	}
	if got := loop.Scheduler().MaxCatchUp(); got != DefaultMaxCatchUp {
		t.Errorf("Expected default cap %d, got %d", DefaultMaxCatchUp, got)
	}
}

func TestLoopAdvancesToFrameTimestamps(t *testing.T) {
	// The timestamp a frame carries governs the advance. The wall clock
	// may have moved on by the time the loop goroutine gets scheduled;
	// that must not change what the frame observes.
	t0 := time.Unix(0, 0)
	clock := newFakeClock(t0.Add(time.Hour)) // clock disagrees wildly
	trigger := NewManualTrigger()

	var updates int
	var alphas []float64

	loop, err := NewLoop(LoopConfig{
		UpdateRate: 50, // 20ms interval
		FrameRate:  100,
		Clock:      clock,
		Trigger:    trigger,
	}, func(time.Duration) {
		updates++
	}, func(alpha float64) {
		alphas = append(alphas, alpha)
	})
	if err != nil {
		t.Fatalf("NewLoop failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	// First frame anchors the grid at t0 and runs the update due there.
	trigger.Fire(t0)
	// Mid-interval frame: no update, interpolates.
	trigger.Fire(t0.Add(10 * time.Millisecond))
	// Next boundary: one more update.
	trigger.Fire(t0.Add(20 * time.Millisecond))

	trigger.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if updates != 2 {
		t.Errorf("Expected 2 updates from the fired timestamps, got %d", updates)
	}
	want := []float64{0, 0.5, 0}
	if len(alphas) != len(want) {
		t.Fatalf("Expected %d renders, got %d", len(want), len(alphas))
	}
	for i, a := range alphas {
		if a != want[i] {
			t.Errorf("Frame %d: expected alpha %v, got %v", i, want[i], a)
		}
	}
}

func TestLoopRunsUpdatesAndRendersPerFrame(t *testing.T) {
	t0 := time.Unix(0, 0)
	clock := newFakeClock(t0)
	trigger := NewManualTrigger()

	var updates, renders int
	var alphas []float64

	loop, err := NewLoop(LoopConfig{
		UpdateRate: 50, // 20ms interval
		FrameRate:  100,
		Clock:      clock,
		Trigger:    trigger,
	}, func(dt time.Duration) {
		updates++
		if dt != 20*time.Millisecond {
			t.Errorf("Update %d: expected dt 20ms, got %v", updates, dt)
		}
	}, func(alpha float64) {
		renders++
		alphas = append(alphas, alpha)
	})
	if err != nil {
		t.Fatalf("NewLoop failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	// Frame at t0: the update due at t0 runs, render sees alpha 0.
	trigger.Fire(t0)
	// Frame mid-interval: no update, render interpolates.
	clock.Set(t0.Add(10 * time.Millisecond))
	trigger.Fire(clock.Now())
	// Frame past the next boundary: one more update.
	clock.Set(t0.Add(20 * time.Millisecond))
	trigger.Fire(clock.Now())

	trigger.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if updates != 2 {
		t.Errorf("Expected 2 updates, got %d", updates)
	}
	if renders != 3 {
		t.Errorf("Expected 3 renders (once per frame), got %d", renders)
	}
	if len(alphas) == 3 {
		if alphas[0] != 0 {
			t.Errorf("Stepping frame should render alpha 0, got %v", alphas[0])
		}
		if alphas[1] != 0.5 {
			t.Errorf("Mid-interval frame should render alpha 0.5, got %v", alphas[1])
		}
		if alphas[2] != 0 {
			t.Errorf("Boundary frame should render alpha 0, got %v", alphas[2])
		}
	}

	stats := loop.Stats()
	if stats.Frames != 3 || stats.Updates != 2 || stats.Renders != 3 {
		t.Errorf("Stats mismatch: frames=%d updates=%d renders=%d",
			stats.Frames, stats.Updates, stats.Renders)
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	trigger := NewManualTrigger()
	loop, err := NewLoop(LoopConfig{
		UpdateRate: 50,
		FrameRate:  60,
		Clock:      newFakeClock(time.Unix(0, 0)),
		Trigger:    trigger,
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewLoop failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Loop did not stop after cancellation")
	}
}

func TestLoopCountsDroppedBacklog(t *testing.T) {
	t0 := time.Unix(0, 0)
	clock := newFakeClock(t0)
	trigger := NewManualTrigger()

	loop, err := NewLoop(LoopConfig{
		UpdateRate: 50,
		FrameRate:  60,
		MaxCatchUp: 10,
		Clock:      clock,
		Trigger:    trigger,
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewLoop failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	trigger.Fire(t0)
	// Simulate a long stall, far beyond what the cap allows.
	clock.Set(t0.Add(520 * time.Millisecond))
	trigger.Fire(clock.Now())

	trigger.Stop()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	stats := loop.Stats()
	if stats.Updates != 11 { // 1 at t0 + 10 capped catch-up steps
		t.Errorf("Expected 11 updates, got %d", stats.Updates)
	}
	if stats.Dropped == 0 {
		t.Error("Expected dropped backlog steps to be counted")
	}
}

func TestTickerTriggerDelivers(t *testing.T) {
	trigger := NewTickerTrigger()
	trigger.Start(time.Millisecond)
	defer trigger.Stop()

	select {
	case _, ok := <-trigger.C():
		if !ok {
			t.Fatal("Trigger channel closed before delivering a frame")
		}
	case <-time.After(time.Second):
		t.Fatal("No frame delivered within a second")
	}
}

func TestStatsRates(t *testing.T) {
	s := Stats{Frames: 120, Updates: 100, Wall: 2 * time.Second}
	if got := s.UpdatesPerSecond(); got != 50 {
		t.Errorf("Expected 50 ups, got %v", got)
	}
	if got := s.FramesPerSecond(); got != 60 {
		t.Errorf("Expected 60 fps, got %v", got)
	}

	var zero Stats
	if zero.UpdatesPerSecond() != 0 || zero.FramesPerSecond() != 0 {
		t.Error("Zero-wall stats should report zero rates")
	}
}
