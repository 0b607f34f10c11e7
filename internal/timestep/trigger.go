package timestep

import "time"

// FrameTrigger is the per-frame invocation source driving a loop.
// The scheduler is agnostic to the mechanism: a wall-clock ticker, a
// TUI frame message, or a test harness feeding timestamps by hand.
type FrameTrigger interface {
	// Start begins emitting frames at roughly the given interval.
	Start(interval time.Duration)

	// Stop ceases emission and releases resources. The channel is
	// closed; a stopped trigger is not restartable.
	Stop()

	// C returns the channel frames arrive on.
	C() <-chan time.Time
}

// TickerTrigger drives frames from a time.Ticker. This is the
// production trigger for headless runs.
type TickerTrigger struct {
	ticker  *time.Ticker
	out     chan time.Time
	done    chan struct{}
	stopped bool
}

// NewTickerTrigger creates an unstarted ticker trigger.
func NewTickerTrigger() *TickerTrigger {
	return &TickerTrigger{}
}

// Start begins ticking at the given interval.
func (t *TickerTrigger) Start(interval time.Duration) {
	if t.ticker != nil {
		panic("timestep: TickerTrigger started twice")
	}
	if interval <= 0 {
		panic("timestep: TickerTrigger interval must be positive")
	}

	t.ticker = time.NewTicker(interval)
	t.out = make(chan time.Time, 1)
	t.done = make(chan struct{})

	go func() {
		defer close(t.out)
		for {
			select {
			case tm := <-t.ticker.C:
				select {
				case t.out <- tm:
				default: // consumer is behind, drop the frame
				}
			case <-t.done:
				return
			}
		}
	}()
}

// Stop halts the ticker and closes the frame channel.
// Safe to call more than once.
func (t *TickerTrigger) Stop() {
	if t.ticker == nil || t.stopped {
		return
	}
	t.stopped = true
	t.ticker.Stop()
	close(t.done)
}

// C returns the frame channel.
func (t *TickerTrigger) C() <-chan time.Time {
	return t.out
}

// ManualTrigger emits frames only when told to. Used in tests and
// anywhere frame pacing is owned by an outer event loop.
type ManualTrigger struct {
	out      chan time.Time
	interval time.Duration
	started  bool
	stopped  bool
}

// NewManualTrigger creates an unstarted manual trigger. The frame
// channel exists from construction, so Fire may race Start safely.
func NewManualTrigger() *ManualTrigger {
	return &ManualTrigger{out: make(chan time.Time)}
}

// Start records the interval.
func (m *ManualTrigger) Start(interval time.Duration) {
	if m.started {
		panic("timestep: ManualTrigger started twice")
	}
	m.started = true
	m.interval = interval
}

// Stop closes the frame channel.
// Safe to call more than once.
func (m *ManualTrigger) Stop() {
	if m.stopped {
		return
	}
	m.stopped = true
	close(m.out)
}

// C returns the frame channel.
func (m *ManualTrigger) C() <-chan time.Time {
	return m.out
}

// Fire emits a single frame carrying the given timestamp. Blocks until
// the consumer picks it up, which keeps tests deterministic.
func (m *ManualTrigger) Fire(t time.Time) {
	m.out <- t
}

// Interval reports the interval passed to Start.
func (m *ManualTrigger) Interval() time.Duration {
	return m.interval
}
