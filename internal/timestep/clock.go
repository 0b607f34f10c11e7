package timestep

import "time"

// Clock abstracts the time source feeding the scheduler.
// Go's time.Now() carries a monotonic reading, so the default clock
// satisfies the scheduler's requirement of non-decreasing timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock is the default monotonic clock.
var SystemClock Clock = systemClock{}
