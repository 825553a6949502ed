package clock

import "time"

// Clock supplies the current instant and the current UTC calendar date.
// The planner and rollover engine take it as a dependency so date
// boundaries are controllable in tests.
type Clock interface {
	Now() time.Time
	Today() string
}

const dateLayout = "2006-01-02"

type systemClock struct{}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() string {
	return time.Now().UTC().Format(dateLayout)
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

func (f Fixed) Today() string {
	return f.Instant.UTC().Format(dateLayout)
}
