package toast

import (
	"fmt"
	"time"
)

// Clock is an interface for time-related functions to allow for mocking.
type Clock interface {
	Now() time.Time
}

// RealClock is a real implementation of the Clock interface.
type RealClock struct{}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// tagSource hands out correlation tags of the form "<prefix>_<unix millis>".
// Tags never repeat: when the clock has not moved past the last tag the
// previous value is bumped by one.
type tagSource struct {
	clock Clock
	last  int64
}

func (t *tagSource) next(prefix string) string {
	ms := t.clock.Now().UnixMilli()
	if ms <= t.last {
		ms = t.last + 1
	}
	t.last = ms
	return fmt.Sprintf("%s_%d", prefix, ms)
}
