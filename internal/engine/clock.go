package engine

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock abstracts the monotonic time source so the stopwatch can be driven
// deterministically in tests. clockwork.Clock satisfies it.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// NewRealClock returns the host clock.
// time.Now carries a monotonic reading, so Since is immune to wall-clock steps.
func NewRealClock() clockwork.Clock {
	return clockwork.NewRealClock()
}
