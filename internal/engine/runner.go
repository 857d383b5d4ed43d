package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tartampluch/showtime/internal/config"
)

// Runner serialises every Stopwatch mutation on one goroutine. User actions
// arrive through Do; the refresh ticker drives Tick.
type Runner struct {
	sw       *Stopwatch
	clock    clockwork.Clock
	interval time.Duration
	actions  chan func(*Stopwatch)
}

// NewRunner wraps sw. The ticker is created on clock, so a fake clock drives
// the loop in tests. A non-positive interval uses the default frame rate.
func NewRunner(sw *Stopwatch, clock clockwork.Clock, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = config.DefaultRefreshInterval
	}
	return &Runner{
		sw:       sw,
		clock:    clock,
		interval: interval,
		actions:  make(chan func(*Stopwatch), config.ActionBufferSize),
	}
}

// Do queues fn for the loop. It blocks only when the queue is full and gives
// up if ctx ends first.
func (r *Runner) Do(ctx context.Context, fn func(*Stopwatch)) bool {
	select {
	case r.actions <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run owns the stopwatch until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	log := slog.With(slog.String(config.LogKeyComponent, config.CompLoop))
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info(config.MsgLoopStart, slog.Duration(config.LogKeyInterval, r.interval))
	r.sw.render()

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgLoopStop)
			return
		case fn := <-r.actions:
			fn(r.sw)
		case <-ticker.Chan():
			r.sw.Tick()
		}
	}
}
