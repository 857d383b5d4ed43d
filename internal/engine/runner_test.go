package engine_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/showtime/internal/config"
	"github.com/tartampluch/showtime/internal/engine"
)

// syncRecorder is a RenderSink safe to read from the test goroutine.
type syncRecorder struct {
	mu   sync.Mutex
	last engine.View
	n    int
}

func (r *syncRecorder) Render(v engine.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = v
	r.n++
}

func (r *syncRecorder) snapshot() (engine.View, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.n
}

func TestRunner_SerialisesActionsAndTicks(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	rec := &syncRecorder{}
	sw := engine.New(clk, engine.Options{Rand: rand.New(rand.NewPCG(1, 2)), Sink: rec})
	runner := engine.NewRunner(sw, clk, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, n := rec.snapshot()
		return n > 0
	}, time.Second, time.Millisecond, "loop paints the initial state")

	require.True(t, runner.Do(ctx, func(s *engine.Stopwatch) { s.StartStop() }))
	require.Eventually(t, func() bool {
		v, _ := rec.snapshot()
		return v.Running
	}, time.Second, time.Millisecond)

	// The ticker exists before the first paint, so advancing now reaches it.
	clk.Advance(1500 * time.Millisecond)

	assert.Eventually(t, func() bool {
		v, _ := rec.snapshot()
		return v.Main == "00:01.50"
	}, time.Second, time.Millisecond, "refresh tick repaints the running clock")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}

func TestRunner_DoGivesUpOnCancelledContext(t *testing.T) {
	clk := clockwork.NewFakeClock()
	sw := engine.New(clk, engine.Options{})
	runner := engine.NewRunner(sw, clk, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fill the queue; with nobody draining, the next Do must observe ctx.
	for range config.ActionBufferSize {
		require.True(t, runner.Do(context.Background(), func(*engine.Stopwatch) {}))
	}
	assert.False(t, runner.Do(ctx, func(*engine.Stopwatch) {}))
}
