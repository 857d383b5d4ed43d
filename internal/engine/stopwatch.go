package engine

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tartampluch/showtime/internal/config"
)

// Options tunes a Stopwatch.
type Options struct {
	// Sequence selects the prediction routine: config.SequenceStaged (default)
	// or config.SequenceSingleShot.
	Sequence string
	// Rand drives the Sum-of-Nine shuffles. Nil means time-seeded.
	Rand *rand.Rand
	// Sink receives a View after every mutation. May be nil.
	Sink RenderSink
}

// Stopwatch owns the whole timing state: clock, lap ledger, illusion
// sequence and remembered snapshot. It holds no locks; every method must be
// called from a single goroutine (see Runner).
type Stopwatch struct {
	clock     Clock
	pool      *SumOfNinePool
	ledger    Ledger
	scheduler *Scheduler
	sink      RenderSink
	opts      Options

	running     bool
	startTime   time.Time
	elapsed     time.Duration
	fixedMillis string
	mindReading bool

	// refreshArmed is true while exactly one refresh registration exists.
	refreshArmed bool

	target              int
	hasTarget           bool
	worldClockReady     bool
	worldClockTriggered bool
	worldClockStage     bool
	phase               Phase

	overlayOpen bool
	entry       string

	remembered *Snapshot
	peeking    bool
}

// New creates a stopped, empty stopwatch on clock.
func New(clock Clock, opts Options) *Stopwatch {
	if opts.Sequence == "" {
		opts.Sequence = config.SequenceStaged
	}
	return &Stopwatch{
		clock:     clock,
		pool:      NewSumOfNinePool(opts.Rand),
		scheduler: NewScheduler(clock),
		sink:      opts.Sink,
		opts:      opts,
		entry:     config.PlaceholderEntry,
	}
}

// SetSink replaces the render sink and paints the current state on it.
func (s *Stopwatch) SetSink(sink RenderSink) {
	s.sink = sink
	s.render()
}

// Elapsed returns the true elapsed time.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.elapsed + s.clock.Since(s.startTime)
	}
	return s.elapsed
}

func (s *Stopwatch) Running() bool        { return s.running }
func (s *Stopwatch) MindReading() bool    { return s.mindReading }
func (s *Stopwatch) Phase() Phase         { return s.phase }
func (s *Stopwatch) FixedMillis() string  { return s.fixedMillis }
func (s *Stopwatch) Peeking() bool        { return s.peeking }
func (s *Stopwatch) Laps() []LapRecord    { return s.ledger.Laps() }
func (s *Stopwatch) Pool() *SumOfNinePool { return s.pool }
func (s *Stopwatch) Pending() int         { return s.scheduler.Len() }
func (s *Stopwatch) Sequence() string     { return s.opts.Sequence }

// Target returns the armed prediction, if any.
func (s *Stopwatch) Target() (int, bool) { return s.target, s.hasTarget }

// debounced reports whether the start/stop control is still rate-limited,
// and arms the guard otherwise.
func (s *Stopwatch) debounced() bool {
	if s.scheduler.Pending(TaskDebounce) {
		return true
	}
	s.scheduler.Schedule(TaskDebounce, config.DebounceDelay, func() {})
	return false
}

// Start resumes the clock. No-op while running or debounced.
func (s *Stopwatch) Start() {
	if s.running || s.debounced() {
		return
	}
	if s.phase == PhaseWorldClockPaused {
		s.cancelSequence()
		s.clearTarget()
	}
	if s.ledger.Empty() {
		s.ledger.Push(LapRecord{Time: FormatLap(0, true, s.mindReading, nil)})
	}
	s.running = true
	s.startTime = s.clock.Now()
	s.fixedMillis = ""
	s.refreshArmed = true

	if s.opts.Sequence == config.SequenceSingleShot && s.hasTarget {
		s.scheduler.Schedule(TaskAutoStop, config.AutoStopDelay, s.AutoStop)
	}
	s.render()
}

// Stop freezes the clock and commits the active lap. When a prediction is
// armed for the staged sequence the scripted pause runs instead.
func (s *Stopwatch) Stop() {
	if !s.running || s.debounced() {
		return
	}
	if s.opts.Sequence == config.SequenceStaged && s.phase == PhaseArmed && s.armed() {
		s.worldClockPause()
		return
	}
	s.halt()
	if s.mindReading {
		// The main display pops first, then the lap.
		s.fixedMillis = s.pool.Next()
	}
	s.commitActive(s.mindReading)
	s.cancelSequence()
	s.clearTarget()
	s.render()
}

// StartStop is the single start/stop control.
func (s *Stopwatch) StartStop() {
	if s.running {
		s.Stop()
		return
	}
	s.Start()
}

// halt folds the running segment into elapsed and cancels the refresh.
func (s *Stopwatch) halt() {
	s.elapsed += s.clock.Since(s.startTime)
	s.running = false
	s.refreshArmed = false
}

// resume restarts the clock from the current elapsed value.
func (s *Stopwatch) resume() {
	s.running = true
	s.startTime = s.clock.Now()
	s.refreshArmed = true
}

// commitActive writes the final raw duration and display of the active lap.
func (s *Stopwatch) commitActive(illusion bool) {
	active := s.ledger.Active()
	if active == nil {
		return
	}
	total := s.Elapsed()
	raw := total - s.ledger.PreviousTotal()
	if raw < 0 {
		raw = 0
	}
	active.Raw = raw
	active.Total = total
	active.Time = FormatLap(raw, false, illusion, s.pool)
}

// RecordLap closes the active lap and opens a new one. Only while running.
func (s *Stopwatch) RecordLap() {
	if !s.running {
		return
	}
	s.commitActive(s.mindReading)
	total := s.Elapsed()
	s.ledger.Push(LapRecord{Total: total, Time: FormatLap(0, true, s.mindReading, nil)})
	s.render()
}

// Reset clears a stopped, non-empty stopwatch after remembering it.
func (s *Stopwatch) Reset() {
	if s.running || s.ledger.Empty() {
		return
	}
	s.remember()
	s.ledger.Clear()
	s.elapsed = 0
	s.fixedMillis = ""
	s.pool.Reset()
	s.cancelSequence()
	s.clearTarget()
	slog.Debug(config.MsgReset,
		slog.String(config.LogKeyComponent, config.CompEngine),
		slog.Int(config.LogKeyLaps, len(s.remembered.Laps)),
		slog.Int64(config.LogKeyElapsed, s.remembered.Elapsed.Milliseconds()),
	)
	s.render()
}

// LapReset is the single lap/reset control: lap while running, reset while stopped.
func (s *Stopwatch) LapReset() {
	if s.running {
		s.RecordLap()
		return
	}
	s.Reset()
}

// ToggleMindReading flips the illusion mode. Turning it on always reshuffles
// the pool, and when stopped also clears the clock and the ledger.
func (s *Stopwatch) ToggleMindReading() {
	s.mindReading = !s.mindReading
	switch {
	case s.mindReading:
		s.pool.Reset()
		if !s.running {
			s.cancelSequence()
			s.clearTarget()
			s.elapsed = 0
			s.fixedMillis = ""
			s.ledger.Clear()
		}
	case !s.running:
		s.fixedMillis = ""
	}
	s.render()
}

// Tick runs due deferred tasks and refreshes the live lap. The Runner calls
// it on every frame.
func (s *Stopwatch) Tick() {
	s.scheduler.Fire()
	if !s.running || !s.refreshArmed {
		return
	}
	if active := s.ledger.Active(); active != nil {
		raw := s.Elapsed() - s.ledger.PreviousTotal()
		if raw < 0 {
			raw = 0
		}
		active.Raw = raw
		active.Time = FormatLap(raw, true, s.mindReading, nil)
	}
	if !s.peeking {
		s.render()
	}
}
