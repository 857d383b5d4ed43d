package engine

import (
	"time"

	"github.com/tartampluch/showtime/internal/config"
)

// Snapshot is the state captured by the last reset, kept for the peek.
type Snapshot struct {
	Elapsed     time.Duration
	Laps        []LapRecord
	Running     bool
	MindReading bool
}

// remember captures the pre-reset state. The laps are copied verbatim.
func (s *Stopwatch) remember() {
	s.remembered = &Snapshot{
		Elapsed:     s.elapsed,
		Laps:        s.ledger.Laps(),
		Running:     s.running,
		MindReading: s.mindReading,
	}
}

// Remembered returns a copy of the last snapshot, if any.
func (s *Stopwatch) Remembered() (Snapshot, bool) {
	if s.remembered == nil {
		return Snapshot{}, false
	}
	snap := *s.remembered
	snap.Laps = append([]LapRecord(nil), s.remembered.Laps...)
	return snap, true
}

// ShowRemembered renders the remembered state for a fixed window and then
// goes back to live rendering. Live state is never touched. The remembered
// main display is formatted fresh with the remembered mode flag.
func (s *Stopwatch) ShowRemembered() {
	if s.remembered == nil || len(s.remembered.Laps) == 0 {
		return
	}
	s.peeking = true
	s.scheduler.Schedule(TaskPeekRestore, config.PeekDuration, func() {
		s.peeking = false
		s.render()
	})
	s.render()
}

// peekView projects the remembered snapshot.
func (s *Stopwatch) peekView() View {
	rem := s.remembered
	v := s.baseView()
	v.Peeking = true
	v.Main = FormatMain(rem.Elapsed, rem.MindReading, false, "")
	v.Laps = lapRows(rem.Laps)
	return v
}
