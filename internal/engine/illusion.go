package engine

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/tartampluch/showtime/internal/config"
)

// Phase is the state of the prediction routine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseWorldClockPaused
	PhaseWorldClockResumed
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseWorldClockPaused:
		return "world_clock_paused"
	case PhaseWorldClockResumed:
		return "world_clock_resumed"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

func (s *Stopwatch) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	slog.Debug(config.MsgPhaseChange,
		slog.String(config.LogKeyComponent, config.CompEngine),
		slog.String(config.LogKeyPhase, p.String()),
	)
	s.phase = p
}

func (s *Stopwatch) armed() bool {
	return s.hasTarget && s.worldClockReady
}

// cancelSequence drops every pending task of the prediction routine.
func (s *Stopwatch) cancelSequence() {
	s.scheduler.Cancel(illusionTasks...)
	s.worldClockStage = false
}

// clearTarget forgets the prediction and returns to idle.
func (s *Stopwatch) clearTarget() {
	s.target = 0
	s.hasTarget = false
	s.worldClockReady = false
	s.worldClockTriggered = false
	s.setPhase(PhaseIdle)
}

// OpenPrediction shows the keypad. Only while stopped; any armed target and
// pending sequence are dropped.
func (s *Stopwatch) OpenPrediction() {
	if s.running {
		return
	}
	s.cancelSequence()
	s.clearTarget()
	s.overlayOpen = true
	s.entry = config.PlaceholderEntry
	s.render()
}

// PressDigit feeds one keypad digit. The first digit replaces the
// placeholder, the second appends, a third drops the oldest. Two digits
// commit the target after a short delay.
func (s *Stopwatch) PressDigit(d int) {
	if !s.overlayOpen || d < 0 || d > 9 {
		return
	}
	digit := strconv.Itoa(d)
	switch len(s.entry) {
	case config.PredictionDigits:
		if s.entry == config.PlaceholderEntry {
			s.entry = digit
		} else {
			s.entry = s.entry[1:] + digit
		}
	case 1:
		s.entry += digit
	default:
		s.entry = digit
	}
	if len(s.entry) == config.PredictionDigits {
		s.scheduler.Schedule(TaskKeypadCommit, config.KeypadCommitDelay, s.commitPrediction)
	} else {
		s.scheduler.Cancel(TaskKeypadCommit)
	}
	s.render()
}

// commitPrediction closes the keypad and arms the entered target.
// Incomplete or non-numeric entries are ignored.
func (s *Stopwatch) commitPrediction() {
	if !s.overlayOpen || s.running {
		return
	}
	s.overlayOpen = false
	n, err := strconv.Atoi(s.entry)
	if err != nil || len(s.entry) != config.PredictionDigits || n < 0 {
		s.entry = config.PlaceholderEntry
		s.render()
		return
	}
	s.target = n
	s.hasTarget = true
	s.worldClockReady = true
	s.setPhase(PhaseArmed)
	s.render()
}

// ClearPrediction resets the keypad entry and disarms everything.
func (s *Stopwatch) ClearPrediction() {
	s.entry = config.PlaceholderEntry
	s.cancelSequence()
	s.clearTarget()
	s.render()
}

// DismissPrediction closes the keypad without arming.
func (s *Stopwatch) DismissPrediction() {
	if !s.overlayOpen {
		return
	}
	s.overlayOpen = false
	s.scheduler.Cancel(TaskKeypadCommit)
	s.render()
}

// worldClockPause is the scripted stop: the clock freezes, a label swap
// follows after 4s and the clock resumes at 5s with a 6s auto-stop armed.
func (s *Stopwatch) worldClockPause() {
	s.halt()
	s.fixedMillis = ""
	s.worldClockTriggered = true
	s.setPhase(PhaseWorldClockPaused)

	s.scheduler.Schedule(TaskWorldClockLabel, config.WorldClockLabelDelay, func() {
		if s.running || s.phase != PhaseWorldClockPaused {
			s.logStale(TaskWorldClockLabel)
			return
		}
		s.worldClockStage = true
		s.render()
	})
	s.scheduler.Schedule(TaskWorldClockStart, config.WorldClockResumeDelay, func() {
		if s.running || s.phase != PhaseWorldClockPaused {
			s.logStale(TaskWorldClockStart)
			return
		}
		s.resume()
		s.setPhase(PhaseWorldClockResumed)
		s.scheduler.Schedule(TaskAutoStop, config.AutoStopDelay, s.AutoStop)
		s.render()
	})
	s.render()
}

// AutoStop is the scripted stop: the final centiseconds are forced to the
// armed target. Stale calls (stopped, or no target) are ignored.
func (s *Stopwatch) AutoStop() {
	if !s.running || !s.hasTarget {
		s.logStale(TaskAutoStop)
		return
	}
	s.halt()
	s.elapsed = s.elapsed.Truncate(time.Second) + time.Duration(s.target)*10*time.Millisecond
	s.fixedMillis = ""
	s.commitActive(false)
	s.cancelSequence()
	s.setPhase(PhaseDone)
	s.clearTarget()
	s.render()
}

func (s *Stopwatch) logStale(name TaskName) {
	slog.Debug(config.MsgTaskStale,
		slog.String(config.LogKeyComponent, config.CompEngine),
		slog.String(config.LogKeyTask, string(name)),
		slog.String(config.LogKeyPhase, s.phase.String()),
	)
}

// SetSequence switches between the staged and single-shot routines. A
// routine in flight is abandoned.
func (s *Stopwatch) SetSequence(seq string) {
	if seq == "" || seq == s.opts.Sequence {
		return
	}
	s.opts.Sequence = seq
	if s.phase != PhaseIdle {
		s.cancelSequence()
		s.clearTarget()
	}
	slog.Debug(config.MsgPhaseChange,
		slog.String(config.LogKeyComponent, config.CompEngine),
		slog.String(config.LogKeySequence, seq),
	)
	s.render()
}
