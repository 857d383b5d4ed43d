package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/tartampluch/showtime/internal/config"
)

// TaskName identifies a deferred task. At most one task per name is pending.
type TaskName string

const (
	TaskDebounce        TaskName = "debounce"
	TaskKeypadCommit    TaskName = "keypad_commit"
	TaskWorldClockLabel TaskName = "world_clock_label"
	TaskWorldClockStart TaskName = "world_clock_resume"
	TaskAutoStop        TaskName = "auto_stop"
	TaskPeekRestore     TaskName = "peek_restore"
)

// illusionTasks belong to a prediction sequence and die together.
var illusionTasks = []TaskName{TaskKeypadCommit, TaskWorldClockLabel, TaskWorldClockStart, TaskAutoStop}

type task struct {
	name TaskName
	due  time.Time
	seq  uint64
	fn   func()
}

// Scheduler is a queue of named deferred tasks fired from the owner's loop.
// It never spawns goroutines; Fire must be called from the same goroutine
// that schedules.
type Scheduler struct {
	clock Clock
	tasks map[TaskName]*task
	seq   uint64
}

// NewScheduler creates an empty queue on clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock, tasks: make(map[TaskName]*task)}
}

// Schedule registers fn to run after delay, replacing any pending task with the same name.
func (s *Scheduler) Schedule(name TaskName, delay time.Duration, fn func()) {
	s.seq++
	s.tasks[name] = &task{name: name, due: s.clock.Now().Add(delay), seq: s.seq, fn: fn}
}

// Cancel drops the named tasks. Unknown names are ignored.
func (s *Scheduler) Cancel(names ...TaskName) {
	for _, n := range names {
		delete(s.tasks, n)
	}
}

// Pending reports whether the named task is still waiting.
func (s *Scheduler) Pending(name TaskName) bool {
	_, ok := s.tasks[name]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Fire runs every task that is due, earliest first. A task may schedule or
// cancel others; tasks made due by that are picked up in the same call.
func (s *Scheduler) Fire() int {
	fired := 0
	for {
		t := s.nextDue()
		if t == nil {
			return fired
		}
		delete(s.tasks, t.name)
		slog.Debug(config.MsgTaskFired,
			slog.String(config.LogKeyComponent, config.CompEngine),
			slog.String(config.LogKeyTask, string(t.name)),
		)
		t.fn()
		fired++
	}
}

func (s *Scheduler) nextDue() *task {
	now := s.clock.Now()
	var due []*task
	for _, t := range s.tasks {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}
