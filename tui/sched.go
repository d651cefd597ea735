package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/spinwheel/engine/sched"
)

// Scheduler delivers engine callbacks through the Bubble Tea event loop, so
// a settle runs inside Update like any other message and never races the
// model. AfterFunc only records the task; Update collects the matching tick
// commands with Drain after each engine call.
type Scheduler struct {
	seq    int
	tasks  map[int]*teaTask
	queued []tea.Cmd
}

type teaTask struct {
	f         func()
	cancelled bool
}

func (t *teaTask) Cancel() bool {
	if t.cancelled || t.f == nil {
		return false
	}
	t.cancelled = true
	return true
}

// fireMsg asks Update to run the task with the given id.
type fireMsg struct {
	id int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: map[int]*teaTask{}}
}

// AfterFunc implements sched.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) sched.Handle {
	s.seq++
	id := s.seq
	t := &teaTask{f: f}
	s.tasks[id] = t
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return fireMsg{id: id}
	}))
	return t
}

// Drain returns the tick commands for tasks scheduled since the last call.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// fire runs a task once. Cancelled and unknown ids are ignored.
func (s *Scheduler) fire(id int) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	if t.cancelled {
		return false
	}
	f := t.f
	t.f = nil
	f()
	return true
}
