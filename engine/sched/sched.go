// Package sched provides one-shot deferred callbacks with cancellation.
//
// The engine never runs callbacks concurrently with its own methods: Queue
// fires tasks only from the caller's goroutine, and Timer holds a shared
// lock while a callback runs.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Handle is the cancellation token for a scheduled callback.
type Handle interface {
	// Cancel stops the callback from firing. It reports whether the call
	// stopped it; false means it already fired or was already cancelled.
	Cancel() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Handle
}

// Queue is a virtual-time scheduler. Nothing fires until Advance or RunNext
// is called, which makes spin timing deterministic in tests and lets the
// CLI decide how long to actually wait.
type Queue struct {
	now   time.Duration
	seq   int
	tasks []*task
}

type task struct {
	due       time.Duration
	seq       int
	f         func()
	fired     bool
	cancelled bool
}

func (t *task) Cancel() bool {
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// NewQueue creates an empty queue at virtual time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// AfterFunc schedules f at the current virtual time plus d.
func (q *Queue) AfterFunc(d time.Duration, f func()) Handle {
	if d < 0 {
		d = 0
	}
	q.seq++
	t := &task{due: q.now + d, seq: q.seq, f: f}
	q.tasks = append(q.tasks, t)
	return t
}

// Now returns the elapsed virtual time.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Pending returns the number of tasks still waiting to fire.
func (q *Queue) Pending() int {
	q.prune()
	return len(q.tasks)
}

// NextDue returns how long until the next pending task fires.
func (q *Queue) NextDue() (time.Duration, bool) {
	q.prune()
	if len(q.tasks) == 0 {
		return 0, false
	}
	q.sortTasks()
	return q.tasks[0].due - q.now, true
}

// Advance moves virtual time forward by d, firing every task that comes due
// in due order. Tasks scheduled by a firing callback fire too if they fall
// inside the window. Returns the number of callbacks run.
func (q *Queue) Advance(d time.Duration) int {
	target := q.now + d
	fired := 0
	for {
		q.prune()
		if len(q.tasks) == 0 {
			break
		}
		q.sortTasks()
		next := q.tasks[0]
		if next.due > target {
			break
		}
		q.tasks = q.tasks[1:]
		q.now = next.due
		next.fired = true
		next.f()
		fired++
	}
	q.now = target
	return fired
}

// RunNext advances to the next pending task and fires it. Returns the
// virtual time waited and false if nothing was pending.
func (q *Queue) RunNext() (time.Duration, bool) {
	wait, ok := q.NextDue()
	if !ok {
		return 0, false
	}
	q.Advance(wait)
	return wait, true
}

func (q *Queue) prune() {
	live := q.tasks[:0]
	for _, t := range q.tasks {
		if !t.cancelled && !t.fired {
			live = append(live, t)
		}
	}
	q.tasks = live
}

func (q *Queue) sortTasks() {
	sort.SliceStable(q.tasks, func(i, j int) bool {
		if q.tasks[i].due != q.tasks[j].due {
			return q.tasks[i].due < q.tasks[j].due
		}
		return q.tasks[i].seq < q.tasks[j].seq
	})
}

// Timer schedules on real time. Each callback runs while holding Lock, the
// same lock callers hold around every other engine call.
type Timer struct {
	Lock sync.Locker
}

// NewTimer creates a Timer serialised by mu.
func NewTimer(mu sync.Locker) *Timer {
	return &Timer{Lock: mu}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() bool {
	return h.t.Stop()
}

// AfterFunc runs f on its own goroutine after d, under t.Lock.
func (t *Timer) AfterFunc(d time.Duration, f func()) Handle {
	return timerHandle{t: time.AfterFunc(d, func() {
		t.Lock.Lock()
		defer t.Lock.Unlock()
		f()
	})}
}
