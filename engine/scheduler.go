package engine

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs session tasks one at a time, in order.
type Scheduler interface {
	Post(task func())
	After(delay time.Duration, task func())
}

// Loop runs tasks on a single goroutine. Post and After are safe from any goroutine.
type Loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

func (l *Loop) Post(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) After(delay time.Duration, task func()) {
	if delay <= 0 {
		l.Post(task)
		return
	}
	time.AfterFunc(delay, func() { l.Post(task) })
}

// Run drains the inbox until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if len(l.tasks) == 0 {
				l.mu.Unlock()
				break
			}
			task := l.tasks[0]
			l.tasks = l.tasks[1:]
			l.mu.Unlock()

			task()
		}
	}
}

type timedTask struct {
	due  time.Duration
	seq  int
	task func()
}

// Queue is a goroutine-free Scheduler on a virtual clock: delays order tasks but never sleep.
type Queue struct {
	now   time.Duration
	seq   int
	tasks []timedTask
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Post(task func()) {
	q.After(0, task)
}

func (q *Queue) After(delay time.Duration, task func()) {
	q.seq++
	q.tasks = append(q.tasks, timedTask{due: q.now + delay, seq: q.seq, task: task})
}

// Now is the virtual time spent so far.
func (q *Queue) Now() time.Duration {
	return q.now
}

func (q *Queue) Pending() int {
	return len(q.tasks)
}

// Next runs the earliest task and reports whether there was one.
func (q *Queue) Next() bool {
	if len(q.tasks) == 0 {
		return false
	}
	next := 0
	for i, t := range q.tasks {
		if t.due < q.tasks[next].due || (t.due == q.tasks[next].due && t.seq < q.tasks[next].seq) {
			next = i
		}
	}
	t := q.tasks[next]
	q.tasks = append(q.tasks[:next], q.tasks[next+1:]...)
	if t.due > q.now {
		q.now = t.due
	}
	t.task()
	return true
}

// Drain runs tasks until none are left and returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for q.Next() {
		ran++
	}
	return ran
}
