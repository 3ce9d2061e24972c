package modal

import (
	"sync"
	"time"
)

// TaskID identifies a scheduled task. Zero is never a valid ID.
type TaskID uint64

// Scheduler runs one-shot tasks after a delay. It owns its pending tasks:
// a task removes itself when it fires, and Close drops the rest.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[TaskID]*time.Timer
	nextID TaskID
	closed bool
	post   func(func())
}

// NewScheduler creates a scheduler. post moves a fired task onto the UI
// goroutine; nil runs it on the timer goroutine.
func NewScheduler(post func(func())) *Scheduler {
	return &Scheduler{tasks: make(map[TaskID]*time.Timer), post: post}
}

// After schedules fn to run once after d. It returns 0 if the scheduler
// is closed.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.nextID++
	id := s.nextID
	s.tasks[id] = time.AfterFunc(d, func() { s.fire(id, fn) })
	return id
}

func (s *Scheduler) fire(id TaskID, fn func()) {
	s.mu.Lock()
	_, ok := s.tasks[id]
	delete(s.tasks, id)
	post := s.post
	s.mu.Unlock()
	if !ok {
		return // cancelled after the timer had already started
	}
	if post != nil {
		post(fn)
		return
	}
	fn()
}

// Cancel stops a pending task and reports whether it was still pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.tasks, id)
	return true
}

// Pending is the number of tasks that have not fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close cancels every pending task. Later calls to After do nothing.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		t.Stop()
		delete(s.tasks, id)
	}
	s.closed = true
}
