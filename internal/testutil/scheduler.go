package testutil

import (
	"sort"
	"sync"
	"time"

	"lingo/internal/scheduler"
)

// FakeScheduler is a deterministic scheduler.Scheduler driven by Advance.
// Callbacks run synchronously on the goroutine calling Advance, ordered by
// due time and then by registration order. A periodic task keeps the order
// it was registered with.
type FakeScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	owner   *FakeScheduler
	due     time.Duration
	period  time.Duration
	seq     int
	fn      func()
	stopped bool
}

// NewFakeScheduler creates a scheduler at time zero
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) scheduler.Timer {
	return s.add(d, 0, f)
}

func (s *FakeScheduler) Every(d time.Duration, f func()) scheduler.Timer {
	return s.add(d, d, f)
}

func (s *FakeScheduler) add(d, period time.Duration, f func()) *fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	task := &fakeTask{owner: s, due: s.now + d, period: period, seq: s.seq, fn: f}
	s.tasks = append(s.tasks, task)
	return task
}

// Now returns the elapsed fake time
func (s *FakeScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns how many timers are still scheduled
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves time forward by d, running every callback that comes due
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		task := s.popDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

func (s *FakeScheduler) popDue(target time.Duration) *fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})

	task := s.tasks[0]
	if task.due > target {
		return nil
	}
	s.now = task.due

	if task.period > 0 {
		task.due += task.period
	} else {
		s.tasks = s.tasks[1:]
	}
	return task
}

func (t *fakeTask) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true
	for i, task := range s.tasks {
		if task == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
