package scheduler

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped a pending run.
	Stop() bool
}

// Scheduler runs callbacks after a delay or on a fixed period
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// New returns a Scheduler backed by the runtime timers
func New() Scheduler {
	return realScheduler{}
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realScheduler) Every(d time.Duration, f func()) Timer {
	t := &ticker{
		ticker: time.NewTicker(d),
		stopCh: make(chan struct{}),
	}
	go t.run(f)
	return t
}

type ticker struct {
	ticker *time.Ticker
	stopCh chan struct{}
	once   sync.Once
}

func (t *ticker) run(f func()) {
	for {
		select {
		case <-t.stopCh:
			return
		case <-t.ticker.C:
			f()
		}
	}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.stopCh)
		stopped = true
	})
	return stopped
}
