package resource

import (
	"sync"
	"time"
)

// Signal is a handle to a repeating "still working" task. Cancelling twice is
// a no-op, and cancellation never propagates to the code that was awaited.
type Signal struct {
	done chan struct{}
	once sync.Once
}

// SpawnKeepAlive starts a task that invokes fn immediately and then at every
// interval until cancelled. fn must be safe to call from another goroutine.
func (g *Governor) SpawnKeepAlive(fn func(), interval time.Duration) *Signal {
	s := &Signal{done: make(chan struct{})}
	g.mu.Lock()
	g.signals[s] = struct{}{}
	g.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		fn()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return s
}

// Cancel stops the signal. Idempotent.
func (s *Signal) Cancel() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Cancel stops a signal and removes it from the tracked set. Tolerates
// signals that already finished or were cancelled before.
func (g *Governor) Cancel(s *Signal) {
	if s == nil {
		return
	}
	s.Cancel()
	g.mu.Lock()
	delete(g.signals, s)
	g.mu.Unlock()
}

// TrackedSignals returns the number of keep-alive signals currently tracked.
func (g *Governor) TrackedSignals() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.signals)
}
