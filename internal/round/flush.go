package round

import (
	"sync"
	"time"
)

// FlushScheduler defers a single flush callback. At most one callback is
// outstanding at a time: scheduling again before it fires replaces the
// earlier one, which is what collapses rapid stroke entries into one
// write. Tests inject a manual implementation instead of waiting on the
// wall clock.
type FlushScheduler interface {
	// Schedule arranges for fn to run after the debounce window. Any
	// previously scheduled callback that has not fired yet is cancelled.
	Schedule(fn func())

	// Stop cancels the pending callback, if any, and reports whether one
	// was pending.
	Stop() bool
}

// timerScheduler implements FlushScheduler with time.AfterFunc.
type timerScheduler struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler returns a FlushScheduler firing after the given
// debounce window.
func NewTimerScheduler(window time.Duration) FlushScheduler {
	return &timerScheduler{window: window}
}

func (s *timerScheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, fn)
}

func (s *timerScheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return false
	}
	stopped := s.timer.Stop()
	s.timer = nil
	return stopped
}
