package round

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerSchedulerCoalesces(t *testing.T) {
	sched := NewTimerScheduler(20 * time.Millisecond)

	var fired atomic.Int32
	// Rescheduling inside the window must replace the earlier callback.
	sched.Schedule(func() { fired.Add(100) })
	sched.Schedule(func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired = %d, want 1 (latest callback only)", got)
	}
}

func TestTimerSchedulerStop(t *testing.T) {
	sched := NewTimerScheduler(20 * time.Millisecond)

	var fired atomic.Int32
	sched.Schedule(func() { fired.Add(1) })
	if !sched.Stop() {
		t.Error("Stop reported no pending callback")
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired = %d after Stop, want 0", got)
	}

	if sched.Stop() {
		t.Error("second Stop reported a pending callback")
	}
}
