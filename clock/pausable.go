package clock

import (
	"sync"
	"time"
)

// PausableClock provides game time that stands still while paused
type PausableClock struct {
	mu sync.RWMutex

	base TimeProvider

	paused          bool
	pauseStartTime  time.Time     // real time the current pause began
	totalPausedTime time.Duration // cumulative finished pauses
}

// NewPausableClock creates a clock driven by base; nil means the system clock
func NewPausableClock(base TimeProvider) *PausableClock {
	if base == nil {
		base = NewMonotonicTimeProvider()
	}
	return &PausableClock{base: base}
}

// Now returns current game time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		// frozen at the pause point
		return pc.pauseStartTime.Add(-pc.totalPausedTime)
	}
	return pc.base.Now().Add(-pc.totalPausedTime)
}

// RealTime returns the underlying clock time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.base.Now()
}

// Pause stops game time advancement; no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.base.Now()
}

// Resume continues game time advancement; no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.base.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.base.Now().Sub(pc.pauseStartTime)
	}
	return total
}
