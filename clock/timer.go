package clock

import "time"

// RoundTimer counts down a fixed budget of game time
type RoundTimer struct {
	clock    TimeProvider
	budget   time.Duration
	deadline time.Time
	running  bool
}

// NewRoundTimer creates a stopped timer reading time from clock
func NewRoundTimer(clock TimeProvider) *RoundTimer {
	return &RoundTimer{clock: clock}
}

// Start arms the timer with a fresh budget
func (t *RoundTimer) Start(budget time.Duration) {
	t.budget = budget
	t.deadline = t.clock.Now().Add(budget)
	t.running = true
}

// Stop disarms the timer; Remaining keeps reporting the value at stop time
func (t *RoundTimer) Stop() {
	if !t.running {
		return
	}
	t.budget = t.Remaining()
	t.running = false
}

// Running reports whether the timer is armed
func (t *RoundTimer) Running() bool {
	return t.running
}

// Remaining returns the time left, never negative
func (t *RoundTimer) Remaining() time.Duration {
	if !t.running {
		return t.budget
	}
	left := t.deadline.Sub(t.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether an armed timer ran out
func (t *RoundTimer) Expired() bool {
	return t.running && !t.clock.Now().Before(t.deadline)
}
