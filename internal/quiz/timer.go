package quiz

import "time"

// Timer is the countdown bound to one timed session. It is a passive
// deadline holder: the owner polls Expire with the current wall clock on a
// coarse tick. At most one Timer is active per controller; starting a new
// session or finishing by any path stops the previous one.
type Timer struct {
	deadline time.Time
	fired    bool
	stopped  bool
}

// NewTimer arms a countdown ending at deadline.
func NewTimer(deadline time.Time) *Timer {
	return &Timer{deadline: deadline}
}

// Deadline returns the instant the countdown ends.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Remaining returns the time left on the countdown, floored at zero.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if !t.Active() {
		return 0
	}
	d := t.deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expire reports whether the countdown ran out at now. It returns true
// exactly once; subsequent calls and calls after Stop return false, so a
// tick racing a manual finish cannot fire twice.
func (t *Timer) Expire(now time.Time) bool {
	if t.stopped || t.fired || now.Before(t.deadline) {
		return false
	}
	t.fired = true
	return true
}

// Stop cancels the countdown.
func (t *Timer) Stop() {
	t.stopped = true
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	return !t.stopped && !t.fired
}
