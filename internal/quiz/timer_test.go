package quiz

import (
	"testing"
	"time"
)

func TestTimerExpireFiresOnce(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 9, 1, 0, 0, time.UTC)
	tm := NewTimer(deadline)

	if tm.Expire(deadline.Add(-time.Second)) {
		t.Fatal("must not fire before the deadline")
	}
	if !tm.Expire(deadline) {
		t.Fatal("must fire at the deadline")
	}
	if tm.Expire(deadline.Add(time.Minute)) {
		t.Fatal("must fire exactly once")
	}
	if tm.Active() {
		t.Error("fired timer must be inactive")
	}
}

func TestTimerStop(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 9, 1, 0, 0, time.UTC)
	tm := NewTimer(deadline)

	tm.Stop()
	if tm.Expire(deadline.Add(time.Hour)) {
		t.Fatal("stopped timer must never fire")
	}
	if tm.Active() {
		t.Error("stopped timer must be inactive")
	}
}

func TestTimerRemaining(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 9, 1, 0, 0, time.UTC)
	tm := NewTimer(deadline)

	if got := tm.Remaining(deadline.Add(-90 * time.Second)); got != 90*time.Second {
		t.Errorf("remaining = %v, want 90s", got)
	}
	if got := tm.Remaining(deadline.Add(time.Second)); got != 0 {
		t.Errorf("remaining past deadline = %v, want 0", got)
	}
}

func TestTimerDeadline(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 9, 1, 0, 0, time.UTC)
	if got := NewTimer(deadline).Deadline(); !got.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", got, deadline)
	}
}
