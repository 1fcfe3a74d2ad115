// Package clock abstracts wall-clock time so that every poll and retry loop of the
// order lifecycle can be driven by a fake clock in tests.
package clock

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Clock interface {
	Now() time.Time

	Sleep(d time.Duration)

	// NewTimer returns a timer for backoff.RetryNotifyWithTimer.
	NewTimer() backoff.Timer
}

type realClock struct{}

// Real returns the system clock.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (realClock) NewTimer() backoff.Timer {
	return &realTimer{}
}

type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) C() <-chan time.Time {
	return t.timer.C
}

func (t *realTimer) Start(duration time.Duration) {
	if t.timer == nil {
		t.timer = time.NewTimer(duration)
	} else {
		t.timer.Reset(duration)
	}
}

func (t *realTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

// Expired reports whether the deadline has passed. A zero deadline never expires.
func Expired(c Clock, deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}

	return !c.Now().Before(deadline)
}
