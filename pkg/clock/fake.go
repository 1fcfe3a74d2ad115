package clock

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Fake is a manually driven clock. Sleep returns immediately after advancing
// the clock, so loops paced by Sleep or by Fake timers run without real waiting.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration

	// OnSleep is called with the new time after every advance.
	OnSleep func(now time.Time)
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(d time.Duration) {
	f.Advance(d)
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.sleeps = append(f.sleeps, d)
	now := f.now
	cb := f.OnSleep
	f.mu.Unlock()

	if cb != nil {
		cb(now)
	}
}

// Sleeps returns every duration the clock has been advanced by, in order.
func (f *Fake) Sleeps() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.sleeps...)
}

func (f *Fake) NewTimer() backoff.Timer {
	return &fakeTimer{clock: f, c: make(chan time.Time, 1)}
}

type fakeTimer struct {
	clock *Fake
	c     chan time.Time
}

func (t *fakeTimer) C() <-chan time.Time {
	return t.c
}

// Start advances the fake clock by the duration and fires at once.
func (t *fakeTimer) Start(duration time.Duration) {
	t.clock.Advance(duration)

	select {
	case t.c <- t.clock.Now():
	default:
	}
}

func (t *fakeTimer) Stop() {}
