// Package clock provides the timer primitives used by the interaction
// state machines: delayed callbacks and a "next frame" callback.
package clock

import (
	"sync"
	"time"
)

// FrameInterval approximates one rendering frame at 60 Hz.
const FrameInterval = 16 * time.Millisecond

// Timer is a scheduled callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler schedules callbacks on a clock.
type Scheduler interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc runs f once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
	// NextFrame runs f on the next rendering frame.
	NextFrame(f func()) Timer
}

// Real is a Scheduler backed by the runtime timers.
type Real struct{}

// NewReal returns the wall-clock scheduler.
func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (Real) NextFrame(f func()) Timer {
	return time.AfterFunc(FrameInterval, f)
}

// Fake is a manually advanced Scheduler for tests. Callbacks only run
// inside Advance, on the caller's goroutine, in deadline order.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	owner    *Fake
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

// NewFake returns a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{owner: f, deadline: f.now.Add(d), seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	return t
}

func (f *Fake) NextFrame(fn func()) Timer {
	return f.AfterFunc(FrameInterval, fn)
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls inside the window. Timers scheduled by callbacks are honoured if
// they also fall inside the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		next := f.popDue(target)
		if next == nil {
			break
		}
		next.fn()
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

// popDue removes and returns the earliest timer due at or before target.
func (f *Fake) popDue(target time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i, t := range f.pending {
		if t.stopped || t.fired || t.deadline.After(target) {
			continue
		}
		if idx == -1 || t.deadline.Before(f.pending[idx].deadline) ||
			(t.deadline.Equal(f.pending[idx].deadline) && t.seq < f.pending[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		f.compact()
		return nil
	}
	t := f.pending[idx]
	t.fired = true
	if t.deadline.After(f.now) {
		f.now = t.deadline
	}
	return t
}

func (f *Fake) compact() {
	live := f.pending[:0]
	for _, t := range f.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	f.pending = live
}

func (t *fakeTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
