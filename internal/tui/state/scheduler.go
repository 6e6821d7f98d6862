package state

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hallyupress/newsdesk/internal/clock"
)

// sender forwards messages into the running program. It is set once the
// program exists; messages sent before that are dropped.
type sender struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func (s *sender) set(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// Send delivers msg and reports whether a program was attached. It must
// not be called from the Update goroutine.
func (s *sender) Send(msg tea.Msg) bool {
	s.mu.RLock()
	send := s.send
	s.mu.RUnlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

// timerFiredMsg carries a due callback into Update so that scroll and
// gesture timers touch the viewport on the UI goroutine only.
type timerFiredMsg struct {
	timer *programTimer
	fn    func()
}

type programTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

// Stop prevents the callback from running if it has not run yet.
func (t *programTimer) Stop() bool {
	if t.fired.Load() {
		return false
	}
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

func (t *programTimer) run(fn func()) {
	if t.stopped.Load() || !t.fired.CompareAndSwap(false, true) {
		return
	}
	fn()
}

// programScheduler is a clock.Scheduler whose callbacks run inside the
// bubbletea event loop.
type programScheduler struct {
	sender *sender
}

var _ clock.Scheduler = (*programScheduler)(nil)

func newProgramScheduler(s *sender) *programScheduler {
	return &programScheduler{sender: s}
}

func (s *programScheduler) Now() time.Time { return time.Now() }

func (s *programScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &programTimer{}
	t.timer = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		s.sender.Send(timerFiredMsg{timer: t, fn: f})
	})
	return t
}

func (s *programScheduler) NextFrame(f func()) clock.Timer {
	return s.AfterFunc(clock.FrameInterval, f)
}
