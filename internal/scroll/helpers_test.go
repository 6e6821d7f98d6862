package scroll

import (
	"sync"
	"time"

	"github.com/hallyupress/newsdesk/internal/clock"
	"github.com/hallyupress/newsdesk/internal/session"
)

type fakeViewport struct {
	mu      sync.Mutex
	y       int
	noPage  bool
	noDoc   bool
	noBody  bool
	scrolls []int
}

func (v *fakeViewport) PageYOffset() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y, !v.noPage
}

func (v *fakeViewport) DocumentScrollTop() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y + 1000, !v.noDoc
}

func (v *fakeViewport) BodyScrollTop() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y + 2000, !v.noBody
}

func (v *fakeViewport) ScrollTo(y int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.y = y
	v.scrolls = append(v.scrolls, y)
}

func (v *fakeViewport) set(y int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.y = y
}

func (v *fakeViewport) offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y
}

type countingBackend struct {
	*session.Memory
	mu   sync.Mutex
	sets map[string]int
}

func newCountingBackend() *countingBackend {
	return &countingBackend{Memory: session.NewMemory(), sets: make(map[string]int)}
}

func (c *countingBackend) Set(key, value string) error {
	c.mu.Lock()
	c.sets[key]++
	c.mu.Unlock()
	return c.Memory.Set(key, value)
}

func (c *countingBackend) writes(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets[key]
}

type harness struct {
	mgr     *Manager
	vp      *fakeViewport
	clk     *clock.Fake
	backend *countingBackend
	sess    *session.AppSession
}

func newHarness() *harness {
	backend := newCountingBackend()
	sess := session.New(backend, nil)
	vp := &fakeViewport{}
	clk := clock.NewFake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	mgr := NewManager(Options{Session: sess, Viewport: vp, Scheduler: clk})
	return &harness{mgr: mgr, vp: vp, clk: clk, backend: backend, sess: sess}
}

// navigate runs a full start/complete/mount cycle.
func (h *harness) navigate(to string, intent Intent) bool {
	h.mgr.NavigationStart(Event{To: to, Trigger: TriggerStart, Intent: intent})
	h.mgr.NavigationComplete()
	return h.mgr.Mount(to)
}
