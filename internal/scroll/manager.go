// Package scroll keeps the vertical scroll position of tracked pages across
// route transitions.
//
// Leaving a section page forward records its offset; coming back restores
// it. Everything else lands at the top. Router events are fed to a Manager
// by the host; the Manager reads and moves the host's Viewport and stores
// ScrollRecords in the AppSession.
package scroll

import (
	"sync"
	"time"

	"github.com/hallyupress/newsdesk/internal/clock"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/session"
)

const (
	// PopstateWindow is how recent a history pop must be to mark the next
	// navigation as a back transition.
	PopstateWindow = 2000 * time.Millisecond
	// SaveThrottle is the trailing-edge interval of the periodic save.
	SaveThrottle = 100 * time.Millisecond
	// SaveThreshold is the minimum change in pixels worth a periodic write.
	SaveThreshold = 10
)

// RestoreDelays are the attempts made after mount to restore an offset.
var RestoreDelays = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
	300 * time.Millisecond,
	500 * time.Millisecond,
}

// State is the per-navigation state.
type State int

const (
	Idle State = iota
	Leaving
	Navigating
	Arrived
)

func (s State) String() string {
	switch s {
	case Leaving:
		return "leaving"
	case Navigating:
		return "navigating"
	case Arrived:
		return "arrived"
	default:
		return "idle"
	}
}

// Trigger is the router event kind.
type Trigger int

const (
	TriggerStart Trigger = iota
	TriggerComplete
	TriggerError
)

// Intent is an explicit navigation direction from the caller. IntentUnknown
// falls back to the popstate/record heuristic.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentBack
	IntentForward
)

// Event is a router event.
type Event struct {
	From    string
	To      string
	Trigger Trigger
	Intent  Intent
}

// Options configures a Manager.
type Options struct {
	Session   *session.AppSession
	Viewport  Viewport
	Registry  *Registry
	Scheduler clock.Scheduler
	Logger    logging.Logger
}

// Manager is the route-transition scroll state machine. It is safe for use
// from timer goroutines.
type Manager struct {
	session   *session.AppSession
	viewport  Viewport
	registry  *Registry
	scheduler clock.Scheduler
	logger    logging.Logger

	mu           sync.Mutex
	state        State
	current      string
	pending      string
	lastPopstate time.Time
	saved        bool // duplicate-save guard for the current transition

	throttle  clock.Timer
	lastWrite int
	hasWrite  bool
	restores  []clock.Timer
}

// NewManager returns a Manager. Missing options get working defaults: a
// disabled session, the default registry and the real clock.
func NewManager(opts Options) *Manager {
	if opts.Session == nil {
		opts.Session = session.New(session.Disabled{}, opts.Logger)
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry(DefaultRoutes()...)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Manager{
		session:   opts.Session,
		viewport:  opts.Viewport,
		registry:  opts.Registry,
		scheduler: opts.Scheduler,
		logger:    opts.Logger.With("component", "scroll"),
	}
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentPath returns the path of the mounted page.
func (m *Manager) CurrentPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Handle dispatches ev by its trigger.
func (m *Manager) Handle(ev Event) {
	switch ev.Trigger {
	case TriggerStart:
		m.NavigationStart(ev)
	case TriggerComplete:
		m.NavigationComplete()
	case TriggerError:
		m.NavigationError()
	}
}

// Popstate records a history pop.
func (m *Manager) Popstate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPopstate = m.scheduler.Now()
}

// NavigationStart captures the leaving page's offset and decides what to
// persist for the transition.
func (m *Manager) NavigationStart(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = Leaving
	m.stopTimersLocked()

	from := ev.From
	if from == "" {
		from = m.current
	}
	src := m.registry.Match(from)
	dst := m.registry.Match(ev.To)
	offset := CurrentOffset(m.viewport)
	back := m.isBackLocked(ev.Intent, dst)
	logo := m.session.ConsumeLogoClicked()

	m.logger.Debug("navigation start",
		"from", src.Path, "to", dst.Path, "offset", offset, "back", back, "logo", logo)

	if !back && !logo && !m.saved {
		switch {
		case src.Route.Kind == Section:
			m.session.SaveScrollOffset(src.Key(), offset)
		case src.Route.Kind == Detail && src.SameRoute(dst) && offset > 0 && src.ItemID != dst.ItemID:
			m.session.SaveScrollOffset(src.Key(), offset)
			m.session.RemoveScrollOffset(dst.Key())
		}
	}
	m.saved = true

	if dst.Route.Kind == Detail && !back && m.viewport != nil {
		m.viewport.ScrollTo(0)
	}
	if back && dst.Tracked() && dst.Route.BackFlag != "" {
		m.session.SetBackFlag(dst.Route.BackFlag)
	}
	m.pending = dst.Path
	m.state = Navigating
}

func (m *Manager) isBackLocked(intent Intent, dst Match) bool {
	switch intent {
	case IntentBack:
		return true
	case IntentForward:
		return false
	}
	if !m.lastPopstate.IsZero() && m.scheduler.Now().Sub(m.lastPopstate) <= PopstateWindow {
		return true
	}
	return dst.Tracked() && m.session.HasScrollOffset(dst.Key())
}

// NavigationComplete scrolls to the top now and again on the next frame.
func (m *Manager) NavigationComplete() {
	m.mu.Lock()
	m.saved = false
	if m.pending != "" {
		m.current = m.pending
		m.pending = ""
	}
	m.hasWrite = false
	vp := m.viewport
	m.state = Arrived
	m.mu.Unlock()

	if vp == nil {
		return
	}
	vp.ScrollTo(0)
	m.scheduler.NextFrame(func() { vp.ScrollTo(0) })
}

// NavigationError abandons the transition.
func (m *Manager) NavigationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = false
	m.pending = ""
	m.state = Idle
}

// Mount is called once the page at path has rendered. It restores the
// saved offset when the page was reached by going back and returns whether
// a restore was scheduled.
func (m *Manager) Mount(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimersLocked()
	match := m.registry.Match(path)
	m.current = match.Path
	m.state = Idle
	m.hasWrite = false

	if !match.Tracked() || match.Route.BackFlag == "" {
		return false
	}
	if !m.session.BackFlag(match.Route.BackFlag) {
		return false
	}
	m.session.ClearBackFlag(match.Route.BackFlag)

	offset, ok := m.session.ScrollOffset(match.Key())
	if !ok || m.viewport == nil {
		return false
	}
	if match.Route.Kind == Detail {
		m.session.RemoveScrollOffset(match.Key())
	}
	m.lastWrite, m.hasWrite = offset, true

	vp := m.viewport
	restore := func() { vp.ScrollTo(offset) }
	for _, d := range RestoreDelays {
		m.restores = append(m.restores, m.scheduler.AfterFunc(d, restore))
	}
	m.restores = append(m.restores, m.scheduler.NextFrame(restore))

	m.logger.Debug("restoring scroll", "path", match.Path, "offset", offset)
	return true
}

// Scrolled notes a scroll event on the mounted page. Samples are taken on
// the trailing edge of SaveThrottle.
func (m *Manager) Scrolled() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.throttle != nil || !m.idleOnSectionLocked() {
		return
	}
	m.throttle = m.scheduler.AfterFunc(SaveThrottle, m.sample)
}

func (m *Manager) idleOnSectionLocked() bool {
	if m.state != Idle && m.state != Arrived {
		return false
	}
	return m.registry.Match(m.current).Route.Kind == Section
}

func (m *Manager) sample() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.throttle = nil
	if !m.idleOnSectionLocked() {
		return
	}
	offset := CurrentOffset(m.viewport)
	if m.hasWrite && abs(offset-m.lastWrite) <= SaveThreshold {
		return
	}
	m.session.SaveScrollOffset(m.registry.Match(m.current).Key(), offset)
	m.lastWrite, m.hasWrite = offset, true
}

func (m *Manager) stopTimersLocked() {
	if m.throttle != nil {
		m.throttle.Stop()
		m.throttle = nil
	}
	for _, t := range m.restores {
		t.Stop()
	}
	m.restores = nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
