// Package gesture implements pull-to-refresh as a small state machine.
//
// The host feeds touch events and the current scroll offset; the Controller
// answers with a Frame to render. A committed pull calls the Reloader after
// a short settle delay.
package gesture

import (
	"sync"

	"github.com/hallyupress/newsdesk/internal/clock"
	"github.com/hallyupress/newsdesk/internal/logging"
)

// Phase of the gesture.
type Phase int

const (
	Idle Phase = iota
	Tracking
	Committing
	Refreshing
	Resetting
)

func (p Phase) String() string {
	switch p {
	case Tracking:
		return "tracking"
	case Committing:
		return "committing"
	case Refreshing:
		return "refreshing"
	case Resetting:
		return "resetting"
	default:
		return "idle"
	}
}

// State is a snapshot of the gesture.
type State struct {
	Phase          Phase
	StartY         int
	CurrentY       int
	ScrollYAtStart int
	CanPull        bool
	// Inert is set when the current touch sequence can no longer pull.
	Inert bool
}

// Delta is the vertical distance pulled so far.
func (s State) Delta() int {
	return s.CurrentY - s.StartY
}

// MoveResult tells the host whether to suppress the default touch-move
// action (native scrolling).
type MoveResult struct {
	PreventDefault bool
}

// Reloader performs the refresh once a pull commits.
type Reloader func()

// Options configures a Controller.
type Options struct {
	Scheduler clock.Scheduler
	Reload    Reloader
	Logger    logging.Logger
}

// Controller is safe for concurrent use.
type Controller struct {
	scheduler clock.Scheduler
	reload    Reloader
	logger    logging.Logger

	mu    sync.Mutex
	state State
	frame Frame
	timer clock.Timer
}

// NewController returns an idle controller.
func NewController(opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = clock.NewReal()
	}
	if opts.Reload == nil {
		opts.Reload = func() {}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Controller{
		scheduler: opts.Scheduler,
		reload:    opts.Reload,
		logger:    opts.Logger.With("component", "gesture"),
	}
}

// State returns a snapshot of the gesture state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Frame returns what should currently be drawn.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// TouchStart arms the gesture when the page is scrolled to the very top.
func (c *Controller) TouchStart(y, scrollY int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase == Refreshing {
		return
	}
	c.stopTimerLocked()

	if scrollY != 0 {
		c.state = State{Phase: Idle, Inert: true, ScrollYAtStart: scrollY}
		c.removeIndicatorLocked()
		return
	}
	c.state = State{Phase: Tracking, StartY: y, CurrentY: y}
	c.frame.OverscrollContained = true
	c.frame.Transition = 0
}

// TouchMove follows the finger. PreventDefault is only requested while the
// pull is eligible and growing.
func (c *Controller) TouchMove(y, scrollY int) MoveResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Inert || (c.state.Phase != Tracking && c.state.Phase != Committing) {
		return MoveResult{}
	}
	c.state.CurrentY = y
	delta := c.state.Delta()

	if scrollY != 0 || c.state.ScrollYAtStart != 0 || delta < 0 {
		c.disqualifyLocked()
		return MoveResult{}
	}
	if delta <= StartThreshold {
		return MoveResult{}
	}

	c.state.CanPull = true
	c.state.Phase = Committing
	c.frame = pullFrame(float64(delta))
	return MoveResult{PreventDefault: true}
}

// TouchEnd commits the pull or animates it away.
func (c *Controller) TouchEnd(scrollY int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Inert {
		c.state = State{}
		return
	}

	switch c.state.Phase {
	case Tracking:
		c.state = State{}
		c.removeIndicatorLocked()
	case Committing:
		if c.state.Delta() > CommitThreshold && scrollY == 0 && c.state.ScrollYAtStart == 0 {
			c.commitLocked()
			return
		}
		c.resetLocked()
	}
}

func (c *Controller) commitLocked() {
	c.logger.Debug("pull committed", "delta", c.state.Delta())
	c.state.Phase = Refreshing
	c.frame = pullFrame(progressRange)
	c.frame.IndicatorHeight = RefreshingHeight
	c.frame.Padding = RefreshingHeight
	c.frame.Spinner = true
	c.frame.OverscrollContained = false

	c.timer = c.scheduler.AfterFunc(ReloadDelay, func() {
		c.mu.Lock()
		c.timer = nil
		c.state = State{}
		c.removeIndicatorLocked()
		c.mu.Unlock()

		c.reload()
	})
}

func (c *Controller) resetLocked() {
	c.state.Phase = Resetting
	c.state.CanPull = false
	c.frame.IndicatorHeight = 0
	c.frame.Padding = 0
	c.frame.OverscrollContained = false
	c.frame.Transition = ResetDuration

	c.timer = c.scheduler.AfterFunc(ResetDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.timer = nil
		c.state = State{}
		c.removeIndicatorLocked()
	})
}

// disqualifyLocked aborts the current touch sequence.
func (c *Controller) disqualifyLocked() {
	c.logger.Debug("pull disqualified", "delta", c.state.Delta())
	c.state = State{Phase: Idle, Inert: true}
	c.frame.OverscrollContained = false
	if !c.frame.IndicatorPresent {
		return
	}
	c.frame.IndicatorHeight = 0
	c.frame.Padding = 0
	c.frame.Transition = RemoveDelay
	c.timer = c.scheduler.AfterFunc(RemoveDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.timer = nil
		c.removeIndicatorLocked()
	})
}

// removeIndicatorLocked is idempotent.
func (c *Controller) removeIndicatorLocked() {
	c.frame = Frame{}
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
