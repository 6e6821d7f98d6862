package state

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hallyupress/newsdesk/internal/clock"
	"github.com/hallyupress/newsdesk/internal/errors"
	"github.com/hallyupress/newsdesk/internal/gesture"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/scroll"
	"github.com/hallyupress/newsdesk/internal/session"
)

const (
	// tabs, column header, toast and footer
	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	toastDuration         = 5 * time.Second
	spinnerInterval       = 80 * time.Millisecond
	homePath              = "/"
	detailPathPrefix      = "/news/"
)

// Options configures a Model.
type Options struct {
	// Client is the CRUD API of the board. Required.
	Client reorder.Client
	// Concurrency bounds in-flight rank updates.
	Concurrency int
	// Session persists scroll records. Defaults to an in-memory session.
	Session *session.AppSession
	// Registry defaults to the news site routes.
	Registry *scroll.Registry
	// Scheduler defaults to timers delivered through the running program.
	Scheduler clock.Scheduler
	Logger    logging.Logger
	// StartPath is the first page shown. Defaults to home.
	StartPath string
}

// section is one tab of the board.
type section struct {
	label    string
	path     string
	category string
}

// Model is the board TUI. It hosts the scroll manager, the pull-to-refresh
// controller and the optimistic reorder service.
type Model struct {
	uiState      *UIState
	errorHandler *errors.TUIHandler
	keys         keyMap
	help         help.Model

	svc      *reorder.Service
	scroll   *scroll.Manager
	gesture  *gesture.Controller
	session  *session.AppSession
	registry *scroll.Registry
	logger   logging.Logger
	sender   *sender
	now      func() time.Time
	tick     func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	ctx      context.Context

	sections []section
	path     string
	history  []string
	items    []reorder.Item
	visible  []reorder.Item
	loading  bool

	touching        bool
	lastTouchY      int
	reloadRequested bool
	spinning        bool
	spinnerTick     int
	toastAt         time.Time
}

// NewModel creates a new board model.
func NewModel(opts Options) *Model {
	if opts.Client == nil {
		panic("state.NewModel: client cannot be nil")
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	if opts.Session == nil {
		opts.Session = session.New(session.NewMemory(), opts.Logger)
	}
	if opts.Registry == nil {
		opts.Registry = scroll.NewRegistry(scroll.DefaultRoutes()...)
	}
	if opts.StartPath == "" {
		opts.StartPath = homePath
	}

	m := &Model{
		uiState:  NewUIState(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		session:  opts.Session,
		registry: opts.Registry,
		logger:   opts.Logger.With("component", "tui"),
		sender:   &sender{},
		now:      time.Now,
		tick:     tea.Tick,
		ctx:      context.Background(),
		path:     opts.StartPath,
		loading:  true,
	}
	m.sections = sectionsOf(opts.Registry)

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = newProgramScheduler(m.sender)
	}

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.logger.Debug("toast", "type", msg.Type.String(), "text", msg.Text)
	})
	m.svc = reorder.NewService(opts.Client, reorder.Options{
		Concurrency: opts.Concurrency,
		Notifier:    m.errorHandler,
		Logger:      opts.Logger,
		OnChange: func(items []reorder.Item) {
			m.sender.Send(boardChangedMsg{items: items})
		},
	})
	m.scroll = scroll.NewManager(scroll.Options{
		Session:   opts.Session,
		Viewport:  boardViewport{m: m},
		Registry:  opts.Registry,
		Scheduler: scheduler,
		Logger:    opts.Logger,
	})
	m.gesture = gesture.NewController(gesture.Options{
		Scheduler: scheduler,
		Reload:    func() { m.reloadRequested = true },
		Logger:    opts.Logger,
	})
	return m
}

// SetSender attaches the running program. Timer callbacks and optimistic
// board updates are delivered through it.
func (m *Model) SetSender(send func(tea.Msg)) {
	m.sender.set(send)
}

// Init mounts the start page and loads the board.
func (m *Model) Init() tea.Cmd {
	m.updateViewportContent()
	m.scroll.Mount(m.path)
	return m.reloadCmd()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	case tea.MouseMsg:
		cmd = m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		m.handleWindowSizeMsg(msg)
	case timerFiredMsg:
		msg.timer.run(msg.fn)
	case boardLoadedMsg:
		m.handleBoardLoaded(msg)
	case boardChangedMsg:
		m.setItems(msg.items)
	case batchSettledMsg:
		m.handleBatchSettled(msg)
	case toastExpiredMsg:
		if latest, ok := m.errorHandler.Latest(); ok && latest.Timestamp.Equal(msg.at) {
			m.errorHandler.Dismiss()
		}
	case spinnerTickMsg:
		m.spinning = false
		m.spinnerTick++
	}
	return m, tea.Batch(cmd, m.flushReload(), m.spinnerCmd(), m.toastCmd())
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) {
	m.uiState.SetWidth(msg.Width)
	m.uiState.SetHeight(msg.Height)
	m.uiState.UpdateViewportSize()
	m.help.Width = msg.Width
	m.updateViewportContent()
}

func (m *Model) handleBoardLoaded(msg boardLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		m.logger.Error("load board failed", "error", msg.err)
		m.errorHandler.Error("Could not load list: " + msg.err.Error())
	}
	m.setItems(msg.items)
}

func (m *Model) handleBatchSettled(msg batchSettledMsg) {
	if msg.err != nil && !stderrors.Is(msg.err, reorder.ErrCrossCategory) {
		m.logger.Warn("reorder rejected", "op", msg.op, "error", msg.err)
		m.errorHandler.Error(msg.err.Error())
	}
	m.setItems(msg.items)
}

// flushReload turns a reload requested by a committed pull into a command.
func (m *Model) flushReload() tea.Cmd {
	if !m.reloadRequested {
		return nil
	}
	m.reloadRequested = false
	m.logger.Info("pull to refresh committed, reloading board")
	return m.reloadCmd()
}

func (m *Model) spinnerCmd() tea.Cmd {
	if m.spinning || !m.gesture.Frame().Spinner {
		return nil
	}
	m.spinning = true
	return m.tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

// toastCmd schedules the expiry of a toast that has not been seen before.
func (m *Model) toastCmd() tea.Cmd {
	latest, ok := m.errorHandler.Latest()
	if !ok || latest.Timestamp.Equal(m.toastAt) {
		return nil
	}
	m.toastAt = latest.Timestamp
	at := latest.Timestamp
	return m.tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{at: at} })
}

func (m *Model) reloadCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		err := svc.Reload(ctx)
		return boardLoadedMsg{items: svc.Items(), err: err}
	}
}

// serviceCmd runs a reorder operation off the UI goroutine. The service
// reports optimistic changes through the sender while the batch is in
// flight.
func (m *Model) serviceCmd(op string, run func(ctx context.Context) (reorder.Summary, error)) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		summary, err := run(ctx)
		return batchSettledMsg{op: op, summary: summary, items: svc.Items(), err: err}
	}
}

func (m *Model) moveCmd(id string, dir reorder.Direction) tea.Cmd {
	return m.serviceCmd("move", func(ctx context.Context) (reorder.Summary, error) {
		return m.svc.MoveOneStep(ctx, id, dir)
	})
}

func (m *Model) dragCmd(draggedID, targetID string) tea.Cmd {
	return m.serviceCmd("drag", func(ctx context.Context) (reorder.Summary, error) {
		return m.svc.DragReorder(ctx, draggedID, targetID)
	})
}

func (m *Model) sortCmd() tea.Cmd {
	return m.serviceCmd("sort-recency", func(ctx context.Context) (reorder.Summary, error) {
		return m.svc.BulkSortByRecency(ctx)
	})
}

// setItems replaces the board and keeps the cursor on the same item.
func (m *Model) setItems(items []reorder.Item) {
	selected, hasSelected := m.selectedItem()
	m.items = items
	m.refreshVisible()
	if hasSelected {
		for i, it := range m.visible {
			if it.ID == selected.ID {
				m.uiState.SetCursor(i)
				break
			}
		}
	}
	m.uiState.AdjustCursorBounds(len(m.visible))
	m.updateViewportContent()
	m.uiState.EnsureCursorVisible(len(m.visible))
}

// refreshVisible filters the board down to the current section.
func (m *Model) refreshVisible() {
	m.visible = nil
	sec, ok := m.currentSection()
	if !ok {
		return
	}
	for _, it := range m.items {
		if sec.category == "" || it.Category == sec.category {
			m.visible = append(m.visible, it)
		}
	}
}

func (m *Model) selectedItem() (reorder.Item, bool) {
	cursor := m.uiState.GetCursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return reorder.Item{}, false
	}
	return m.visible[cursor], true
}

func (m *Model) findItem(id string) (reorder.Item, bool) {
	for _, it := range m.items {
		if it.ID == id {
			return it, true
		}
	}
	return reorder.Item{}, false
}

// contentLen is the number of cursor positions on the current page.
func (m *Model) contentLen() int {
	if m.isDetail() {
		return 0
	}
	return len(m.visible)
}

// sectionsOf derives the board tabs from the section routes. Home shows
// every category; other sections filter by their own name.
func sectionsOf(registry *scroll.Registry) []section {
	var out []section
	for _, route := range registry.Routes() {
		if route.Kind != scroll.Section {
			continue
		}
		label := strings.TrimSuffix(route.PageKey, session.SectionKey(""))
		category := strings.TrimPrefix(route.Pattern, "/")
		out = append(out, section{label: label, path: route.Pattern, category: category})
	}
	return out
}
