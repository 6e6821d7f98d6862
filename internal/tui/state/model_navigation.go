package state

import (
	"net/url"

	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/scroll"
)

// navigate pushes the current page on the history and moves to path.
func (m *Model) navigate(to string, intent scroll.Intent) {
	if to == m.path {
		return
	}
	m.history = append(m.history, m.path)
	m.transition(to, intent)
}

// transition moves to path and feeds the router events to the scroll
// manager. Pages render synchronously, so start, complete and mount follow
// each other within one update.
func (m *Model) transition(to string, intent scroll.Intent) {
	from := m.path
	m.scroll.NavigationStart(scroll.Event{From: from, To: to, Trigger: scroll.TriggerStart, Intent: intent})

	m.path = to
	m.uiState.ClearMark()
	m.uiState.ResetCursor()
	m.refreshVisible()
	m.updateViewportContent()

	m.scroll.NavigationComplete()
	m.scroll.Mount(to)
	m.logger.Debug("navigated", "from", from, "to", to)
}

// goBack pops the history like the browser back button. intent is
// IntentBack for the back key and IntentUnknown for the mouse back button,
// which relies on the popstate heuristic instead.
func (m *Model) goBack(intent scroll.Intent) bool {
	if len(m.history) == 0 {
		return false
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.scroll.Popstate()
	m.transition(prev, intent)
	return true
}

// openDetail navigates to the detail page of id. A missing item aborts the
// transition.
func (m *Model) openDetail(id string) {
	to := detailPath(id)
	if _, ok := m.findItem(id); !ok {
		m.scroll.NavigationStart(scroll.Event{From: m.path, To: to, Trigger: scroll.TriggerStart, Intent: scroll.IntentForward})
		m.scroll.NavigationError()
		m.errorHandler.Warning("Item " + id + " no longer exists")
		return
	}
	m.navigate(to, scroll.IntentForward)
}

// openSibling opens the neighbouring item of the same category from a
// detail page.
func (m *Model) openSibling(step int) {
	current, ok := m.detailItem()
	if !ok {
		return
	}
	var siblings []string
	idx := -1
	for _, it := range m.items {
		if it.Category != current.Category {
			continue
		}
		if it.ID == current.ID {
			idx = len(siblings)
		}
		siblings = append(siblings, it.ID)
	}
	next := idx + step
	if idx < 0 || next < 0 || next >= len(siblings) {
		return
	}
	m.openDetail(siblings[next])
}

// switchSection moves to the section at index i.
func (m *Model) switchSection(i int) {
	if i < 0 || i >= len(m.sections) {
		return
	}
	m.navigate(m.sections[i].path, scroll.IntentForward)
}

// cycleSection moves step tabs from the current one, wrapping around. From
// a detail page it counts from home.
func (m *Model) cycleSection(step int) {
	n := len(m.sections)
	if n == 0 {
		return
	}
	i := m.sectionIndex()
	if i < 0 {
		i = 0
	}
	m.switchSection(((i+step)%n + n) % n)
}

// logoClicked goes home without recording the page being left.
func (m *Model) logoClicked() {
	if m.path == homePath {
		return
	}
	m.session.MarkLogoClicked()
	m.navigate(homePath, scroll.IntentForward)
}

func (m *Model) isDetail() bool {
	return m.registry.Match(m.path).Route.Kind == scroll.Detail
}

func (m *Model) detailItem() (reorder.Item, bool) {
	match := m.registry.Match(m.path)
	if match.Route.Kind != scroll.Detail {
		return reorder.Item{}, false
	}
	id, err := url.PathUnescape(match.ItemID)
	if err != nil {
		return reorder.Item{}, false
	}
	return m.findItem(id)
}

func (m *Model) sectionIndex() int {
	path := m.registry.Match(m.path).Path
	for i, sec := range m.sections {
		if sec.path == path {
			return i
		}
	}
	return -1
}

func (m *Model) currentSection() (section, bool) {
	i := m.sectionIndex()
	if i < 0 {
		return section{}, false
	}
	return m.sections[i], true
}

func detailPath(id string) string {
	return detailPathPrefix + url.PathEscape(id)
}

// CurrentPath returns the page shown.
func (m *Model) CurrentPath() string {
	return m.path
}
