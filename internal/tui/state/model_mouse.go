package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hallyupress/newsdesk/internal/scroll"
	"github.com/hallyupress/newsdesk/internal/tui/render"
)

const wheelLines = 3

// handleMouseMsg routes mouse events. A left press on a row's drag handle
// starts a drag; any other left press starts a touch sequence that the
// gesture controller may turn into a pull to refresh. Pulls are measured
// in pixels at linePixels per terminal line.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		return m.handleMousePress(msg)
	case tea.MouseActionMotion:
		m.handleMouseMotion(msg)
	case tea.MouseActionRelease:
		return m.handleMouseRelease()
	}
	return nil
}

func (m *Model) handleMousePress(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelLines)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelLines)
		return nil
	case tea.MouseButtonBackward:
		m.goBack(scroll.IntentUnknown)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if msg.Y == 0 {
		m.handleHeaderClick(msg.X)
		return nil
	}

	row, onRow := m.rowAt(msg.Y)
	if onRow && !m.isDetail() {
		m.uiState.SetCursor(row)
		if msg.X < render.HandleWidth {
			m.uiState.StartDrag(m.visible[row].ID, row)
			m.updateViewportContent()
			return nil
		}
		m.updateViewportContent()
	}

	m.touching = true
	m.lastTouchY = msg.Y
	m.gesture.TouchStart(msg.Y*linePixels, m.scrollY())
	return nil
}

func (m *Model) handleMouseMotion(msg tea.MouseMsg) {
	if m.uiState.IsDragging() {
		if row, ok := m.rowAt(msg.Y); ok {
			m.uiState.SetDropIndex(row)
			m.updateViewportContent()
		}
		return
	}
	if !m.touching {
		return
	}

	res := m.gesture.TouchMove(msg.Y*linePixels, m.scrollY())
	if !res.PreventDefault {
		// The gesture did not claim the move: scroll the content like a
		// touch screen would.
		m.scrollBy(m.lastTouchY - msg.Y)
	}
	m.lastTouchY = msg.Y
}

func (m *Model) handleMouseRelease() tea.Cmd {
	if m.uiState.IsDragging() {
		marked := m.uiState.MarkedID()
		target := m.uiState.DropIndex()
		m.uiState.ClearMark()
		m.updateViewportContent()
		if target < 0 || target >= len(m.visible) || m.visible[target].ID == marked {
			return nil
		}
		return m.dragCmd(marked, m.visible[target].ID)
	}
	if !m.touching {
		return nil
	}
	m.touching = false
	m.gesture.TouchEnd(m.scrollY())
	return nil
}

// handleHeaderClick switches tabs or, on the logo, goes home.
func (m *Model) handleHeaderClick(x int) {
	pos := len(render.Logo)
	if x < pos {
		m.logoClicked()
		return
	}
	pos++
	for i, sec := range m.sections {
		width := len(sec.label) + 2
		if x >= pos && x < pos+width {
			m.switchSection(i)
			return
		}
		pos += width + 1
	}
}

// rowAt maps a screen line to a board row.
func (m *Model) rowAt(y int) (int, bool) {
	top := m.contentTop()
	if y < top || y >= top+m.visibleHeight() {
		return 0, false
	}
	row := y - top + m.uiState.GetViewport().YOffset
	if row < 0 || row >= len(m.visible) {
		return 0, false
	}
	return row, true
}

// contentTop is the first screen line of the viewport, below the tabs,
// the column header and the pull indicator.
func (m *Model) contentTop() int {
	return 2 + render.IndicatorLines(m.gesture.Frame(), linePixels)
}

// visibleHeight is the viewport height left after the pull indicator.
func (m *Model) visibleHeight() int {
	return max(m.uiState.GetViewport().Height-render.IndicatorLines(m.gesture.Frame(), linePixels), 1)
}
