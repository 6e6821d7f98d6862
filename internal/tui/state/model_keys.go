package state

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/scroll"
)

const detailScrollLines = 1

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if i, ok := sectionShortcut(msg); ok {
		m.switchSection(i)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.uiState.ToggleFullHelp()
		m.help.ShowAll = m.uiState.ShowFullHelp()
	case key.Matches(msg, m.keys.Back):
		m.handleEscape()
	case key.Matches(msg, m.keys.Up):
		m.handleCursorUp()
	case key.Matches(msg, m.keys.Down):
		m.handleCursorDown()
	case key.Matches(msg, m.keys.NextSection):
		m.cycleSection(1)
	case key.Matches(msg, m.keys.PrevSection):
		m.cycleSection(-1)
	case key.Matches(msg, m.keys.Home):
		m.logoClicked()
	case key.Matches(msg, m.keys.Reload):
		return m.reloadCmd()
	case m.isDetail():
		return m.handleDetailKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
	return nil
}

// handleBoardKey handles the bindings that only apply to a section page.
func (m *Model) handleBoardKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveSelected(reorder.Up)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveSelected(reorder.Down)
	case key.Matches(msg, m.keys.Mark):
		return m.toggleMark()
	case key.Matches(msg, m.keys.Sort):
		return m.sortCmd()
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.selectedItem(); ok {
			m.openDetail(it.ID)
		}
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextItem):
		m.openSibling(1)
	case key.Matches(msg, m.keys.PrevItem):
		m.openSibling(-1)
	}
	return nil
}

// handleEscape cancels a pending drop first, then dismisses the toast,
// then goes back.
func (m *Model) handleEscape() {
	if m.uiState.MarkedID() != "" {
		m.uiState.ClearMark()
		m.updateViewportContent()
		return
	}
	if _, ok := m.errorHandler.Latest(); ok {
		m.errorHandler.Dismiss()
		return
	}
	m.goBack(scroll.IntentBack)
}

func (m *Model) handleCursorUp() {
	if m.isDetail() {
		m.scrollBy(-detailScrollLines)
		return
	}
	m.uiState.MoveCursorUp()
	m.afterCursorMove()
}

func (m *Model) handleCursorDown() {
	if m.isDetail() {
		m.scrollBy(detailScrollLines)
		return
	}
	m.uiState.MoveCursorDown(len(m.visible))
	m.afterCursorMove()
}

func (m *Model) afterCursorMove() {
	before := m.uiState.GetViewport().YOffset
	m.uiState.EnsureCursorVisible(len(m.visible))
	m.updateViewportContent()
	if m.uiState.GetViewport().YOffset != before {
		m.scroll.Scrolled()
	}
}

// scrollBy scrolls the page by lines and lets the scroll manager sample it.
func (m *Model) scrollBy(lines int) {
	vp := m.uiState.GetViewport()
	before := vp.YOffset
	vp.SetYOffset(vp.YOffset + lines)
	if vp.YOffset == before {
		return
	}
	m.uiState.FollowViewport(m.contentLen())
	m.updateViewportContent()
	m.scroll.Scrolled()
}

func (m *Model) moveSelected(dir reorder.Direction) tea.Cmd {
	it, ok := m.selectedItem()
	if !ok || !m.svc.CanMove(it.ID, dir) {
		return nil
	}
	return m.moveCmd(it.ID, dir)
}

// toggleMark picks up the selected row, or drops the picked-up row onto it.
func (m *Model) toggleMark() tea.Cmd {
	it, ok := m.selectedItem()
	if !ok {
		return nil
	}
	marked := m.uiState.MarkedID()
	if marked == "" {
		m.uiState.Mark(it.ID)
		m.updateViewportContent()
		return nil
	}
	m.uiState.ClearMark()
	m.updateViewportContent()
	if marked == it.ID {
		return nil
	}
	return m.dragCmd(marked, it.ID)
}

// sectionShortcut maps the number keys to tabs.
func sectionShortcut(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
