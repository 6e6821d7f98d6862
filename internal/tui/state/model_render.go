package state

import (
	"strings"

	"github.com/hallyupress/newsdesk/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	width := m.uiState.GetWidth()
	frame := m.gesture.Frame()

	var s strings.Builder

	s.WriteString(render.Header(m.tabs(), width))
	s.WriteString("\n")
	if !m.isDetail() {
		s.WriteString(render.ColumnHeader(width))
	}
	s.WriteString("\n")

	if indicator := render.Indicator(frame, width, linePixels, m.spinnerTick); indicator != "" {
		s.WriteString(indicator)
		s.WriteString("\n")
	}

	// The indicator pushes the content down; the viewport gives up the
	// same number of lines so the layout keeps its height.
	vp := *m.uiState.GetViewport()
	vp.Height = m.visibleHeight()
	s.WriteString(vp.View())
	s.WriteString("\n")

	if latest, ok := m.errorHandler.Latest(); ok {
		s.WriteString(render.Toast(latest, width))
	}
	s.WriteString("\n")

	s.WriteString(render.Footer(render.FooterState{
		Path:    m.path,
		Help:    m.help.View(m.keys),
		Marking: m.uiState.MarkedID() != "" && !m.uiState.IsDragging(),
		Width:   width,
	}))

	return s.String()
}

// updateViewportContent renders the current page into the viewport.
func (m *Model) updateViewportContent() {
	vp := m.uiState.GetViewport()
	if m.isDetail() {
		vp.SetContent(m.renderDetail())
		return
	}
	vp.SetContent(m.renderBoard())
}

func (m *Model) renderDetail() string {
	item, ok := m.detailItem()
	if !ok {
		if m.loading {
			return render.Empty("Loading...")
		}
		return render.Empty("Item not found")
	}
	return render.Detail(item, m.uiState.GetWidth(), m.now())
}

func (m *Model) renderBoard() string {
	if len(m.visible) == 0 {
		if m.loading {
			return render.Empty("Loading...")
		}
		return render.Empty("No items in this section")
	}

	var content strings.Builder
	width := m.uiState.GetWidth()
	cursor := m.uiState.GetCursor()
	marked := m.uiState.MarkedID()
	drop := -1
	if m.uiState.IsDragging() {
		drop = m.uiState.DropIndex()
	}
	now := m.now()

	for i, it := range m.visible {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(render.Row(render.RowState{
			Item:       it,
			Width:      width,
			Selected:   i == cursor,
			Marked:     it.ID == marked,
			DropTarget: i == drop && it.ID != marked,
			Now:        now,
		}))
	}
	return content.String()
}

func (m *Model) tabs() []render.Tab {
	active := m.sectionIndex()
	tabs := make([]render.Tab, len(m.sections))
	for i, sec := range m.sections {
		tabs[i] = render.Tab{Label: sec.label, Active: i == active}
	}
	return tabs
}
