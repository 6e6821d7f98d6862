package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState manages all UI-specific state for the TUI: viewport geometry,
// the cursor and the drag in progress. Board data lives in the reorder
// service.
type UIState struct {
	// Viewport management
	viewport viewport.Model
	width    int
	height   int

	// Cursor and navigation
	cursor int

	// Drag and drop. markedID is the row picked up for a drop, either by
	// the drag handle or by the mark key. dropIndex is the row under the
	// pointer while a mouse drag is active, -1 otherwise.
	markedID  string
	dragging  bool
	dropIndex int

	// Help
	showFullHelp bool
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	return &UIState{
		viewport:  viewport.New(defaultViewportWidth, defaultViewportHeight-headerFooterLines),
		width:     defaultViewportWidth,
		height:    defaultViewportHeight,
		dropIndex: -1,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width of the UI.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height of the UI.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= 0 {
		u.height = defaultViewportHeight
	}
}

// UpdateViewportSize resizes the viewport to the current width and height,
// keeping its content and offset.
func (u *UIState) UpdateViewportSize() {
	u.viewport.Width = u.width
	u.viewport.Height = max(u.height-headerFooterLines, 1)
}

// GetCursor returns the current cursor position.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// SetCursor updates the cursor position.
func (u *UIState) SetCursor(cursor int) {
	u.cursor = cursor
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// MoveCursorUp moves the cursor up one position if possible.
func (u *UIState) MoveCursorUp() {
	if u.cursor > 0 {
		u.cursor--
	}
}

// MoveCursorDown moves the cursor down one position if possible.
func (u *UIState) MoveCursorDown(listLen int) {
	if u.cursor < listLen-1 {
		u.cursor++
	}
}

// EnsureCursorVisible adjusts the viewport to ensure the cursor is visible.
func (u *UIState) EnsureCursorVisible(listLen int) {
	if listLen == 0 {
		return
	}

	lineOffset := u.viewport.YOffset
	viewportHeight := u.viewport.Height

	if u.cursor < lineOffset {
		u.viewport.SetYOffset(u.cursor)
	}
	if u.cursor >= lineOffset+viewportHeight {
		u.viewport.SetYOffset(u.cursor - viewportHeight + 1)
	}
}

// FollowViewport moves the cursor back inside the visible rows after the
// viewport was scrolled underneath it.
func (u *UIState) FollowViewport(listLen int) {
	if listLen == 0 {
		u.cursor = 0
		return
	}
	top := u.viewport.YOffset
	bottom := top + u.viewport.Height - 1
	if u.cursor < top {
		u.cursor = top
	}
	if u.cursor > bottom {
		u.cursor = bottom
	}
	u.AdjustCursorBounds(listLen)
}

// AdjustCursorBounds ensures the cursor is within valid bounds.
func (u *UIState) AdjustCursorBounds(listLen int) {
	if listLen == 0 {
		u.cursor = 0
		return
	}
	if u.cursor >= listLen {
		u.cursor = listLen - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// ResetCursor resets the cursor to the first item.
func (u *UIState) ResetCursor() {
	u.cursor = 0
}

// MarkedID returns the row picked up for a drop, or "".
func (u *UIState) MarkedID() string {
	return u.markedID
}

// Mark picks up id for a keyboard drop.
func (u *UIState) Mark(id string) {
	u.markedID = id
	u.dragging = false
	u.dropIndex = -1
}

// StartDrag picks up id for a mouse drag.
func (u *UIState) StartDrag(id string, row int) {
	u.markedID = id
	u.dragging = true
	u.dropIndex = row
}

// IsDragging reports whether a mouse drag is active.
func (u *UIState) IsDragging() bool {
	return u.dragging
}

// DropIndex returns the row under the pointer during a mouse drag.
func (u *UIState) DropIndex() int {
	return u.dropIndex
}

// SetDropIndex updates the row under the pointer.
func (u *UIState) SetDropIndex(row int) {
	u.dropIndex = row
}

// ClearMark drops whatever was picked up.
func (u *UIState) ClearMark() {
	u.markedID = ""
	u.dragging = false
	u.dropIndex = -1
}

// ToggleFullHelp switches between the short and the full key help.
func (u *UIState) ToggleFullHelp() {
	u.showFullHelp = !u.showFullHelp
}

// ShowFullHelp reports whether the full key help is shown.
func (u *UIState) ShowFullHelp() bool {
	return u.showFullHelp
}
