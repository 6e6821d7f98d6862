package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lines(n int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = "row"
	}
	return strings.Join(rows, "\n")
}

func TestNewUIState(t *testing.T) {
	u := NewUIState()

	assert.Equal(t, defaultViewportWidth, u.GetWidth())
	assert.Equal(t, defaultViewportHeight, u.GetHeight())
	assert.Equal(t, 0, u.GetCursor())
	assert.Equal(t, -1, u.DropIndex())
	assert.Empty(t, u.MarkedID())
}

func TestUIStateSizeFallsBackToDefaults(t *testing.T) {
	u := NewUIState()

	u.SetWidth(0)
	u.SetHeight(-3)

	assert.Equal(t, defaultViewportWidth, u.GetWidth())
	assert.Equal(t, defaultViewportHeight, u.GetHeight())
}

func TestUpdateViewportSizeKeepsOffset(t *testing.T) {
	u := NewUIState()
	u.GetViewport().SetContent(lines(50))
	u.GetViewport().SetYOffset(7)

	u.SetWidth(120)
	u.SetHeight(30)
	u.UpdateViewportSize()

	vp := u.GetViewport()
	assert.Equal(t, 120, vp.Width)
	assert.Equal(t, 30-headerFooterLines, vp.Height)
	assert.Equal(t, 7, vp.YOffset)
}

func TestCursorMovementStaysInBounds(t *testing.T) {
	u := NewUIState()

	u.MoveCursorUp()
	assert.Equal(t, 0, u.GetCursor())

	u.MoveCursorDown(2)
	u.MoveCursorDown(2)
	assert.Equal(t, 1, u.GetCursor())

	u.SetCursor(-4)
	assert.Equal(t, 0, u.GetCursor())

	u.SetCursor(9)
	u.AdjustCursorBounds(3)
	assert.Equal(t, 2, u.GetCursor())

	u.AdjustCursorBounds(0)
	assert.Equal(t, 0, u.GetCursor())
}

func TestEnsureCursorVisible(t *testing.T) {
	u := NewUIState()
	u.SetHeight(10)
	u.UpdateViewportSize() // 6 rows
	u.GetViewport().SetContent(lines(20))

	u.SetCursor(8)
	u.EnsureCursorVisible(20)
	assert.Equal(t, 3, u.GetViewport().YOffset)

	u.SetCursor(1)
	u.EnsureCursorVisible(20)
	assert.Equal(t, 1, u.GetViewport().YOffset)
}

func TestFollowViewport(t *testing.T) {
	u := NewUIState()
	u.SetHeight(10)
	u.UpdateViewportSize()
	u.GetViewport().SetContent(lines(20))

	u.GetViewport().SetYOffset(10)
	u.FollowViewport(20)
	assert.Equal(t, 10, u.GetCursor())

	u.SetCursor(19)
	u.GetViewport().SetYOffset(2)
	u.FollowViewport(20)
	assert.Equal(t, 7, u.GetCursor())

	u.FollowViewport(0)
	assert.Equal(t, 0, u.GetCursor())
}

func TestMarkAndDrag(t *testing.T) {
	u := NewUIState()

	u.Mark("a")
	assert.Equal(t, "a", u.MarkedID())
	assert.False(t, u.IsDragging())

	u.StartDrag("b", 3)
	assert.Equal(t, "b", u.MarkedID())
	assert.True(t, u.IsDragging())
	assert.Equal(t, 3, u.DropIndex())

	u.SetDropIndex(5)
	assert.Equal(t, 5, u.DropIndex())

	u.ClearMark()
	assert.Empty(t, u.MarkedID())
	assert.False(t, u.IsDragging())
	assert.Equal(t, -1, u.DropIndex())
}

func TestToggleFullHelp(t *testing.T) {
	u := NewUIState()

	u.ToggleFullHelp()
	assert.True(t, u.ShowFullHelp())
	u.ToggleFullHelp()
	assert.False(t, u.ShowFullHelp())
}
