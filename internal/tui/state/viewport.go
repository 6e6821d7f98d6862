package state

import "github.com/hallyupress/newsdesk/internal/scroll"

// linePixels is the number of pixels one terminal line stands for. Scroll
// records and pull distances are kept in pixels so the thresholds of the
// scroll and gesture packages apply unchanged.
const linePixels = 20

// boardViewport exposes the board viewport to the scroll manager.
type boardViewport struct {
	m *Model
}

var _ scroll.Viewport = boardViewport{}

func (v boardViewport) PageYOffset() (int, bool) {
	return v.m.uiState.GetViewport().YOffset * linePixels, true
}

// DocumentScrollTop and BodyScrollTop have no terminal counterpart.
func (v boardViewport) DocumentScrollTop() (int, bool) { return 0, false }
func (v boardViewport) BodyScrollTop() (int, bool)     { return 0, false }

func (v boardViewport) ScrollTo(y int) {
	v.m.uiState.GetViewport().SetYOffset(y / linePixels)
	v.m.uiState.FollowViewport(v.m.contentLen())
}

// scrollY is the board offset in pixels as the gesture controller sees it.
func (m *Model) scrollY() int {
	return m.uiState.GetViewport().YOffset * linePixels
}
