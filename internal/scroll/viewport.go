package scroll

// Viewport is the host's scroll surface. Each accessor reports false when
// it is unavailable; the first available one is used.
type Viewport interface {
	PageYOffset() (int, bool)
	DocumentScrollTop() (int, bool)
	BodyScrollTop() (int, bool)
	ScrollTo(y int)
}

// CurrentOffset reads the best available offset of v, or 0.
func CurrentOffset(v Viewport) int {
	if v == nil {
		return 0
	}
	for _, read := range []func() (int, bool){v.PageYOffset, v.DocumentScrollTop, v.BodyScrollTop} {
		if y, ok := read(); ok {
			return max(y, 0)
		}
	}
	return 0
}
