package gesture

import (
	"math"
	"time"
)

const (
	// StartThreshold is the pull distance after which the gesture takes over.
	StartThreshold = 5
	// CommitThreshold must be exceeded at touch-end to refresh.
	CommitThreshold = 100
	// MaxIndicatorHeight caps the indicator while pulling.
	MaxIndicatorHeight = 100.0
	// RefreshingHeight is the fixed indicator height while refreshing.
	RefreshingHeight = 80.0

	heightFactor  = 0.8
	maxRotation   = 120.0
	minScale      = 0.8
	scaleRange    = 0.4
	minOpacity    = 0.5
	opacityRange  = 0.5
	progressRange = 100.0
)

const (
	// ReloadDelay is the settle time between commit and reload.
	ReloadDelay = 400 * time.Millisecond
	// RemoveDelay is how long a disqualified indicator collapses before removal.
	RemoveDelay = 200 * time.Millisecond
	// ResetDuration is the animation back to zero when a pull is released early.
	ResetDuration = 300 * time.Millisecond
)

// IndicatorHeight returns min(delta*0.8, 100) for a non-negative delta.
func IndicatorHeight(delta float64) float64 {
	if delta <= 0 {
		return 0
	}
	return math.Min(delta*heightFactor, MaxIndicatorHeight)
}

// Progress returns min(delta/100, 1) clamped at 0.
func Progress(delta float64) float64 {
	if delta <= 0 {
		return 0
	}
	return math.Min(delta/progressRange, 1)
}

// Rotation in degrees for progress p.
func Rotation(p float64) float64 { return maxRotation * p }

// Scale for progress p.
func Scale(p float64) float64 { return minScale + scaleRange*p }

// Opacity for progress p.
func Opacity(p float64) float64 { return minOpacity + opacityRange*p }

// Frame is everything the host needs to draw the pull indicator.
type Frame struct {
	IndicatorPresent bool
	IndicatorHeight  float64
	// Padding is added above the content to push it down.
	Padding  float64
	Rotation float64
	Scale    float64
	Opacity  float64
	Spinner  bool
	// OverscrollContained is true while the gesture owns the overscroll.
	OverscrollContained bool
	// Transition is the animation duration the host should apply to the
	// change in height and padding.
	Transition time.Duration
}

func pullFrame(delta float64) Frame {
	p := Progress(delta)
	h := IndicatorHeight(delta)
	return Frame{
		IndicatorPresent:    true,
		IndicatorHeight:     h,
		Padding:             h,
		Rotation:            Rotation(p),
		Scale:               Scale(p),
		Opacity:             Opacity(p),
		OverscrollContained: true,
	}
}
