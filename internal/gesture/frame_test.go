package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameMath(t *testing.T) {
	tests := []struct {
		delta    float64
		height   float64
		progress float64
	}{
		{-20, 0, 0},
		{0, 0, 0},
		{10, 8, 0.1},
		{100, 80, 1},
		{125, 100, 1},
		{500, 100, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.height, IndicatorHeight(tt.delta), 1e-9, "height at %v", tt.delta)
		assert.InDelta(t, tt.progress, Progress(tt.delta), 1e-9, "progress at %v", tt.delta)
	}
}

func TestProgressMappings(t *testing.T) {
	assert.InDelta(t, 0, Rotation(0), 1e-9)
	assert.InDelta(t, 120, Rotation(1), 1e-9)
	assert.InDelta(t, 0.8, Scale(0), 1e-9)
	assert.InDelta(t, 1.2, Scale(1), 1e-9)
	assert.InDelta(t, 0.5, Opacity(0), 1e-9)
	assert.InDelta(t, 1.0, Opacity(1), 1e-9)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "committing", Committing.String())
	assert.Equal(t, "refreshing", Refreshing.String())
}
