package render

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/hallyupress/newsdesk/internal/errors"
	"github.com/hallyupress/newsdesk/internal/gesture"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"zero", time.Time{}, ""},
		{"seconds", now.Add(-30 * time.Second), "30s"},
		{"minutes", now.Add(-5 * time.Minute), "5m"},
		{"hours", now.Add(-3 * time.Hour), "3h"},
		{"days", now.Add(-50 * time.Hour), "2d"},
		{"future", now.Add(time.Hour), "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calculateAge(tt.at, now))
		})
	}
}

func TestArrowGlyph(t *testing.T) {
	assert.Equal(t, "↓", arrowGlyph(0))
	assert.Equal(t, "↙", arrowGlyph(60))
	assert.Equal(t, "←", arrowGlyph(100))
	assert.Equal(t, "↻", arrowGlyph(120))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "unbounded", truncate("unbounded", 0))
}

func TestRowShowsRankCategoryAndTitle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := stripANSI(Row(RowState{
		Item: reorder.Item{
			ID:        "a1",
			Category:  "drama",
			Rank:      3,
			Title:     "Weekend ratings",
			UpdatedAt: now.Add(-2 * time.Hour),
		},
		Width: 80,
		Now:   now,
	}))

	assert.True(t, strings.HasPrefix(row, handleSymbol))
	assert.Contains(t, row, "#3")
	assert.Contains(t, row, "drama")
	assert.Contains(t, row, "Weekend ratings")
	assert.Contains(t, row, "2h")
}

func TestRowFallsBackToID(t *testing.T) {
	row := stripANSI(Row(RowState{Item: reorder.Item{ID: "no-title", Category: "music", Rank: 1}}))
	assert.Contains(t, row, "no-title")
}

func TestHeaderMarksActiveTab(t *testing.T) {
	header := stripANSI(Header([]Tab{{Label: "home"}, {Label: "drama", Active: true}}, 80))
	assert.Contains(t, header, Logo)
	assert.Contains(t, header, "home")
	assert.Contains(t, header, "drama")
}

func TestColumnHeader(t *testing.T) {
	header := stripANSI(ColumnHeader(80))
	for _, col := range []string{"RANK", "CATEGORY", "TITLE", "AGE"} {
		assert.Contains(t, header, col)
	}
}

func TestIndicatorLines(t *testing.T) {
	assert.Equal(t, 0, IndicatorLines(gesture.Frame{}, 20))
	assert.Equal(t, 0, IndicatorLines(gesture.Frame{IndicatorPresent: true}, 20))
	assert.Equal(t, 4, IndicatorLines(gesture.Frame{IndicatorPresent: true, IndicatorHeight: 80}, 20))
	assert.Equal(t, 5, IndicatorLines(gesture.Frame{IndicatorPresent: true, IndicatorHeight: 100}, 20))
	assert.Equal(t, 0, IndicatorLines(gesture.Frame{IndicatorPresent: true, IndicatorHeight: 100}, 0))
}

func TestIndicatorLabels(t *testing.T) {
	pulling := gesture.Frame{IndicatorPresent: true, IndicatorHeight: 40, Rotation: 60, Opacity: 0.75}
	out := stripANSI(Indicator(pulling, 40, 20, 0))
	assert.Contains(t, out, "Pull to refresh")
	assert.Equal(t, 2, strings.Count(out, "\n")+1)

	armed := gesture.Frame{IndicatorPresent: true, IndicatorHeight: 100, Rotation: 120, Scale: 1.2, Opacity: 1}
	assert.Contains(t, stripANSI(Indicator(armed, 40, 20, 0)), "Release to refresh")

	refreshing := gesture.Frame{IndicatorPresent: true, IndicatorHeight: 80, Spinner: true}
	out = stripANSI(Indicator(refreshing, 40, 20, 3))
	assert.Contains(t, out, spinnerFrames[3]+" Refreshing")

	assert.Empty(t, Indicator(gesture.Frame{}, 40, 20, 0))
}

func TestToastPrefixes(t *testing.T) {
	tests := []struct {
		msgType errors.MessageType
		prefix  string
	}{
		{errors.MessageTypeError, "✗"},
		{errors.MessageTypeWarning, "⚠"},
		{errors.MessageTypeSuccess, "✓"},
		{errors.MessageTypeInfo, "ℹ"},
	}

	for _, tt := range tests {
		t.Run(tt.msgType.String(), func(t *testing.T) {
			out := stripANSI(Toast(errors.Message{Text: "2 succeeded, 0 failed", Type: tt.msgType}, 80))
			assert.Equal(t, tt.prefix+" 2 succeeded, 0 failed", out)
		})
	}
}

func TestFooter(t *testing.T) {
	out := stripANSI(Footer(FooterState{Path: "/drama", Help: "q quit", Width: 80}))
	assert.Contains(t, out, "/drama")
	assert.Contains(t, out, "q quit")
	assert.NotContains(t, out, "drop here")

	out = stripANSI(Footer(FooterState{Path: "/", Marking: true, Width: 80}))
	assert.Contains(t, out, "m: drop here")
}

func TestDetail(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := stripANSI(Detail(reorder.Item{ID: "x1", Category: "celeb", Rank: 2, Title: "Airport fashion", UpdatedAt: now.Add(-time.Hour)}, 80, now))
	assert.Contains(t, out, "Airport fashion")
	assert.Contains(t, out, "celeb")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "1h ago")
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber("\033[0;34m"))
	assert.Equal(t, "", ansiColorNumber("x"))
	assert.Equal(t, "", ansiColorNumber("plain"))
}
