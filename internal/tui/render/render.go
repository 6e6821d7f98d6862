package render

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/errors"
	"github.com/hallyupress/newsdesk/internal/gesture"
	"github.com/hallyupress/newsdesk/internal/reorder"
)

const (
	handleWidth          = 2
	rankWidth            = 4
	categoryWidth        = 8
	ageWidth             = 5
	spacesBetweenColumns = 8
	defaultTitleWidth    = 50
	minTitleWidth        = 10

	// HandleWidth is the number of leading columns of a row that act as
	// the drag handle.
	HandleWidth = handleWidth

	handleSymbol = "⠿"

	// Logo is the clickable title at the start of the header.
	Logo = "NEWSDESK"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Tab is one section in the header.
type Tab struct {
	Label  string
	Active bool
}

// FooterState defines the inputs needed to render the footer.
type FooterState struct {
	Path    string
	Help    string
	Marking bool
	Width   int
}

// RowState defines the inputs needed to render a board row.
type RowState struct {
	Item       reorder.Item
	Width      int
	Selected   bool
	Marked     bool
	DropTarget bool
	Now        time.Time
}

// Header renders the logo and the section tabs.
func Header(tabs []Tab, width int) string {
	logoStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	tabStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeStyle := tabStyle.
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ansiColorNumber(colors.Blue)))

	parts := []string{logoStyle.Render(Logo)}
	for _, tab := range tabs {
		if tab.Active {
			parts = append(parts, activeStyle.Render(tab.Label))
			continue
		}
		parts = append(parts, tabStyle.Render(tab.Label))
	}
	return fitWidth(strings.Join(parts, " "), width)
}

// ColumnHeader renders the board column titles.
func ColumnHeader(width int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	header := fmt.Sprintf("%-*s%-*s  %-*s  %-*s  %-*s",
		handleWidth, "",
		rankWidth, "RANK",
		categoryWidth, "CATEGORY",
		titleWidth(width), "TITLE",
		ageWidth, "AGE",
	)
	return headerStyle.Render(header)
}

// Row renders a single board row.
func Row(state RowState) string {
	rowStyle := lipgloss.NewStyle()
	switch {
	case state.Marked:
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Yellow))).Foreground(lipgloss.Color("0"))
	case state.DropTarget:
		rowStyle = rowStyle.Underline(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))
	case state.Selected:
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	width := titleWidth(state.Width)
	title := state.Item.Title
	if title == "" {
		title = state.Item.ID
	}

	row := fmt.Sprintf("%-*s%-*s  %-*s  %-*s  %-*s",
		handleWidth, handleSymbol,
		rankWidth, rankLabel(state.Item),
		categoryWidth, truncate(state.Item.Category, categoryWidth),
		width, truncate(title, width),
		ageWidth, calculateAge(state.Item.UpdatedAt, state.Now),
	)
	return rowStyle.Render(row)
}

// Detail renders the detail page of one item.
func Detail(item reorder.Item, width int, now time.Time) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10)

	title := item.Title
	if title == "" {
		title = item.ID
	}
	lines := []string{
		titleStyle.Render(truncate(title, width)),
		"",
		labelStyle.Render("id") + item.ID,
		labelStyle.Render("category") + item.Category,
		labelStyle.Render("rank") + rankLabel(item),
		labelStyle.Render("updated") + item.UpdatedAt.Format(time.RFC3339) + " (" + calculateAge(item.UpdatedAt, now) + " ago)",
	}
	return strings.Join(lines, "\n")
}

// Empty renders the placeholder for a section without items.
func Empty(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(text)
}

// IndicatorLines returns how many terminal lines a pull indicator of the
// given height occupies when one line stands for linePixels.
func IndicatorLines(frame gesture.Frame, linePixels int) int {
	if !frame.IndicatorPresent || linePixels <= 0 {
		return 0
	}
	return int(math.Round(frame.IndicatorHeight / float64(linePixels)))
}

// Indicator renders the pull-to-refresh indicator for frame. tick selects
// the spinner frame while refreshing.
func Indicator(frame gesture.Frame, width, linePixels, tick int) string {
	lines := IndicatorLines(frame, linePixels)
	if lines == 0 {
		return ""
	}

	color := "241"
	if frame.Spinner || frame.Opacity >= 0.75 {
		color = ansiColorNumber(colors.Cyan)
	}
	style := lipgloss.NewStyle().
		Width(max(width, 1)).
		Height(lines).
		Align(lipgloss.Center, lipgloss.Bottom).
		Foreground(lipgloss.Color(color))
	if frame.Scale >= 1 || frame.Spinner {
		style = style.Bold(true)
	}

	var label string
	switch {
	case frame.Spinner:
		label = spinnerFrames[tick%len(spinnerFrames)] + " Refreshing"
	case frame.Rotation >= 120:
		label = arrowGlyph(frame.Rotation) + " Release to refresh"
	default:
		label = arrowGlyph(frame.Rotation) + " Pull to refresh"
	}
	return style.Render(label)
}

// Toast renders a toast for msg.
func Toast(msg errors.Message, width int) string {
	var color, prefix string
	switch msg.Type {
	case errors.MessageTypeError:
		color, prefix = colors.Red, "✗"
	case errors.MessageTypeWarning:
		color, prefix = colors.Yellow, "⚠"
	case errors.MessageTypeSuccess:
		color, prefix = colors.Green, "✓"
	default:
		color, prefix = colors.Blue, "ℹ"
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(color)))
	return style.Render(truncate(prefix+" "+msg.Text, width))
}

// Footer renders the footer with the current path and help text.
func Footer(state FooterState) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))

	parts := []string{pathStyle.Render(state.Path)}
	if state.Marking {
		parts = append(parts, "m: drop here  esc: cancel")
	}
	if state.Help != "" {
		parts = append(parts, state.Help)
	}
	return fitWidth(helpStyle.Render(strings.Join(parts, "  |  ")), state.Width)
}

func titleWidth(width int) int {
	totalFixedWidth := handleWidth + rankWidth + categoryWidth + ageWidth
	w := width - totalFixedWidth - spacesBetweenColumns
	if width == 0 || w < minTitleWidth {
		return defaultTitleWidth
	}
	return w
}

func rankLabel(item reorder.Item) string {
	return fmt.Sprintf("#%d", item.Rank)
}

// arrowGlyph turns the 0..120 degree rotation into an arrow pointing
// further round as the pull progresses.
func arrowGlyph(rotation float64) string {
	switch {
	case rotation < 40:
		return "↓"
	case rotation < 80:
		return "↙"
	case rotation < 120:
		return "←"
	default:
		return "↻"
	}
}

// fitWidth cuts an already styled line to width cells.
func fitWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	if width <= 3 {
		return string([]rune(value)[:width])
	}
	return string([]rune(value)[:width-3]) + "..."
}

func calculateAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}

	duration := now.Sub(t)
	if duration < 0 {
		duration = 0
	}

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh", int(duration.Hours()))
	}
	return fmt.Sprintf("%dd", int(duration.Hours()/24))
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
