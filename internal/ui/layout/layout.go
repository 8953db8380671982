// Package layout draws the board chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/transform90/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 20

	// Below these sizes screens drop secondary panels.
	CompactWidth  = 100
	CompactHeight = 30
)

const brand = "TRANSFORM 90"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderInfo is what the header bar shows on its right side. A zero Day
// hides the counters.
type HeaderInfo struct {
	Day    int
	Level  string
	Streak int
}

func IsCompactWidth(width int) bool   { return width < CompactWidth }
func IsCompactHeight(height int) bool { return height < CompactHeight }

// IsTooSmall reports whether the terminal cannot fit the board.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage centers a resize request in the window.
func RenderMinSizeMessage(width, height int) string {
	text := theme.Body.Render(fmt.Sprintf("The board needs at least %dx%d.", MinWidth, MinHeight)) +
		"\n" +
		theme.Hint.Render(fmt.Sprintf("Current window: %dx%d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

func bar(width int) lipgloss.Style {
	// The border adds two columns on each side of the content.
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader shows the brand, the screen title and the live counters.
func RenderHeader(title string, info HeaderInfo, width int) string {
	inner := max(width-4, 0)

	brandText := theme.Title.Render(brand)
	counters := ""
	if info.Day > 0 {
		counters = lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("Day %d · %s", info.Day, info.Level)) +
			"  " +
			lipgloss.NewStyle().Foreground(theme.Accent).
				Render(fmt.Sprintf("🔥 %d", info.Streak))
	}

	side := max(lipgloss.Width(brandText), lipgloss.Width(counters))
	middle := max(inner-2*side, lipgloss.Width(title))

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, brandText),
		lipgloss.PlaceHorizontal(middle, lipgloss.Center, theme.Body.Render(title)),
		lipgloss.PlaceHorizontal(side, lipgloss.Right, counters),
	)
	return bar(width).Render(row)
}

// RenderFooter lists the key hints, dropping trailing ones that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-4, 0)

	var b strings.Builder
	for i, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " + theme.Subtitle.Render(h.Description)
		sep := ""
		if i > 0 {
			sep = "   "
		}
		if lipgloss.Width(b.String())+len(sep)+lipgloss.Width(part) > inner {
			break
		}
		b.WriteString(sep + part)
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content so
// the frame fills exactly height rows.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
