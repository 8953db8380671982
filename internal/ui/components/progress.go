package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/transform90/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a whole-number percentage.
type ProgressBar struct {
	Label   string
	Percent int
	Width   int
}

// NewProgressBar creates a progress bar; percent is clamped to 0..100.
func NewProgressBar(label string, percent int, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: max(0, min(percent, 100)),
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result) - 6 // "  100%"
	if barWidth < 4 {
		barWidth = 4
	}
	filled := barWidth * p.Percent / 100
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", p.Percent))
	return result
}
