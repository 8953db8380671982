package today

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/ui/components"
	"github.com/abhisek/transform90/internal/ui/layout"
	"github.com/abhisek/transform90/internal/ui/theme"
)

func (s *TodayScreen) View(width, height int) string {
	if !s.loaded {
		if s.errMsg != "" {
			return lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
		}
		return theme.Hint.Render("Loading...")
	}
	if s.result != nil {
		return s.renderResult(width)
	}

	v := s.view
	var b strings.Builder

	if banner := renderBanner(v.Warning, v.BannerHeadline, v.BannerDetail); banner != "" {
		b.WriteString(banner + "\n\n")
	}

	b.WriteString(theme.Title.Render(fmt.Sprintf("LEVEL %d · %s", v.Level.ID, v.Level.Name)))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("   Day %d · %s · %s · wake %s",
		v.Day, v.Date, v.DayKind, v.Level.WakeTime)))
	b.WriteString("\n")
	if !layout.IsCompactHeight(height) {
		b.WriteString(theme.Hint.Render(v.Message) + "\n")
	}
	b.WriteString("\n")

	left := s.list.View()
	right := s.renderNotes()
	colWidth := max(width/2-2, 20)
	if layout.IsCompactWidth(width) {
		b.WriteString(left + "\n" + right + "\n")
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(colWidth).Render(left),
			lipgloss.NewStyle().Width(colWidth).Render(right)))
		b.WriteString("\n")
	}

	if s.editing {
		b.WriteString("\n" + theme.Card.Render(s.input.View()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("📖 "+v.CurrentBook, v.BookProgress, min(width, 70)).View() + "\n")
	b.WriteString(components.NewProgressBar("🗓  Program  ", v.ProgramProgress, min(width, 70)).View() + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"Last 7 days: %d/%d completed · %d workouts · %d game-dev days · perfect days at level: %d",
		v.Week.Completed, v.Week.Days, v.Week.Workouts, v.Week.GameDevDays, v.PerfectDaysAtLevel)) + "\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	case v.Ready:
		b.WriteString(theme.Done.Render("All set. Press c to complete the day."))
	default:
		b.WriteString(theme.Pending.Render("Still missing: " + strings.Join(v.Missing, ", ")))
	}
	return b.String()
}

func (s *TodayScreen) renderNotes() string {
	v := s.view
	line := func(key, label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = theme.Pending.Render("-")
		} else {
			value = theme.Body.Render(value)
		}
		return theme.Label.Render(key) + " " + theme.Subtitle.Render(label+": ") + value + "\n"
	}
	return line("g", "Game dev", v.GameDevNote) +
		line("v", "Van", v.VanNote) +
		line("w", "Win", v.Reflection.Win) +
		line("i", "Improve", v.Reflection.Improve)
}

func renderBanner(w progress.Warning, headline, detail string) string {
	var style lipgloss.Style
	switch w {
	case progress.WarningFire:
		style = theme.BannerFire
	case progress.WarningWarning:
		style = theme.BannerWarning
	case progress.WarningDanger:
		style = theme.BannerDanger
	default:
		return ""
	}
	return style.Render(headline) + " " + theme.Subtitle.Render(detail)
}

// renderResult is the screen shown right after a day was recorded.
func (s *TodayScreen) renderResult(width int) string {
	r := s.result
	var b strings.Builder
	center := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str) + "\n")
	}

	if r.Record.Completed {
		center(theme.BannerCelebrate.Render(fmt.Sprintf("Day %d complete!", r.Record.Day)))
	} else {
		center(theme.BannerWarning.Render(fmt.Sprintf("Day %d recorded as missed", r.Record.Day)))
	}
	b.WriteString("\n")

	if lu := r.LevelUp; lu != nil {
		center(theme.Title.Render(fmt.Sprintf("LEVEL UP! Level %d: %s", lu.To, lu.Name)))
		center(theme.Subtitle.Render("Wake time: " + lu.WakeTime))
		center(theme.Subtitle.Render("Workout: " + lu.Workout))
		for _, h := range lu.NewHabits {
			center(theme.Body.Render(fmt.Sprintf("%s %s · %s", h.Icon, h.Name, h.Detail)))
		}
		b.WriteString("\n")
	}
	if bc := r.BookComplete; bc != nil {
		center(theme.Done.Render(fmt.Sprintf("Finished %q. Press b to start the next book.", bc.Book)))
		b.WriteString("\n")
	}
	if r.WeeklyReview {
		center(theme.Label.Render("Week done. Time for the weekly review: press r."))
	}
	return b.String()
}
