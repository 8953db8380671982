// Package report shows the analytics report in four tabs.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/transform90/internal/analytics"
	"github.com/abhisek/transform90/internal/router"
	"github.com/abhisek/transform90/internal/screen"
	"github.com/abhisek/transform90/internal/ui/components"
	"github.com/abhisek/transform90/internal/ui/layout"
	"github.com/abhisek/transform90/internal/ui/theme"
)

const (
	tabOverview = iota
	tabHabits
	tabTrends
	tabInsights
)

// ReportScreen renders a precomputed analytics.Report.
type ReportScreen struct {
	report analytics.Report
	tabs   components.Tabs
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a report screen for r.
func New(r analytics.Report) *ReportScreen {
	return &ReportScreen{
		report: r,
		tabs:   components.NewTabs("Overview", "Habits", "Trends", "Insights"),
	}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Tabs"},
		{Key: "1-4", Description: "Jump"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.tabs, cmd = s.tabs.Update(msg)
	return s, cmd
}

func (s *ReportScreen) View(width, height int) string {
	var body string
	if s.report.TotalDays == 0 {
		body = theme.Hint.Render("No days recorded yet. Complete your first day to see statistics.")
	} else {
		switch s.tabs.Active {
		case tabOverview:
			body = s.overview()
		case tabHabits:
			body = s.habits(width)
		case tabTrends:
			body = s.trends(width)
		case tabInsights:
			body = s.insights(width)
		}
	}
	return s.tabs.View() + "\n\n" + body
}

func stat(label string, value any) string {
	return theme.Subtitle.Render(fmt.Sprintf("%-18s", label)) + theme.Body.Bold(true).Render(fmt.Sprint(value))
}

func (s *ReportScreen) overview() string {
	r := s.report
	lines := []string{
		stat("Days tracked", r.TotalDays),
		stat("Perfect days", r.PerfectDays),
		stat("Success rate", fmt.Sprintf("%d%%", r.SuccessRate)),
		stat("Current streak", r.CurrentStreak),
		stat("Best streak", r.BestStreak),
		stat("Level", r.Level),
	}
	if r.BestHabit != nil {
		lines = append(lines, stat("Strongest habit", fmt.Sprintf("%s (%d%%)", r.BestHabit.Name, r.BestHabit.Rate)))
	}
	if p := r.Prediction; p != nil {
		lines = append(lines, "", theme.Label.Render(fmt.Sprintf(
			"Level %d in %d perfect days: day %d, around %s", p.NextLevel, p.DaysNeeded, p.PredictedDay, p.DateLabel())))
	} else {
		lines = append(lines, "", theme.Label.Render("Final level reached. Hold the line."))
	}
	return strings.Join(lines, "\n")
}

func (s *ReportScreen) habits(width int) string {
	var b strings.Builder
	for _, h := range s.report.Habits {
		bar := components.NewProgressBar(fmt.Sprintf("%-22s", h.Name), h.Rate, min(width, 70))
		b.WriteString(bar.View())
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d/%d", h.Completed, h.Total)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ReportScreen) trends(width int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("By week") + "\n")
	for _, w := range s.report.Weeks {
		label := fmt.Sprintf("Week %-2d %d/%d", w.Week, w.Completed, w.Total)
		b.WriteString(components.NewProgressBar(label, w.Rate, min(width, 60)).View() + "\n")
	}

	d := s.report.Days
	if d.Best != nil && d.Worst != nil {
		b.WriteString("\n" + theme.Label.Render("By weekday") + "\n")
		b.WriteString(stat("Best day", fmt.Sprintf("%s (%d%%)", d.Best.Name, d.Best.Rate)) + "\n")
		b.WriteString(stat("Worst day", fmt.Sprintf("%s (%d%%)", d.Worst.Name, d.Worst.Rate)) + "\n")
	}
	return b.String()
}

func (s *ReportScreen) insights(width int) string {
	if len(s.report.Insights) == 0 {
		return theme.Hint.Render("Keep logging days to unlock insights.")
	}
	cards := make([]string, 0, len(s.report.Insights))
	for _, in := range s.report.Insights {
		card := theme.Card.Width(min(width-2, 72)).Render(
			theme.Title.Render(in.Icon+" "+in.Title) + "\n" + theme.Body.Render(in.Message))
		cards = append(cards, card)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
