package analytics

import "fmt"

// InsightKind names a dashboard insight rule.
type InsightKind string

const (
	InsightOutstanding   InsightKind = "outstanding"
	InsightRoomForGrowth InsightKind = "room-for-growth"
	InsightPattern       InsightKind = "pattern"
	InsightStreakMaster  InsightKind = "streak-master"
	InsightPerfectHabits InsightKind = "perfect-habits"
)

// Insight is a short observation about the report.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Icon    string      `json:"icon"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// Insights applies the fixed rule set to r, in display order.
func Insights(r Report) []Insight {
	var out []Insight
	if r.SuccessRate >= 80 {
		out = append(out, Insight{
			Kind:    InsightOutstanding,
			Icon:    "🎉",
			Title:   "Outstanding!",
			Message: fmt.Sprintf("You're crushing it with %d%% success rate. Keep this momentum!", r.SuccessRate),
		})
	}
	if r.SuccessRate < 50 {
		out = append(out, Insight{
			Kind:    InsightRoomForGrowth,
			Icon:    "💪",
			Title:   "Room for Growth",
			Message: fmt.Sprintf("Your %d%% success rate shows potential. Focus on consistency!", r.SuccessRate),
		})
	}
	if b, w := r.Days.Best, r.Days.Worst; b != nil && w != nil && b.Rate-w.Rate > 30 {
		out = append(out, Insight{
			Kind:  InsightPattern,
			Icon:  "📊",
			Title: "Pattern Detected",
			Message: fmt.Sprintf("You excel on %ss (%d%%) but struggle on %ss (%d%%). Plan ahead for %ss!",
				b.Name, b.Rate, w.Name, w.Rate, w.Name),
		})
	}
	if r.BestStreak >= 7 {
		out = append(out, Insight{
			Kind:    InsightStreakMaster,
			Icon:    "🔥",
			Title:   "Streak Master!",
			Message: fmt.Sprintf("Your best streak is %d days. That's serious discipline!", r.BestStreak),
		})
	}
	for _, h := range r.Habits {
		if h.Rate == 100 {
			out = append(out, Insight{
				Kind:    InsightPerfectHabits,
				Icon:    "⭐",
				Title:   "Perfect Habits",
				Message: "You've maintained 100% on some habits. That's dedication!",
			})
			break
		}
	}
	return out
}
