package analytics

import (
	"time"

	"github.com/abhisek/transform90/internal/progress"
)

// Report bundles every statistic the dashboards show.
type Report struct {
	Level         int         `json:"level"`
	CurrentDay    int         `json:"currentDay"`
	CurrentStreak int         `json:"currentStreak"`
	TotalDays     int         `json:"totalDays"`
	PerfectDays   int         `json:"perfectDays"`
	SuccessRate   int         `json:"successRate"`
	BestStreak    int         `json:"bestStreak"`
	Habits        []HabitStat `json:"habits"`
	BestHabit     *HabitStat  `json:"bestHabit"`
	Weeks         []WeekStat  `json:"weeks"`
	Days          BestWorst   `json:"days"`
	Prediction    *Prediction `json:"prediction"`
	Insights      []Insight   `json:"insights"`
}

// BuildReport computes the full report for s as of today.
func BuildReport(s progress.State, today time.Time) Report {
	h := s.History
	habits := HabitStats(h)
	r := Report{
		Level:         s.Level,
		CurrentDay:    s.CurrentDay,
		CurrentStreak: s.Streak,
		TotalDays:     len(h),
		PerfectDays:   PerfectDays(h),
		SuccessRate:   SuccessRate(h),
		BestStreak:    BestStreak(h),
		Habits:        RankedHabits(habits),
		Weeks:         WeeklyBreakdown(h),
		Days:          BestWorstDay(h),
	}
	if best, ok := BestHabit(habits); ok {
		r.BestHabit = &best
	}
	if p, ok := PredictLevelUp(s.CurrentDay, s.Level, s.PerfectDaysAtLevel, today); ok {
		r.Prediction = &p
	}
	r.Insights = Insights(r)
	return r
}
