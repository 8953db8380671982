package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
)

func kinds(in []Insight) []InsightKind {
	out := make([]InsightKind, len(in))
	for i, x := range in {
		out[i] = x.Kind
	}
	return out
}

func TestBuildReport(t *testing.T) {
	s := progress.Default()
	for i := 0; i < 8; i++ {
		s.History = append(s.History, rec(i+1, true, sunday.AddDate(0, 0, i),
			map[program.TaskKey]bool{program.TaskWorkout: true, program.TaskSleep: i != 3}))
	}
	s.History[3].Completed = false
	s.CurrentDay = 9
	s.Streak = 4
	s.PerfectDaysAtLevel = 4

	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)
	r := BuildReport(s, today)

	assert.Equal(t, 8, r.TotalDays)
	assert.Equal(t, 7, r.PerfectDays)
	assert.Equal(t, 88, r.SuccessRate)
	assert.Equal(t, 4, r.BestStreak)
	require.NotNil(t, r.BestHabit)
	assert.Equal(t, program.TaskWorkout, r.BestHabit.Key)
	require.NotNil(t, r.Prediction)
	assert.Equal(t, 3, r.Prediction.DaysNeeded)
	assert.Len(t, r.Weeks, 2)

	// Wednesday (day 4) is the only miss.
	assert.Equal(t, time.Wednesday, r.Days.Worst.Weekday)
	assert.Equal(t,
		[]InsightKind{InsightOutstanding, InsightPattern, InsightPerfectHabits},
		kinds(r.Insights))
}

func TestInsights(t *testing.T) {
	tests := []struct {
		name string
		r    Report
		want []InsightKind
	}{
		{"empty log", Report{}, []InsightKind{InsightRoomForGrowth}},
		{"middle of the road", Report{SuccessRate: 60}, nil},
		{"streak", Report{SuccessRate: 90, BestStreak: 7}, []InsightKind{InsightOutstanding, InsightStreakMaster}},
		{
			"gap of exactly 30 is not a pattern",
			Report{SuccessRate: 70, Days: BestWorst{Best: &DayStat{Rate: 80}, Worst: &DayStat{Rate: 50}}},
			nil,
		},
		{
			"perfect habit",
			Report{SuccessRate: 60, Habits: []HabitStat{{Rate: 100}, {Rate: 100}}},
			[]InsightKind{InsightPerfectHabits},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Insights(tt.r))
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildReport_FinalLevelHasNoPrediction(t *testing.T) {
	s := progress.Default()
	s.Level = program.FinalLevel
	r := BuildReport(s, time.Now())
	assert.Nil(t, r.Prediction)
	assert.Nil(t, r.BestHabit)
	assert.Equal(t, []InsightKind{InsightRoomForGrowth}, kinds(r.Insights))
}
