// Package analytics computes retrospective statistics over the day log.
// Every function is pure and reads only committed records.
package analytics

import (
	"slices"
	"time"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
)

// percent returns round(100*part/whole) with halves rounded up. whole must
// be positive.
func percent(part, whole int) int {
	return (200*part + whole) / (2 * whole)
}

// SuccessRate is the share of completed records, 0 for an empty log.
func SuccessRate(history []progress.DailyRecord) int {
	if len(history) == 0 {
		return 0
	}
	return percent(PerfectDays(history), len(history))
}

// PerfectDays counts completed records.
func PerfectDays(history []progress.DailyRecord) int {
	n := 0
	for _, r := range history {
		if r.Completed {
			n++
		}
	}
	return n
}

// BestStreak is the longest run of consecutive completed records.
func BestStreak(history []progress.DailyRecord) int {
	best, cur := 0, 0
	for _, r := range history {
		if !r.Completed {
			cur = 0
			continue
		}
		cur++
		best = max(best, cur)
	}
	return best
}

// HabitStat is the completion rate of one task over the days it applied.
type HabitStat struct {
	Key       program.TaskKey `json:"key"`
	Name      string          `json:"name"`
	Rate      int             `json:"rate"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
}

// HabitStats returns per-task rates. A task is counted only on records
// whose task map contains it; tasks that never applied are omitted.
func HabitStats(history []progress.DailyRecord) map[program.TaskKey]HabitStat {
	out := make(map[program.TaskKey]HabitStat)
	for _, key := range program.AllTaskKeys() {
		st := HabitStat{Key: key, Name: key.DisplayName()}
		for _, r := range history {
			done, ok := r.Tasks[key]
			if !ok {
				continue
			}
			st.Total++
			if done {
				st.Completed++
			}
		}
		if st.Total == 0 {
			continue
		}
		st.Rate = percent(st.Completed, st.Total)
		out[key] = st
	}
	return out
}

// RankedHabits returns the habit stats ordered by rate, highest first.
// Equal rates keep catalog order.
func RankedHabits(stats map[program.TaskKey]HabitStat) []HabitStat {
	out := make([]HabitStat, 0, len(stats))
	for _, key := range program.AllTaskKeys() {
		if st, ok := stats[key]; ok {
			out = append(out, st)
		}
	}
	slices.SortStableFunc(out, func(a, b HabitStat) int { return b.Rate - a.Rate })
	return out
}

// BestHabit returns the highest-rated habit.
func BestHabit(stats map[program.TaskKey]HabitStat) (HabitStat, bool) {
	ranked := RankedHabits(stats)
	if len(ranked) == 0 {
		return HabitStat{}, false
	}
	return ranked[0], true
}

// WeekStat is one positional block of seven records.
type WeekStat struct {
	Week      int `json:"week"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Rate      int `json:"rate"`
}

// WeeklyBreakdown splits the log into blocks of seven by position. The last
// block may be shorter.
func WeeklyBreakdown(history []progress.DailyRecord) []WeekStat {
	weeks := []WeekStat{}
	for chunk := range slices.Chunk(history, 7) {
		done := PerfectDays(chunk)
		weeks = append(weeks, WeekStat{
			Week:      len(weeks) + 1,
			Completed: done,
			Total:     len(chunk),
			Rate:      percent(done, len(chunk)),
		})
	}
	return weeks
}

// DayStat is the completion rate of one day of the week.
type DayStat struct {
	Weekday   time.Weekday `json:"weekday"`
	Name      string       `json:"name"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Rate      int          `json:"rate"`
}

// BestWorst holds the strongest and weakest days of the week.
type BestWorst struct {
	Best  *DayStat `json:"best"`
	Worst *DayStat `json:"worst"`
}

// BestWorstDay groups records by day of week and ranks the groups by rate.
// Among equal rates the earlier weekday (Sunday first) ranks higher.
// Records without a readable date are skipped.
func BestWorstDay(history []progress.DailyRecord) BestWorst {
	var days [7]DayStat
	for wd := range days {
		days[wd] = DayStat{Weekday: time.Weekday(wd), Name: time.Weekday(wd).String()[:3]}
	}
	for _, r := range history {
		d, ok := r.Date()
		if !ok {
			continue
		}
		st := &days[d.Weekday()]
		st.Total++
		if r.Completed {
			st.Completed++
		}
	}

	var ranked []DayStat
	for _, st := range days {
		if st.Total == 0 {
			continue
		}
		st.Rate = percent(st.Completed, st.Total)
		ranked = append(ranked, st)
	}
	if len(ranked) == 0 {
		return BestWorst{}
	}
	slices.SortStableFunc(ranked, func(a, b DayStat) int { return b.Rate - a.Rate })
	best, worst := ranked[0], ranked[len(ranked)-1]
	return BestWorst{Best: &best, Worst: &worst}
}

// Prediction estimates when the current level will be cleared.
type Prediction struct {
	NextLevel     int       `json:"nextLevel"`
	DaysNeeded    int       `json:"daysNeeded"`
	PredictedDay  int       `json:"predictedDay"`
	PredictedDate time.Time `json:"predictedDate"`
}

// DateLabel formats the predicted date the way records are labelled.
func (p Prediction) DateLabel() string {
	return p.PredictedDate.Format(progress.DateLabelLayout)
}

// PredictLevelUp assumes every remaining day is perfect. It reports false
// for the final level or an unknown one. DaysNeeded is not clamped and may
// be zero or negative.
func PredictLevelUp(currentDay, level, perfectDaysAtLevel int, today time.Time) (Prediction, bool) {
	def, err := program.Level(level)
	if err != nil {
		return Prediction{}, false
	}
	threshold, ok := def.Threshold()
	if !ok {
		return Prediction{}, false
	}
	need := threshold - perfectDaysAtLevel
	return Prediction{
		NextLevel:     level + 1,
		DaysNeeded:    need,
		PredictedDay:  currentDay + need,
		PredictedDate: today.AddDate(0, 0, need),
	}, true
}
