package progress

import (
	"errors"
	"fmt"

	"github.com/abhisek/transform90/internal/program"
)

// Normalize fills absent or out-of-range fields the way a fresh program
// would have them. It never touches the order or content of history
// beyond backfilling calendar dates.
func Normalize(s State) State {
	out := s.Clone()
	if out.History == nil {
		out.History = []DailyRecord{}
	}
	if out.CurrentDay < 1 {
		out.CurrentDay = len(out.History) + 1
	}
	if out.Level < program.FirstLevel {
		out.Level = program.FirstLevel
	}
	if out.Level > program.FinalLevel {
		out.Level = program.FinalLevel
	}
	out.Streak = max(out.Streak, 0)
	out.ConsecutiveMisses = max(out.ConsecutiveMisses, 0)
	out.PerfectDaysAtLevel = max(out.PerfectDaysAtLevel, 0)
	if out.CurrentBook == "" {
		out.CurrentBook = program.DefaultBook
	}
	for _, b := range program.Books() {
		if _, ok := out.BookProgress[b]; !ok {
			out.BookProgress[b] = 0
		}
	}
	for b, p := range out.BookProgress {
		out.BookProgress[b] = min(max(p, 0), 100)
	}
	for i := range out.History {
		r := &out.History[i]
		if r.CalendarDate == "" {
			if t, ok := r.Date(); ok {
				r.CalendarDate = t.Format(CalendarDateLayout)
			}
		}
		if r.Tasks == nil {
			r.Tasks = map[program.TaskKey]bool{}
		}
	}
	return out
}

// CheckInvariants reports every structural violation in s.
func CheckInvariants(s State) error {
	var errs []error
	if s.CurrentDay != len(s.History)+1 {
		errs = append(errs, fmt.Errorf("currentDay %d does not follow %d history records", s.CurrentDay, len(s.History)))
	}
	if s.Level < program.FirstLevel || s.Level > program.FinalLevel {
		errs = append(errs, fmt.Errorf("level %d out of range", s.Level))
	}
	if s.Streak < 0 || s.ConsecutiveMisses < 0 || s.PerfectDaysAtLevel < 0 {
		errs = append(errs, errors.New("negative counter"))
	}
	if s.Streak > 0 && s.ConsecutiveMisses > 0 {
		errs = append(errs, fmt.Errorf("streak %d and misses %d both set", s.Streak, s.ConsecutiveMisses))
	}
	if s.CurrentBook == "" {
		errs = append(errs, errors.New("no current book"))
	}
	for b, p := range s.BookProgress {
		if p < 0 || p > 100 {
			errs = append(errs, fmt.Errorf("book %q progress %d out of range", b, p))
		}
	}
	for i, r := range s.History {
		if r.Day != i+1 {
			errs = append(errs, fmt.Errorf("record %d has day %d", i+1, r.Day))
		}
		if r.Level < program.FirstLevel || r.Level > program.FinalLevel {
			errs = append(errs, fmt.Errorf("record %d has level %d", i+1, r.Level))
		}
		for k := range r.Tasks {
			if !k.IsValid() {
				errs = append(errs, fmt.Errorf("record %d has unknown task %q", i+1, k))
			}
		}
	}
	return errors.Join(errs...)
}
