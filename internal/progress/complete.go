package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/transform90/internal/program"
)

// DailyInputs is what the user collected for today before submitting.
type DailyInputs struct {
	Tasks       map[program.TaskKey]bool `json:"tasks"`
	GameDevNote string                   `json:"gameDevTask"`
	VanNote     string                   `json:"vanActivity"`
	Reflection  Reflection               `json:"reflection"`
}

// Required free-text fields.
const (
	FieldGameDevNote = "gameDevTask"
	FieldWin         = "reflection.win"
)

// IncompleteDayError is returned when today cannot be submitted yet.
type IncompleteDayError struct {
	MissingTasks  []program.TaskKey
	MissingFields []string
}

func (e *IncompleteDayError) Error() string {
	var parts []string
	if len(e.MissingTasks) > 0 {
		names := make([]string, len(e.MissingTasks))
		for i, k := range e.MissingTasks {
			names[i] = string(k)
		}
		parts = append(parts, "unchecked tasks: "+strings.Join(names, ", "))
	}
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing notes: "+strings.Join(e.MissingFields, ", "))
	}
	return "day is not complete (" + strings.Join(parts, "; ") + ")"
}

// Validate checks the submission gate: every active task checked, plus a
// game-dev note and a win.
func Validate(in DailyInputs, active []program.TaskKey) error {
	e := &IncompleteDayError{}
	for _, k := range active {
		if !in.Tasks[k] {
			e.MissingTasks = append(e.MissingTasks, k)
		}
	}
	if strings.TrimSpace(in.GameDevNote) == "" {
		e.MissingFields = append(e.MissingFields, FieldGameDevNote)
	}
	if strings.TrimSpace(in.Reflection.Win) == "" {
		e.MissingFields = append(e.MissingFields, FieldWin)
	}
	if len(e.MissingTasks) > 0 || len(e.MissingFields) > 0 {
		return e
	}
	return nil
}

// Options adjusts CompleteDay.
type Options struct {
	// AllowIncomplete lets an unfinished day be recorded as a miss instead
	// of being rejected.
	AllowIncomplete bool

	// NewID generates record IDs. Defaults to random UUIDs.
	NewID func() string
}

// Effect is something the caller must do or show after a commit.
type Effect interface {
	effect()
}

// PersistRequested asks the caller to persist the committed state.
type PersistRequested struct{}

// LevelUp is raised when the day's completion promoted the level.
type LevelUp struct {
	From      int
	To        int
	Name      string
	WakeTime  string
	Workout   string
	NewHabits []program.Habit
}

// BookComplete is raised when the current book reaches 100%.
type BookComplete struct {
	Book string
}

// WeeklyReviewDue is raised after every seventh day.
type WeeklyReviewDue struct {
	Day int
}

func (PersistRequested) effect() {}
func (LevelUp) effect()          {}
func (BookComplete) effect()     {}
func (WeeklyReviewDue) effect()  {}

// Commit is the result of applying one day.
type Commit struct {
	State   State
	Record  DailyRecord
	Effects []Effect
}

// LevelUp returns the level-up signal of the commit, if any.
func (c Commit) LevelUp() (LevelUp, bool) {
	for _, e := range c.Effects {
		if lu, ok := e.(LevelUp); ok {
			return lu, true
		}
	}
	return LevelUp{}, false
}

// BookComplete returns the book-complete signal of the commit, if any.
func (c Commit) BookComplete() (BookComplete, bool) {
	for _, e := range c.Effects {
		if bc, ok := e.(BookComplete); ok {
			return bc, true
		}
	}
	return BookComplete{}, false
}

// WeeklyReviewDue reports whether the commit closed a week.
func (c Commit) WeeklyReviewDue() bool {
	for _, e := range c.Effects {
		if _, ok := e.(WeeklyReviewDue); ok {
			return true
		}
	}
	return false
}

// CompleteDay applies today's inputs to s and returns the new state along
// with the effects for the caller to dispatch. s is not modified. On a
// gate failure the returned error is an *IncompleteDayError.
func CompleteDay(s State, in DailyInputs, now time.Time, opts Options) (Commit, error) {
	active, err := program.ActiveTasks(s.Level, now)
	if err != nil {
		return Commit{}, fmt.Errorf("active tasks: %w", err)
	}
	if !opts.AllowIncomplete {
		if err := Validate(in, active); err != nil {
			return Commit{}, err
		}
	}

	next := s.Clone()
	if next.BookProgress == nil {
		next.BookProgress = make(map[string]int)
	}
	var effects []Effect

	tasks := make(map[program.TaskKey]bool, len(active))
	allDone := true
	for _, k := range active {
		tasks[k] = in.Tasks[k]
		if !in.Tasks[k] {
			allDone = false
		}
	}

	if allDone {
		next.Streak++
		next.ConsecutiveMisses = 0
		next.PerfectDaysAtLevel++
	} else {
		next.Streak = 0
		next.ConsecutiveMisses++
	}

	if tasks[program.TaskReading] {
		before := next.BookProgress[next.CurrentBook]
		after := min(before+1, 100)
		next.BookProgress[next.CurrentBook] = after
		if before < 100 && after == 100 {
			effects = append(effects, BookComplete{Book: next.CurrentBook})
		}
	}

	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	rec := DailyRecord{
		ID:           newID(),
		Day:          s.CurrentDay,
		Level:        s.Level,
		DateLabel:    now.Format(DateLabelLayout),
		CalendarDate: now.Format(CalendarDateLayout),
		Completed:    allDone,
		Tasks:        tasks,
		GameDevNote:  in.GameDevNote,
		VanNote:      in.VanNote,
		Reflection:   in.Reflection,
	}
	next.History = append(next.History, rec)
	next.CurrentDay++

	// Promotion is evaluated against committed counters, so the day that
	// reaches the threshold counts at the old level.
	if allDone {
		if lu, ok := evaluateLevelUp(&next); ok {
			effects = append(effects, lu)
		}
	}

	if rec.Day%7 == 0 {
		effects = append(effects, WeeklyReviewDue{Day: rec.Day})
	}

	effects = append(effects, PersistRequested{})
	return Commit{State: next, Record: rec.clone(), Effects: effects}, nil
}

// evaluateLevelUp promotes s when the perfect-day count reaches the current
// level's threshold.
func evaluateLevelUp(s *State) (LevelUp, bool) {
	cur, err := program.Level(s.Level)
	if err != nil {
		return LevelUp{}, false
	}
	threshold, ok := cur.Threshold()
	if !ok || s.PerfectDaysAtLevel < threshold || s.Level >= program.FinalLevel {
		return LevelUp{}, false
	}
	to := program.MustLevel(s.Level + 1)
	lu := LevelUp{
		From:      s.Level,
		To:        to.ID,
		Name:      to.Name,
		WakeTime:  to.WakeTime,
		Workout:   to.Workout,
		NewHabits: to.NewHabits,
	}
	s.Level = to.ID
	s.PerfectDaysAtLevel = 0
	return lu, true
}
