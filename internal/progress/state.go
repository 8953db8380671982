package progress

import (
	"maps"
	"time"

	"github.com/abhisek/transform90/internal/program"
)

// Date layouts stored on each record.
const (
	DateLabelLayout    = "1/2/2006"
	CalendarDateLayout = "2006-01-02"
)

// Reflection is the end-of-day journal entry.
type Reflection struct {
	Win     string `json:"win"`
	Improve string `json:"improve"`
}

// DailyRecord is one completed (or missed) day. Records are append-only.
type DailyRecord struct {
	ID           string                   `json:"id,omitempty"`
	Day          int                      `json:"day"`
	Level        int                      `json:"level"`
	DateLabel    string                   `json:"date"`
	CalendarDate string                   `json:"calendarDate,omitempty"`
	Completed    bool                     `json:"completed"`
	Tasks        map[program.TaskKey]bool `json:"tasks"`
	GameDevNote  string                   `json:"gameDevTask"`
	VanNote      string                   `json:"vanActivity"`
	Reflection   Reflection               `json:"reflection"`
}

// Date returns the calendar date of the record. The normalized calendar
// date is preferred; older records only carry the M/D/YYYY label.
func (r DailyRecord) Date() (time.Time, bool) {
	if r.CalendarDate != "" {
		if t, err := time.ParseInLocation(CalendarDateLayout, r.CalendarDate, time.Local); err == nil {
			return t, true
		}
	}
	if r.DateLabel != "" {
		if t, err := time.ParseInLocation(DateLabelLayout, r.DateLabel, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Has reports whether the task was part of the record's active set.
func (r DailyRecord) Has(key program.TaskKey) bool {
	_, ok := r.Tasks[key]
	return ok
}

func (r DailyRecord) clone() DailyRecord {
	out := r
	out.Tasks = maps.Clone(r.Tasks)
	return out
}

// State is the single progress aggregate persisted after every mutation.
type State struct {
	CurrentDay         int            `json:"currentDay"`
	Level              int            `json:"level"`
	Streak             int            `json:"streak"`
	History            []DailyRecord  `json:"weeklyData"`
	ConsecutiveMisses  int            `json:"consecutiveMisses"`
	PerfectDaysAtLevel int            `json:"perfectDaysAtLevel"`
	CurrentBook        string         `json:"currentBook"`
	BookProgress       map[string]int `json:"bookProgress"`
}

// Default returns the state of a fresh program.
func Default() State {
	s := State{
		CurrentDay:   1,
		Level:        program.FirstLevel,
		History:      []DailyRecord{},
		CurrentBook:  program.DefaultBook,
		BookProgress: make(map[string]int),
	}
	for _, b := range program.Books() {
		s.BookProgress[b] = 0
	}
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.History = make([]DailyRecord, len(s.History))
	for i, r := range s.History {
		out.History[i] = r.clone()
	}
	out.BookProgress = maps.Clone(s.BookProgress)
	if out.BookProgress == nil {
		out.BookProgress = make(map[string]int)
	}
	return out
}

// LevelDefinition returns the catalog entry for the current level.
func (s State) LevelDefinition() (program.LevelDefinition, error) {
	return program.Level(s.Level)
}

// CurrentBookProgress returns the percent read of the current book.
func (s State) CurrentBookProgress() int {
	return s.BookProgress[s.CurrentBook]
}

// LastRecord returns the most recent record, if any.
func (s State) LastRecord() (DailyRecord, bool) {
	if len(s.History) == 0 {
		return DailyRecord{}, false
	}
	return s.History[len(s.History)-1], true
}

// ProgramProgress returns how far through the 90 days the state is, in
// percent, capped at 100.
func (s State) ProgramProgress() int {
	return min(100, len(s.History)*100/ProgramDays)
}

// ProgramDays is the nominal length of the program.
const ProgramDays = 90
