package program

import (
	"fmt"
	"slices"
	"time"
)

// FirstLevel and FinalLevel bound the level ladder.
const (
	FirstLevel = 1
	FinalLevel = 4
)

// Habit is a habit introduced when a level is entered.
type Habit struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Detail string `json:"detail"`
}

// TaskSet holds the ordered active tasks for each kind of day.
type TaskSet struct {
	Weekday []TaskKey `json:"weekday"`
	Weekend []TaskKey `json:"weekend"`
}

// LevelDefinition describes one stage of the program.
type LevelDefinition struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	WakeTime string  `json:"wakeTime"`
	Tasks    TaskSet `json:"tasks"`

	// UnlockThreshold is the number of perfect days at this level needed to
	// move on. Nil on the final level, which is sustained indefinitely.
	UnlockThreshold *int `json:"unlockAt,omitempty"`

	Requirements string  `json:"requirements"`
	Description  string  `json:"description"`
	Workout      string  `json:"workout"`
	NewHabits    []Habit `json:"newHabits"`
}

// HasThreshold reports whether the level promotes automatically.
func (d LevelDefinition) HasThreshold() bool {
	return d.UnlockThreshold != nil
}

// Threshold returns the unlock threshold and whether one is defined.
func (d LevelDefinition) Threshold() (int, bool) {
	if d.UnlockThreshold == nil {
		return 0, false
	}
	return *d.UnlockThreshold, true
}

// TasksFor returns the task set for the given kind of day.
func (d LevelDefinition) TasksFor(kind DayKind) []TaskKey {
	if kind == DayWeekday {
		return slices.Clone(d.Tasks.Weekday)
	}
	return slices.Clone(d.Tasks.Weekend)
}

func (d LevelDefinition) clone() LevelDefinition {
	out := d
	out.Tasks = TaskSet{
		Weekday: slices.Clone(d.Tasks.Weekday),
		Weekend: slices.Clone(d.Tasks.Weekend),
	}
	if d.UnlockThreshold != nil {
		v := *d.UnlockThreshold
		out.UnlockThreshold = &v
	}
	out.NewHabits = slices.Clone(d.NewHabits)
	return out
}

// Level returns a copy of the definition for id.
func Level(id int) (LevelDefinition, error) {
	if id < FirstLevel || id > FinalLevel {
		return LevelDefinition{}, fmt.Errorf("unknown level %d", id)
	}
	return catalog[id-1].clone(), nil
}

// MustLevel is Level for ids already known to be valid.
func MustLevel(id int) LevelDefinition {
	d, err := Level(id)
	if err != nil {
		panic(err)
	}
	return d
}

// Levels returns copies of all level definitions in ascending order.
func Levels() []LevelDefinition {
	out := make([]LevelDefinition, len(catalog))
	for i := range catalog {
		out[i] = catalog[i].clone()
	}
	return out
}

// ActiveTasks returns the ordered task set active at level on date.
func ActiveTasks(level int, date time.Time) ([]TaskKey, error) {
	d, err := Level(level)
	if err != nil {
		return nil, err
	}
	return d.TasksFor(DayKindFor(date)), nil
}

func threshold(n int) *int { return &n }

var catalog = [...]LevelDefinition{
	{
		ID:       1,
		Name:     "FOUNDATION",
		WakeTime: "5:30 AM",
		Tasks: TaskSet{
			Weekday: []TaskKey{TaskWorkout, TaskVanTime, TaskGameDev, TaskSleep},
			Weekend: []TaskKey{TaskWorkout, TaskReading, TaskGameDev, TaskSleep},
		},
		UnlockThreshold: threshold(7),
		Requirements:    "7 perfect days",
		Description:     "Build the basics. Prove you can show up.",
		Workout:         "10 push-ups • 20 squats • 30s plank",
	},
	{
		ID:       2,
		Name:     "MOMENTUM",
		WakeTime: "5:30 AM",
		Tasks: TaskSet{
			Weekday: []TaskKey{TaskWorkout, TaskVanTime, TaskGameDev, TaskSleep, TaskReading, TaskWaterIntake},
			Weekend: []TaskKey{TaskWorkout, TaskReading, TaskGameDev, TaskSleep, TaskWaterIntake},
		},
		UnlockThreshold: threshold(10),
		Requirements:    "10 perfect days",
		Description:     "Mental + physical health habits.",
		Workout:         "15 push-ups • 30 squats • 45s plank • 20 lunges",
		NewHabits: []Habit{
			{Name: "Daily Reading", Icon: "📚", Detail: "15min from your books"},
			{Name: "2L Water", Icon: "💧", Detail: "Track daily"},
		},
	},
	{
		ID:       3,
		Name:     "DISCIPLINE",
		WakeTime: "4:45 AM",
		Tasks: TaskSet{
			Weekday: []TaskKey{TaskEarlyWake, TaskWorkout, TaskVanTime, TaskGameDev, TaskSleep, TaskReading, TaskWaterIntake, TaskMeditation},
			Weekend: []TaskKey{TaskEarlyWake, TaskWorkout, TaskReading, TaskGameDev, TaskSleep, TaskWaterIntake, TaskMeditation},
		},
		UnlockThreshold: threshold(14),
		Requirements:    "14 perfect days",
		Description:     "Early riser. Mental clarity.",
		Workout:         "20 push-ups • 40 squats • 60s plank • 30 lunges • 15 burpees",
		NewHabits: []Habit{
			{Name: "4:45 AM Wake", Icon: "⏰", Detail: "No snooze"},
			{Name: "10min Meditation", Icon: "🧘", Detail: "Mental clarity"},
		},
	},
	{
		ID:       4,
		Name:     "UNSTOPPABLE",
		WakeTime: "4:45 AM",
		Tasks: TaskSet{
			Weekday: []TaskKey{TaskEarlyWake, TaskWorkout, TaskVanTime, TaskGameDev, TaskSleep, TaskReading, TaskWaterIntake, TaskMeditation, TaskSkillLearning, TaskSocialSkills},
			Weekend: []TaskKey{TaskEarlyWake, TaskWorkout, TaskReading, TaskGameDev, TaskSleep, TaskWaterIntake, TaskMeditation, TaskSkillLearning, TaskSocialSkills},
		},
		Requirements: "Maintain for 90 days",
		Description:  "Full transformation.",
		Workout:      "3 sets: 15 push-ups • 30 squats • 60s plank",
		NewHabits: []Habit{
			{Name: "Extra Skill", Icon: "💻", Detail: "2nd learning block"},
			{Name: "Social Practice", Icon: "💬", Detail: "Conversation"},
		},
	},
}
