package program

import (
	"fmt"
	"strings"
	"time"
)

// TaskKey identifies one of the fixed daily tasks of the program.
type TaskKey string

const (
	TaskWorkout       TaskKey = "workout"
	TaskGameDev       TaskKey = "gameDev"
	TaskReading       TaskKey = "reading"
	TaskVanTime       TaskKey = "vanTime"
	TaskSleep         TaskKey = "sleep"
	TaskWaterIntake   TaskKey = "waterIntake"
	TaskMeditation    TaskKey = "meditation"
	TaskEarlyWake     TaskKey = "earlyWake"
	TaskSkillLearning TaskKey = "skillLearning"
	TaskSocialSkills  TaskKey = "socialSkills"
)

// AllTaskKeys returns all task keys in display order.
func AllTaskKeys() []TaskKey {
	return []TaskKey{
		TaskWorkout,
		TaskGameDev,
		TaskReading,
		TaskVanTime,
		TaskSleep,
		TaskWaterIntake,
		TaskMeditation,
		TaskEarlyWake,
		TaskSkillLearning,
		TaskSocialSkills,
	}
}

// IsValid reports whether k is one of the ten program tasks.
func (k TaskKey) IsValid() bool {
	switch k {
	case TaskWorkout, TaskGameDev, TaskReading, TaskVanTime, TaskSleep,
		TaskWaterIntake, TaskMeditation, TaskEarlyWake, TaskSkillLearning, TaskSocialSkills:
		return true
	default:
		return false
	}
}

// ParseTaskKey accepts the canonical key ("gameDev") or any case-insensitive
// spelling of it ("gamedev", "GAMEDEV").
func ParseTaskKey(s string) (TaskKey, error) {
	for _, k := range AllTaskKeys() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown task %q", s)
}

// Label returns the short human-readable task name.
func (k TaskKey) Label() string {
	switch k {
	case TaskWorkout:
		return "Workout"
	case TaskGameDev:
		return "Game Dev"
	case TaskReading:
		return "Reading"
	case TaskVanTime:
		return "Van Time"
	case TaskSleep:
		return "Sleep"
	case TaskWaterIntake:
		return "Water"
	case TaskMeditation:
		return "Meditation"
	case TaskEarlyWake:
		return "Early Wake"
	case TaskSkillLearning:
		return "Skill Learning"
	case TaskSocialSkills:
		return "Social"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the task.
func (k TaskKey) Icon() string {
	switch k {
	case TaskWorkout:
		return "💪"
	case TaskGameDev:
		return "🎮"
	case TaskReading:
		return "📚"
	case TaskVanTime:
		return "🚐"
	case TaskSleep:
		return "😴"
	case TaskWaterIntake:
		return "💧"
	case TaskMeditation:
		return "🧘"
	case TaskEarlyWake:
		return "⏰"
	case TaskSkillLearning:
		return "💻"
	case TaskSocialSkills:
		return "💬"
	default:
		return "•"
	}
}

// DisplayName returns the icon-prefixed name used in reports.
func (k TaskKey) DisplayName() string {
	return k.Icon() + " " + k.Label()
}

// DayKind selects which task set of a level applies on a given date.
type DayKind string

const (
	DayWeekday DayKind = "weekday"
	DayWeekend DayKind = "weekend"
)

// DayKindFor returns DayWeekday for Monday through Thursday and DayWeekend
// for Friday through Sunday.
func DayKindFor(date time.Time) DayKind {
	switch date.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return DayWeekday
	default:
		return DayWeekend
	}
}
