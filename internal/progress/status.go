package progress

import (
	"fmt"

	"github.com/abhisek/transform90/internal/program"
)

// Warning is the banner shown above today's checklist.
type Warning string

const (
	WarningNormal  Warning = "normal"
	WarningFire    Warning = "fire"
	WarningWarning Warning = "warning"
	WarningDanger  Warning = "danger"
)

// Status derives the banner level from the live counters.
func Status(s State) Warning {
	switch {
	case s.ConsecutiveMisses >= 2:
		return WarningDanger
	case s.ConsecutiveMisses == 1:
		return WarningWarning
	case s.Streak >= 7:
		return WarningFire
	default:
		return WarningNormal
	}
}

// Banner returns the headline and sub-line for the state's warning level.
// Both are empty for WarningNormal.
func Banner(s State) (headline, detail string) {
	switch Status(s) {
	case WarningDanger:
		return fmt.Sprintf("EMERGENCY: %d Days Missed", s.ConsecutiveMisses), "You said you wouldn't quit. Prove it TODAY."
	case WarningWarning:
		return "Warning: 1 Day Missed", "Get back on track now."
	case WarningFire:
		return fmt.Sprintf("%d Day Streak!", s.Streak), "Unstoppable momentum. Keep going!"
	default:
		return "", ""
	}
}

// WeekStats summarizes the most recent seven records.
type WeekStats struct {
	Days        int `json:"days"`
	Completed   int `json:"completed"`
	Workouts    int `json:"workouts"`
	GameDevDays int `json:"gameDevDays"`
}

// RecentWeek returns stats over the last seven records of s.
func RecentWeek(s State) WeekStats {
	recent := s.History
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}
	var ws WeekStats
	ws.Days = len(recent)
	for _, r := range recent {
		if r.Completed {
			ws.Completed++
		}
		if r.Tasks[program.TaskWorkout] {
			ws.Workouts++
		}
		if r.Tasks[program.TaskGameDev] {
			ws.GameDevDays++
		}
	}
	return ws
}
