package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/tracker"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printToday(w io.Writer, v tracker.TodayView) {
	fmt.Fprintf(w, "Day %d · %s (%s) · Level %d %s · wake %s\n",
		v.Day, v.Date, v.DayKind, v.Level.ID, v.Level.Name, v.Level.WakeTime)
	if v.Warning != progress.WarningNormal {
		fmt.Fprintf(w, "%s. %s\n", v.BannerHeadline, v.BannerDetail)
	}
	fmt.Fprintf(w, "%s\n\n", v.Message)

	for _, t := range v.Tasks {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %-16s %s\n", box, t.Key, t.Name)
	}
	fmt.Fprintln(w)
	note := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %-9s %s\n", label+":", value)
	}
	note("Game dev", v.GameDevNote)
	note("Van", v.VanNote)
	note("Win", v.Reflection.Win)
	note("Improve", v.Reflection.Improve)

	fmt.Fprintf(w, "\nStreak %d · perfect days at level %d · %s %d%% · program %d%%\n",
		v.Streak, v.PerfectDaysAtLevel, v.CurrentBook, v.BookProgress, v.ProgramProgress)
	if v.Ready {
		fmt.Fprintln(w, "Ready to complete.")
	} else {
		fmt.Fprintf(w, "Missing: %s\n", strings.Join(v.Missing, ", "))
	}
}

func printResult(w io.Writer, r *tracker.CompleteResult) {
	if r.Record.Completed {
		fmt.Fprintf(w, "Day %d complete. Streak %d.\n", r.Record.Day, r.State.Streak)
	} else {
		fmt.Fprintf(w, "Day %d recorded as missed.\n", r.Record.Day)
	}
	if lu := r.LevelUp; lu != nil {
		fmt.Fprintf(w, "LEVEL UP! Level %d: %s. Wake at %s. Workout: %s\n", lu.To, lu.Name, lu.WakeTime, lu.Workout)
		for _, h := range lu.NewHabits {
			fmt.Fprintf(w, "  new habit: %s %s (%s)\n", h.Icon, h.Name, h.Detail)
		}
	}
	if bc := r.BookComplete; bc != nil {
		fmt.Fprintf(w, "Finished %q. Run `transform90 book --next` to start the next one.\n", bc.Book)
	}
	if r.WeeklyReview {
		fmt.Fprintln(w, "Week complete: run `transform90 stats` for your weekly review.")
	}
}
