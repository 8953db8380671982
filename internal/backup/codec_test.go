package backup

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
)

func sampleState(t *testing.T) progress.State {
	t.Helper()
	s := progress.Default()
	now := time.Date(2026, 10, 12, 20, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		day := now.AddDate(0, 0, i)
		active, _ := program.ActiveTasks(s.Level, day)
		in := progress.DailyInputs{
			Tasks:       map[program.TaskKey]bool{},
			GameDevNote: "tilemap 🎮",
			Reflection:  progress.Reflection{Win: "done"},
		}
		for _, k := range active {
			in.Tasks[k] = true
		}
		c, err := progress.CompleteDay(s, in, day, progress.Options{NewID: func() string { return "id" }})
		if err != nil {
			t.Fatalf("CompleteDay: %v", err)
		}
		s = c.State
	}
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := sampleState(t)
	code, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_ToleratesWhitespaceAndPadding(t *testing.T) {
	code, err := Encode(sampleState(t))
	if err != nil {
		t.Fatal(err)
	}
	wrapped := "  " + code[:20] + "\n" + strings.TrimRight(code[20:], "=") + "\n"
	if _, err := Decode(wrapped); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestDecode_LegacyCode(t *testing.T) {
	// Written by the original tracker: no ids, no calendar dates, no
	// book map for unread titles.
	legacy := `{"currentDay":2,"level":1,"streak":1,"weeklyData":[{"day":1,"level":1,` +
		`"date":"10/12/2026","completed":true,"tasks":{"workout":true,"vanTime":true,` +
		`"gameDev":true,"sleep":true},"gameDevTask":"x","vanActivity":"",` +
		`"reflection":{"win":"y","improve":""}}],"consecutiveMisses":0,` +
		`"perfectDaysAtLevel":1,"currentBook":"Atomic Habits","bookProgress":{"Atomic Habits":3}}`
	code := base64.StdEncoding.EncodeToString([]byte(legacy))

	s, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.CurrentDay != 2 || s.Streak != 1 || s.BookProgress["Atomic Habits"] != 3 {
		t.Errorf("state = %+v", s)
	}
	if s.History[0].CalendarDate != "2026-10-12" {
		t.Errorf("calendar date not backfilled: %q", s.History[0].CalendarDate)
	}
}

func TestDecode_Rejects(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	tests := []struct {
		name string
		code string
	}{
		{"empty", "   "},
		{"not base64", "!!!not-base64!!!"},
		{"not json", enc("hello")},
		{"json array", enc(`[1,2,3]`)},
		{"no history", enc(`{"currentDay":1}`)},
		{"negative streak", enc(`{"weeklyData":[],"streak":-1}`)},
		{"bad level", enc(`{"weeklyData":[],"level":9}`)},
		{"unknown task", enc(`{"weeklyData":[{"day":1,"level":1,"completed":true,"tasks":{"pushups":true}}]}`)},
		{"day gap", enc(`{"currentDay":5,"weeklyData":[{"day":1,"level":1,"completed":true,"tasks":{}}]}`)},
		{"streak and misses", enc(`{"weeklyData":[],"streak":2,"consecutiveMisses":1}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			if !errors.Is(err, ErrInvalidCode) {
				t.Errorf("err = %v, want ErrInvalidCode", err)
			}
		})
	}
}

func TestUnmarshal_DefaultsApplied(t *testing.T) {
	s, err := Unmarshal([]byte(`{"weeklyData":[]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(progress.Default(), s); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}
