package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/transform90/internal/router"
	"github.com/abhisek/transform90/internal/screens/report"
	"github.com/abhisek/transform90/internal/store"
	"github.com/abhisek/transform90/internal/tracker"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	st, err := store.Open("file:app_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	svc, err := tracker.Open(context.Background(), tracker.Options{
		KV:  st.KVRepo(),
		Now: func() time.Time { return time.Date(2026, 10, 14, 8, 0, 0, 0, time.Local) },
	})
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return newAppModel(svc)
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "The board needs at least") {
		t.Error("expected the minimum size message")
	}
}

func TestAppModel_RendersBoard(t *testing.T) {
	m := newTestModel(t)
	if msg := m.Init()(); msg != nil {
		m.router.Update(msg)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 110, Height: 40})
	view := updated.(AppModel).render()
	for _, want := range []string{"TRANSFORM 90", "Day 1 · FOUNDATION", "FOUNDATION"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_EscPopsOnlyAboveBottom(t *testing.T) {
	m := newTestModel(t)
	esc := tea.KeyPressMsg{Code: tea.KeyEscape}

	m.router.Push(report.New(m.svc.Report()))
	_, cmd := m.Update(esc)
	if cmd == nil {
		t.Fatal("esc above the bottom should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
