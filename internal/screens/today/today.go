// Package today is the main board: today's checklist, notes and status.
package today

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/transform90/internal/program"
	"github.com/abhisek/transform90/internal/progress"
	"github.com/abhisek/transform90/internal/router"
	"github.com/abhisek/transform90/internal/screen"
	"github.com/abhisek/transform90/internal/screens/report"
	"github.com/abhisek/transform90/internal/tracker"
	"github.com/abhisek/transform90/internal/ui/components"
	"github.com/abhisek/transform90/internal/ui/layout"
)

// noteField selects which note the editor changes.
type noteField int

const (
	noteGameDev noteField = iota
	noteVan
	noteWin
	noteImprove
)

func (f noteField) label() string {
	switch f {
	case noteGameDev:
		return "Game dev task"
	case noteVan:
		return "Van activity"
	case noteWin:
		return "Today's win"
	default:
		return "Improve tomorrow"
	}
}

// TodayScreen shows and edits the current day.
type TodayScreen struct {
	svc     *tracker.Service
	view    tracker.TodayView
	loaded  bool
	list    components.Checklist
	editing bool
	field   noteField
	input   components.NoteInput
	result  *tracker.CompleteResult
	errMsg  string
}

var _ screen.Screen = (*TodayScreen)(nil)
var _ screen.KeyHintProvider = (*TodayScreen)(nil)
var _ screen.Refresher = (*TodayScreen)(nil)

// New creates the board for svc.
func New(svc *tracker.Service) *TodayScreen {
	return &TodayScreen{svc: svc}
}

func (s *TodayScreen) Init() tea.Cmd {
	return s.load()
}

func (s *TodayScreen) Refresh() tea.Cmd {
	return s.load()
}

func (s *TodayScreen) Title() string {
	return "Today"
}

func (s *TodayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.editing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.result != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Check"},
		{Key: "g/v/w/i", Description: "Notes"},
		{Key: "c", Description: "Complete"},
		{Key: "b", Description: "Next book"},
		{Key: "r", Description: "Report"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *TodayScreen) load() tea.Cmd {
	return func() tea.Msg {
		v, err := s.svc.Today()
		return viewLoadedMsg{View: v, Err: err}
	}
}

func (s *TodayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case viewLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.apply(msg.View)
		return s, nil

	case completedMsg:
		return s.handleCompleted(msg)

	case actionFailedMsg:
		s.errMsg = msg.Err.Error()
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// apply installs v and rebuilds the checklist, keeping the cursor.
func (s *TodayScreen) apply(v tracker.TodayView) {
	s.view = v
	s.loaded = true
	items := make([]components.ChecklistItem, len(v.Tasks))
	for i, t := range v.Tasks {
		key := t.Key
		items[i] = components.ChecklistItem{
			Label:  t.Name,
			Done:   t.Done,
			Toggle: func() tea.Cmd { return s.toggle(key) },
		}
	}
	sel := s.list.Selected
	s.list = components.NewChecklist(items)
	if sel < len(items) {
		s.list.Selected = sel
	}
}

func (s *TodayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s.handleEditKey(msg)
	}
	if s.result != nil {
		s.result = nil
		if msg.String() != "r" {
			return s, nil
		}
	}

	s.errMsg = ""
	switch msg.String() {
	case "q":
		return s, tea.Quit
	case "g":
		return s, s.edit(noteGameDev)
	case "v":
		return s, s.edit(noteVan)
	case "w":
		return s, s.edit(noteWin)
	case "i":
		return s, s.edit(noteImprove)
	case "c":
		return s, s.complete()
	case "b":
		return s, s.nextBook()
	case "r":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: report.New(s.svc.Report())}
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *TodayScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		s.editing = false
		return s, s.saveNote(s.field, s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TodayScreen) edit(f noteField) tea.Cmd {
	var current string
	switch f {
	case noteGameDev:
		current = s.view.GameDevNote
	case noteVan:
		current = s.view.VanNote
	case noteWin:
		current = s.view.Reflection.Win
	case noteImprove:
		current = s.view.Reflection.Improve
	}
	s.editing = true
	s.field = f
	s.input = components.NewNoteInput(f.label(), "type and press Enter", current, 280)
	return s.input.Init()
}

func (s *TodayScreen) toggle(key program.TaskKey) tea.Cmd {
	return func() tea.Msg {
		if _, err := s.svc.ToggleTask(context.Background(), key); err != nil {
			return actionFailedMsg{Err: err}
		}
		v, err := s.svc.Today()
		return viewLoadedMsg{View: v, Err: err}
	}
}

func (s *TodayScreen) saveNote(f noteField, value string) tea.Cmd {
	var u tracker.NotesUpdate
	switch f {
	case noteGameDev:
		u.GameDev = &value
	case noteVan:
		u.Van = &value
	case noteWin:
		u.Win = &value
	case noteImprove:
		u.Improve = &value
	}
	return func() tea.Msg {
		s.svc.SetNotes(context.Background(), u)
		v, err := s.svc.Today()
		return viewLoadedMsg{View: v, Err: err}
	}
}

func (s *TodayScreen) nextBook() tea.Cmd {
	return func() tea.Msg {
		if _, err := s.svc.NextBook(context.Background()); err != nil {
			return actionFailedMsg{Err: err}
		}
		v, err := s.svc.Today()
		return viewLoadedMsg{View: v, Err: err}
	}
}

func (s *TodayScreen) complete() tea.Cmd {
	return func() tea.Msg {
		res, err := s.svc.CompleteDay(context.Background())
		return completedMsg{Result: res, Err: err}
	}
}

func (s *TodayScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	var incomplete *progress.IncompleteDayError
	switch {
	case errors.As(msg.Err, &incomplete):
		s.errMsg = fmt.Sprintf("Not yet: %d task(s) and %d note(s) missing",
			len(incomplete.MissingTasks), len(incomplete.MissingFields))
		return s, nil
	case msg.Err != nil:
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.result = msg.Result
	return s, s.load()
}
