package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/transform90/internal/ui/theme"
)

// NoteInput is a labelled single-line editor for one of the day's notes.
type NoteInput struct {
	Label string
	Model textinput.Model
}

// NewNoteInput creates a focused input pre-filled with value.
func NewNoteInput(label, placeholder, value string, limit int) NoteInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return NoteInput{Label: label, Model: ti}
}

// Init returns the initial command.
func (n NoteInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update handles messages.
func (n NoteInput) Update(msg tea.Msg) (NoteInput, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the label above the input.
func (n NoteInput) View() string {
	return theme.Label.Render(n.Label) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(n.Model.View())
}

// Value returns the current input value.
func (n NoteInput) Value() string {
	return n.Model.Value()
}
