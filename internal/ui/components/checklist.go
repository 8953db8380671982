package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/transform90/internal/ui/theme"
)

// ChecklistItem is one checkable line.
type ChecklistItem struct {
	Label  string
	Done   bool
	Toggle func() tea.Cmd
}

// Checklist is a vertical list of checkable items with a cursor.
type Checklist struct {
	Items    []ChecklistItem
	Selected int
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

// Update moves the cursor and toggles the selected item on space or enter.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Items) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "space", " ", "enter", "x":
		item := &c.Items[c.Selected]
		if item.Toggle != nil {
			return c, item.Toggle()
		}
		item.Done = !item.Done
	}
	return c, nil
}

// View renders the checklist.
func (c Checklist) View() string {
	var b strings.Builder
	for i, item := range c.Items {
		cursor := "  "
		if i == c.Selected {
			cursor = theme.Selected.Render("▸ ")
		}
		box := theme.Pending.Render("[ ]")
		label := theme.Unselected.Render(item.Label)
		if item.Done {
			box = theme.Done.Render("[✓]")
			label = theme.Done.Render(item.Label)
		}
		b.WriteString(cursor + box + " " + label + "\n")
	}
	return b.String()
}
