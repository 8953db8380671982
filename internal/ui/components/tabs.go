package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/transform90/internal/ui/theme"
)

// Tabs is a horizontal tab bar.
type Tabs struct {
	Labels []string
	Active int
}

// NewTabs creates a tab bar with the first tab active.
func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels}
}

// Update switches tabs on left/right, tab/shift+tab and the number keys.
func (t Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(t.Labels) == 0 {
		return t, nil
	}

	n := len(t.Labels)
	switch key := kmsg.String(); key {
	case "right", "l", "tab":
		t.Active = (t.Active + 1) % n
	case "left", "h", "shift+tab":
		t.Active = (t.Active + n - 1) % n
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < n {
			t.Active = int(key[0] - '1')
		}
	}
	return t, nil
}

// View renders the tab bar.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, " ")
}
