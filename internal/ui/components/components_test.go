package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestChecklistNavigation(t *testing.T) {
	c := NewChecklist([]ChecklistItem{{Label: "Workout"}, {Label: "Sleep"}})

	c, _ = c.Update(key(tea.KeyUp))
	if c.Selected != 0 {
		t.Errorf("cursor moved above the first item: %d", c.Selected)
	}
	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeyDown))
	if c.Selected != 1 {
		t.Errorf("cursor = %d, want 1", c.Selected)
	}
}

func TestChecklistToggle(t *testing.T) {
	called := false
	c := NewChecklist([]ChecklistItem{
		{Label: "Workout"},
		{Label: "Sleep", Toggle: func() tea.Cmd {
			called = true
			return nil
		}},
	})

	c, _ = c.Update(key(tea.KeySpace))
	if !c.Items[0].Done {
		t.Error("space should toggle an item without a callback")
	}

	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeySpace))
	if !called {
		t.Error("toggle callback not invoked")
	}
	if c.Items[1].Done {
		t.Error("items with a callback are updated by their owner")
	}

	if !strings.Contains(c.View(), "[✓]") {
		t.Error("view should mark done items")
	}
}

func TestTabsCycle(t *testing.T) {
	tabs := NewTabs("Overview", "Habits", "Trends")

	tabs, _ = tabs.Update(key(tea.KeyLeft))
	if tabs.Active != 2 {
		t.Errorf("left from first tab = %d, want 2", tabs.Active)
	}
	tabs, _ = tabs.Update(key(tea.KeyRight))
	if tabs.Active != 0 {
		t.Errorf("right wraps to %d, want 0", tabs.Active)
	}
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if tabs.Active != 1 {
		t.Errorf("number key selects %d, want 1", tabs.Active)
	}
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if tabs.Active != 1 {
		t.Errorf("out-of-range number changed tab to %d", tabs.Active)
	}
}

func TestProgressBarClamps(t *testing.T) {
	if p := NewProgressBar("Book", 140, 40); p.Percent != 100 {
		t.Errorf("percent = %d, want 100", p.Percent)
	}
	if !strings.Contains(NewProgressBar("Book", 45, 40).View(), "45%") {
		t.Error("view should show the percentage")
	}
}

func TestNoteInputPrefill(t *testing.T) {
	n := NewNoteInput("Win", "what went well", "shipped", 100)
	if n.Value() != "shipped" {
		t.Errorf("value = %q", n.Value())
	}
	if !strings.Contains(n.View(), "Win") {
		t.Error("view should include the label")
	}
}
