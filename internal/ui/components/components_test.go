package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/quiz"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestChoicesCursor(t *testing.T) {
	c := NewChoices(quiz.Item{Kind: quiz.SingleChoice, Options: []string{"3", "4", "5"}})

	c = c.Update(key(tea.KeyUp))
	if c.Cursor != 0 {
		t.Errorf("cursor should stay at 0, got %d", c.Cursor)
	}
	c = c.Update(key(tea.KeyDown))
	c = c.Update(key(tea.KeyDown))
	c = c.Update(key(tea.KeyDown))
	if c.Cursor != 2 {
		t.Errorf("cursor should clamp at 2, got %d", c.Cursor)
	}
	if c.Current() != "5" {
		t.Errorf("Current = %q, want 5", c.Current())
	}
}

func TestChoicesShortcuts(t *testing.T) {
	c := NewChoices(quiz.Item{Kind: quiz.SingleChoice, Options: []string{"a", "b", "c"}})

	if c = c.Update(key('2')); c.Cursor != 1 {
		t.Errorf("digit 2 should select index 1, got %d", c.Cursor)
	}
	if c = c.Update(key('c')); c.Cursor != 2 {
		t.Errorf("letter c should select index 2, got %d", c.Cursor)
	}
	if c = c.Update(key('9')); c.Cursor != 2 {
		t.Errorf("out of range shortcut should be ignored, got %d", c.Cursor)
	}
}

func TestChoicesView(t *testing.T) {
	c := NewChoices(quiz.Item{Kind: quiz.MultiChoice, Options: []string{"red", "blue"}})
	if !c.Multi {
		t.Fatal("multi choice item should produce a multi cursor")
	}
	view := c.View(quiz.Answer{"blue"}, nil)
	if !strings.Contains(view, "[x] B. blue") {
		t.Errorf("picked option should be checked:\n%s", view)
	}
	if !strings.Contains(view, "▸ [ ] A. red") {
		t.Errorf("cursor row should be marked:\n%s", view)
	}
	if strings.Contains(c.View(nil, quiz.Answer{"red"}), "▸") {
		t.Error("cursor should be hidden once answers are revealed")
	}
}

func TestDialog(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want DialogResult
	}{
		{"enter defaults to cancel", []tea.KeyPressMsg{key(tea.KeyEnter)}, DialogCancelled},
		{"focus yes then enter", []tea.KeyPressMsg{key(tea.KeyLeft), key(tea.KeyEnter)}, DialogConfirmed},
		{"y confirms", []tea.KeyPressMsg{key('y')}, DialogConfirmed},
		{"n cancels", []tea.KeyPressMsg{key('n')}, DialogCancelled},
		{"esc cancels", []tea.KeyPressMsg{key(tea.KeyEscape)}, DialogCancelled},
		{"focus moves stay open", []tea.KeyPressMsg{key(tea.KeyRight), key(tea.KeyTab)}, DialogOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialog("Sure?", "Yes", "No")
			res := DialogOpen
			for _, k := range tt.keys {
				d, res = d.Update(k)
			}
			if res != tt.want {
				t.Errorf("result = %d, want %d", res, tt.want)
			}
		})
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var fired []string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = append(fired, name)
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true, Action: action("off")},
		{Label: "Plan", Action: action("plan")},
		{Label: "Off too", Disabled: true, Action: action("off too")},
		{Label: "Quiz", Action: action("quiz")},
	})
	if m.Selected != 1 {
		t.Fatalf("first enabled item should be selected, got %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("down should skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyUp))
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up should stop at the first enabled item, got %d", m.Selected)
	}

	m, _ = m.Update(key('1'))
	m, _ = m.Update(key(tea.KeyEnter))
	if len(fired) != 0 {
		t.Errorf("disabled items must not fire, got %v", fired)
	}
	m, _ = m.Update(key('4'))
	if len(fired) != 1 || fired[0] != "quiz" {
		t.Errorf("digit 4 should fire quiz, got %v", fired)
	}
}
