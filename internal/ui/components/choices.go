package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// Choices is an option list with a keyboard cursor. The owning screen
// decides what enter and space do with the option under the cursor.
type Choices struct {
	Options []string
	Multi   bool
	Cursor  int
}

// NewChoices creates a cursor over the options of a choice item.
func NewChoices(it quiz.Item) Choices {
	return Choices{Options: it.Options, Multi: it.Kind == quiz.MultiChoice}
}

// Update moves the cursor with the arrow keys or a letter/digit shortcut.
func (c Choices) Update(msg tea.Msg) Choices {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c
	}
	switch key := kmsg.String(); key {
	case "up", "k":
		c.Cursor = max(c.Cursor-1, 0)
	case "down", "j":
		c.Cursor = min(c.Cursor+1, len(c.Options)-1)
	default:
		if i, ok := shortcut(key); ok && i < len(c.Options) {
			c.Cursor = i
		}
	}
	return c
}

func shortcut(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch ch := key[0]; {
	case ch >= '1' && ch <= '9':
		return int(ch - '1'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch - 'a'), true
	}
	return 0, false
}

// Current returns the option under the cursor.
func (c Choices) Current() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return ""
	}
	return c.Options[c.Cursor]
}

// View renders the options with picked marking the learner's answer. When
// reveal is non-nil the correct options turn green and wrong picks red.
func (c Choices) View(picked quiz.Answer, reveal quiz.Answer) string {
	lines := make([]string, len(c.Options))
	for i, opt := range c.Options {
		mark := "( )"
		if c.Multi {
			mark = "[ ]"
		}
		if picked.Contains(opt) {
			mark = "(●)"
			if c.Multi {
				mark = "[x]"
			}
		}
		prefix := "  "
		if i == c.Cursor && reveal == nil {
			prefix = "▸ "
		}
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		line := fmt.Sprintf("%s%s %s. %s", prefix, mark, label, opt)

		switch {
		case reveal != nil && reveal.Contains(opt):
			lines[i] = theme.Correct.Render(line)
		case reveal != nil && picked.Contains(opt):
			lines[i] = theme.Incorrect.Render(line)
		case reveal != nil:
			lines[i] = theme.Dim.Render(line)
		case i == c.Cursor:
			lines[i] = theme.Selected.Render(line)
		default:
			lines[i] = theme.Unselected.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
