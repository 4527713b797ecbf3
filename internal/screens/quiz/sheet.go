package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

// Sheet answers a session.Quiz from the keyboard. Drafts stay editable
// until Enter is pressed on the last item.
type Sheet struct {
	q       *session.Quiz
	choices components.Choices
	input   components.TextInput
	itemID  string
}

// NewSheet wraps a started quiz.
func NewSheet(q *session.Quiz) Sheet {
	s := Sheet{q: q}
	s.sync()
	return s
}

// sync rebuilds the widgets when the current item changed.
func (s *Sheet) sync() tea.Cmd {
	it, err := s.q.Current()
	if err != nil || it.ID == s.itemID {
		return nil
	}
	s.itemID = it.ID
	s.choices = components.NewChoices(it)
	if it.Kind != quiz.FreeText {
		return nil
	}
	s.input = components.NewTextInput("Type your answer...", 80)
	s.input.SetValue(s.q.Draft(it.ID).String())
	return s.input.Init()
}

// Init focuses the text input when the first item takes typed input.
func (s Sheet) Init() tea.Cmd {
	if s.TextFocused() {
		return s.input.Init()
	}
	return nil
}

// HasText reports whether a typed answer is in the input.
func (s Sheet) HasText() bool {
	return s.TextFocused() && s.input.Value() != ""
}

// ClearText empties the input and the draft it feeds.
func (s *Sheet) ClearText() {
	s.input.Reset()
	s.q.Type("")
}

// TextFocused reports whether the current item takes typed input.
func (s Sheet) TextFocused() bool {
	it, err := s.q.Current()
	return err == nil && it.Kind == quiz.FreeText
}

// Update handles a key and reports whether the sheet was submitted.
func (s Sheet) Update(msg tea.Msg) (Sheet, tea.Cmd, bool) {
	it, err := s.q.Current()
	if err != nil {
		return s, nil, false
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			if it.Kind == quiz.SingleChoice {
				s.q.Choose(s.choices.Current())
			}
			if s.q.Next() {
				return s, nil, true
			}
			return s, s.sync(), false
		case "space", " ":
			switch it.Kind {
			case quiz.MultiChoice:
				s.q.Toggle(s.choices.Current())
				return s, nil, false
			case quiz.SingleChoice:
				s.q.Choose(s.choices.Current())
				return s, nil, false
			}
		case "tab":
			s.q.Seek(s.q.Flow().Index() + 1)
			return s, s.sync(), false
		case "shift+tab":
			s.q.Seek(s.q.Flow().Index() - 1)
			return s, s.sync(), false
		}
	}

	if it.Kind == quiz.FreeText {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.q.Type(strings.TrimSpace(s.input.Value()))
		return s, cmd, false
	}
	s.choices = s.choices.Update(msg)
	return s, nil, false
}

// KeyHints lists the sheet's keys for the current item.
func (s Sheet) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next/prev"}}
	it, err := s.q.Current()
	if err == nil && it.Kind == quiz.MultiChoice {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	label := "Next"
	if s.q.Flow().Index() == s.q.Flow().Len()-1 {
		label = "Submit"
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: label})
}

// View renders the current item and the answer grid.
func (s Sheet) View(cw int) string {
	it, err := s.q.Current()
	if err != nil {
		return ""
	}
	flow := s.q.Flow()

	var b strings.Builder
	info := fmt.Sprintf("Q %d/%d", flow.Index()+1, flow.Len())
	if it.Tag != "" {
		info += " · " + it.Tag
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info))
	b.WriteString(theme.Dim.Render(fmt.Sprintf("   answered %d/%d", s.q.AnsweredCount(), flow.Len())))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(it.Prompt))
	b.WriteString("\n\n")

	if it.Kind == quiz.FreeText {
		b.WriteString("Answer: " + s.input.View())
	} else {
		b.WriteString(s.choices.View(s.q.Draft(it.ID), nil))
	}
	b.WriteString("\n\n")
	b.WriteString(s.grid())
	return b.String()
}

func (s Sheet) grid() string {
	flow := s.q.Flow()
	cells := make([]string, 0, flow.Len())
	for i, it := range flow.Items() {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.TextDim).Background(theme.BgCard)
		if !s.q.Draft(it.ID).Empty() {
			st = st.Foreground(theme.BgDark).Background(theme.Secondary)
		}
		if i == flow.Index() {
			st = st.Bold(true).Underline(true)
		}
		cells = append(cells, st.Render(fmt.Sprint(i+1)))
	}
	return strings.Join(cells, " ")
}
