package vault

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
	"github.com/abhisek/lumi/internal/vault"
)

type variantLoadedMsg struct {
	item quiz.Item
	err  error
}

// PracticeScreen asks one variant of a mistake and records the attempt.
type PracticeScreen struct {
	deps    *bootstrap.Deps
	source  vault.Item
	item    *quiz.Item
	choices components.Choices
	input   components.TextInput
	answer  quiz.Answer
	checked bool
	correct bool
	spinner components.Spinner
	errMsg  string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.BackInterceptor = (*PracticeScreen)(nil)

// NewPractice creates a variant practice screen for src.
func NewPractice(d *bootstrap.Deps, src vault.Item) *PracticeScreen {
	return &PracticeScreen{
		deps:    d,
		source:  src,
		spinner: components.Spinner{Label: "Lumi is writing a similar question..."},
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	id := s.source.ID
	load := func() tea.Msg {
		it, err := s.deps.Content.Variant(context.Background(), id)
		return variantLoadedMsg{item: it, err: err}
	}
	return tea.Batch(load, s.spinner.Tick())
}

func (s *PracticeScreen) Title() string { return "Variant Practice" }

// InterceptBack clears typed text before leaving.
func (s *PracticeScreen) InterceptBack() bool {
	return s.item != nil && !s.checked && s.item.Kind == quiz.FreeText && s.input.Value() != ""
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.checked || s.item == nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Check"}, {Key: "Esc", Description: "Back"}}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case variantLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.item = &msg.item
		s.choices = components.NewChoices(msg.item)
		if msg.item.Kind == quiz.FreeText {
			s.input = components.NewTextInput("Type your answer...", 80)
			return s, s.input.Init()
		}
		return s, nil
	case components.SpinnerTickMsg:
		if s.item != nil || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.item == nil {
		if ok && kmsg.String() == "enter" && s.errMsg != "" {
			return s, router.Pop
		}
		return s, nil
	}
	if kmsg.String() == "esc" {
		s.input.Reset()
		return s, nil
	}
	if s.checked {
		if kmsg.String() == "enter" {
			return s, router.Pop
		}
		return s, nil
	}

	switch s.item.Kind {
	case quiz.FreeText:
		if kmsg.String() == "enter" {
			return s, s.check(quiz.Single(strings.TrimSpace(s.input.Value())))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	case quiz.MultiChoice:
		switch kmsg.String() {
		case "space", " ":
			s.answer = s.answer.Toggle(s.choices.Current())
		case "enter":
			return s, s.check(s.answer)
		default:
			s.choices = s.choices.Update(msg)
		}
	default:
		switch kmsg.String() {
		case "enter", "space", " ":
			return s, s.check(quiz.Single(s.choices.Current()))
		default:
			s.choices = s.choices.Update(msg)
		}
	}
	return s, nil
}

func (s *PracticeScreen) check(a quiz.Answer) tea.Cmd {
	s.answer = a
	s.checked = true
	s.correct = s.item.Check(a)
	if err := s.deps.Vault.Review(context.Background(), s.source.ID, s.correct); err != nil {
		s.errMsg = err.Error()
	}
	return nil
}

func (s *PracticeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Dim.Render("Based on: " + s.source.Snippet))
	b.WriteString("\n\n")

	switch {
	case s.item == nil && s.errMsg != "":
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	case s.item == nil:
		b.WriteString(s.spinner.View())
	default:
		b.WriteString(lipgloss.NewStyle().Width(cw).Bold(true).Foreground(theme.Text).Render(s.item.Prompt))
		b.WriteString("\n\n")
		if s.item.Kind == quiz.FreeText {
			b.WriteString(s.input.View())
		} else {
			var reveal quiz.Answer
			if s.checked {
				reveal = s.item.Correct
			}
			b.WriteString(s.choices.View(s.answer, reveal))
		}
		if s.checked {
			b.WriteString("\n\n")
			if s.correct {
				b.WriteString(theme.Correct.Render("✓ Correct! Lumi noted your progress."))
			} else {
				b.WriteString(theme.Incorrect.Render("✗ Answer: " + s.item.Correct.String()))
			}
			if s.item.Explanation != "" {
				b.WriteString("\n")
				b.WriteString(components.ArcadeCard(s.item.Explanation, cw))
			}
			if s.errMsg != "" {
				b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
			}
		}
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}
