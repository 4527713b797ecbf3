// Package quiz is the subject quiz screen: briefing, answer sheet and
// submission to the result screen.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/screens/result"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

type bankLoadedMsg struct {
	items []quiz.Item
	err   error
}

// QuizScreen runs one subject quiz.
type QuizScreen struct {
	deps    *bootstrap.Deps
	subject subject.Subject
	quiz    *session.Quiz
	sheet   Sheet
	spinner components.Spinner
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New creates a quiz screen for subj.
func New(d *bootstrap.Deps, subj subject.Subject) *QuizScreen {
	return &QuizScreen{
		deps:    d,
		subject: subj,
		spinner: components.Spinner{Label: "Loading questions..."},
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.loadBank(), s.spinner.Tick())
}

func (s *QuizScreen) loadBank() tea.Cmd {
	return func() tea.Msg {
		items, err := s.deps.Content.QuizBank(context.Background(), s.subject)
		return bankLoadedMsg{items: items, err: err}
	}
}

func (s *QuizScreen) Title() string { return s.subject.Label() + " Quiz" }

// InterceptBack makes the first Esc clear a typed answer instead of
// leaving the quiz.
func (s *QuizScreen) InterceptBack() bool {
	return s.quiz != nil && s.quiz.Flow().Stage() == session.StageActive && s.sheet.HasText()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quiz == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.quiz.Flow().Stage() == session.StageBriefing {
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}, {Key: "Esc", Description: "Back"}}
	}
	return append(s.sheet.KeyHints(), layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		if len(msg.items) == 0 {
			s.errMsg = fmt.Sprintf("No %s questions available.", s.subject.Label())
			return s, nil
		}
		s.quiz = session.NewQuiz(msg.items)
		return s, nil

	case components.SpinnerTickMsg:
		if s.quiz != nil || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	if s.quiz == nil {
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		s.sheet.ClearText()
		return s, nil
	}

	if s.quiz.Flow().Stage() == session.StageBriefing {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			s.quiz.Start()
			s.sheet = NewSheet(s.quiz)
			return s, s.sheet.Init()
		}
		return s, nil
	}

	var (
		cmd       tea.Cmd
		submitted bool
	)
	s.sheet, cmd, submitted = s.sheet.Update(msg)
	if !submitted {
		return s, cmd
	}
	return s, s.finish()
}

func (s *QuizScreen) finish() tea.Cmd {
	res, ok := s.quiz.Result()
	if !ok {
		return nil
	}
	s.deps.RecordQuiz(context.Background(), s.subject, res)
	return router.Replace(result.New(s.Title(), res, result.Options{Grid: result.GridFromQuiz(s.quiz)}))
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render(s.errMsg)
	case s.quiz == nil:
		body = s.spinner.View()
	case s.quiz.Flow().Stage() == session.StageBriefing:
		body = s.renderBriefing()
	default:
		body = s.sheet.View(cw)
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(body), width, height)
}

func (s *QuizScreen) renderBriefing() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.SubjectColor(s.subject)).Bold(true).Render(s.subject.Label() + " 小测验"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d questions. Answers can be changed until you submit.", s.quiz.Flow().Len())))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render("Blank answers count as wrong."))
	b.WriteString("\n\n")
	b.WriteString(components.ArcadeButton("START", true, 20))
	return b.String()
}
