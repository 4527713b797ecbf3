// Package assess runs the learning-profile assessment and shows its report.
package assess

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/assessment"
	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

type stagesLoadedMsg struct {
	stages []assessment.Stage
	err    error
}

type outcomeLoadedMsg struct {
	outcome assessment.Outcome
	err     error
}

// AssessScreen walks through launch, the three stages and the report.
type AssessScreen struct {
	deps    *bootstrap.Deps
	a       *assessment.Assessment
	choices components.Choices
	itemID  string
	last    *assessment.StepResult
	picked  string
	outcome *assessment.Outcome
	spinner components.Spinner
	errMsg  string
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)

// New creates the assessment screen.
func New(d *bootstrap.Deps) *AssessScreen {
	return &AssessScreen{deps: d, spinner: components.Spinner{Label: "Preparing your assessment..."}}
}

func (s *AssessScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		stages, err := s.deps.Content.AssessmentStages(context.Background())
		return stagesLoadedMsg{stages: stages, err: err}
	}
	return tea.Batch(load, s.spinner.Tick())
}

func (s *AssessScreen) Title() string { return "Learning Profile" }

func (s *AssessScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.a == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.outcome != nil:
		return []layout.KeyHint{{Key: "r", Description: "Retake"}, {Key: "Esc", Description: "Back"}}
	case s.a.Phase() == assessment.PhaseLaunch:
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}, {Key: "Esc", Description: "Back"}}
	}
	if _, ok := s.a.Summary(); ok {
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Quit"}}
	}
	if s.last != nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Select"}, {Key: "Enter", Description: "Answer"}, {Key: "Esc", Description: "Quit"}}
}

func (s *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stagesLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		a, err := assessment.New(msg.stages)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.a = a
		return s, nil
	case outcomeLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.outcome = &msg.outcome
		return s, nil
	case components.SpinnerTickMsg:
		if !s.loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.a == nil {
		return s, nil
	}
	key := kmsg.String()

	if s.a.Finished() {
		if key == "r" && s.outcome != nil {
			s.a.Retake()
			s.outcome = nil
			s.itemID = ""
		}
		return s, nil
	}
	if s.a.Phase() == assessment.PhaseLaunch {
		if key == "enter" {
			s.a.Start()
			s.sync()
		}
		return s, nil
	}
	if _, ok := s.a.Summary(); ok {
		if key != "enter" {
			return s, nil
		}
		s.a.Continue()
		if s.a.Finished() {
			return s, s.finish()
		}
		s.sync()
		return s, nil
	}

	if s.last != nil {
		if key == "enter" {
			s.a.Next()
			s.sync()
		}
		return s, nil
	}
	switch key {
	case "enter", "space", " ":
		s.picked = s.choices.Current()
		if res, ok := s.a.Answer(s.picked); ok {
			s.last = &res
		}
	default:
		s.choices = s.choices.Update(msg)
	}
	return s, nil
}

func (s *AssessScreen) loading() bool {
	if s.errMsg != "" {
		return false
	}
	return s.a == nil || (s.a.Finished() && s.outcome == nil)
}

// sync resets the widgets for the current step.
func (s *AssessScreen) sync() {
	it, err := s.a.Current()
	if err != nil || it.ID == s.itemID {
		return
	}
	s.itemID = it.ID
	s.choices = components.NewChoices(it)
	s.last = nil
	s.picked = ""
}

func (s *AssessScreen) finish() tea.Cmd {
	ctx := context.Background()
	if res, ok := s.a.StageResult(assessment.PhaseAcademic); ok {
		s.deps.RecordAssessment(ctx, res)
	}
	s.spinner.Label = "Lumi is analysing your answers..."
	a := s.a
	load := func() tea.Msg {
		o, err := a.Result(ctx, s.deps.Content)
		return outcomeLoadedMsg{outcome: o, err: err}
	}
	return tea.Batch(load, s.spinner.Tick())
}

func (s *AssessScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render(s.errMsg)
	case s.loading():
		body = s.spinner.View()
	case s.outcome != nil:
		body = renderOutcome(*s.outcome, cw)
	case s.a.Phase() == assessment.PhaseLaunch:
		body = renderLaunch()
	default:
		body = s.renderStage(cw)
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(body), width, height)
}

func renderLaunch() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("✦ 学习画像测评"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Three short stages: cognition, academics and learning style."))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render("Lumi uses the result to trim your daily plan."))
	b.WriteString("\n\n")
	b.WriteString(components.ArcadeButton("START", true, 20))
	return b.String()
}

func (s *AssessScreen) renderStage(cw int) string {
	var b strings.Builder
	labels := make([]string, len(assessment.StagePhases))
	for i, p := range assessment.StagePhases {
		labels[i] = fmt.Sprintf("%d %s", i+1, p)
	}
	b.WriteString(components.Tabs(labels, s.a.StageIndex()))
	b.WriteString("\n\n")

	if sum, ok := s.a.Summary(); ok {
		card := theme.Correct.Render("★ "+sum.Title) + "\n" + sum.Description
		b.WriteString(components.ArcadeCard(card, cw))
		b.WriteString("\n\n")
		b.WriteString(components.ArcadeButton("CONTINUE", true, 20))
		return b.String()
	}

	stage, _ := s.a.Stage()
	it, err := s.a.Current()
	if err != nil {
		return theme.Incorrect.Render(err.Error())
	}
	i, n := s.a.Step()
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%s · %d/%d", stage.Label, i+1, n)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Bold(true).Foreground(theme.Text).Render(it.Prompt))
	b.WriteString("\n\n")

	var picked, reveal quiz.Answer
	if s.picked != "" {
		picked = quiz.Single(s.picked)
	}
	if s.last != nil && stage.Scored {
		reveal = it.Correct
	}
	b.WriteString(s.choices.View(picked, reveal))

	if s.last != nil {
		b.WriteString("\n\n")
		if stage.Scored {
			if s.last.Correct {
				b.WriteString(theme.Correct.Render("✓ Correct"))
			} else {
				b.WriteString(theme.Incorrect.Render("✗ Not quite"))
			}
			b.WriteString("\n")
		}
		if s.last.Feedback != "" {
			b.WriteString(theme.Hint.Render("Lumi: " + s.last.Feedback))
		}
	}
	return b.String()
}

func renderOutcome(o assessment.Outcome, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("Your learning profile"))
	b.WriteString("\n\n")
	tags := make([]string, len(o.PersonaTags))
	for i, t := range o.PersonaTags {
		tags[i] = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeCyan).Padding(0, 1).Render(t)
	}
	b.WriteString(strings.Join(tags, " "))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Academic stage: %d/%d", o.Academic.Correct, o.Academic.Total)))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	for _, d := range o.Radar {
		pct := 0.0
		if d.FullMark > 0 {
			pct = float64(d.Score) / float64(d.FullMark)
		}
		b.WriteString(components.NewProgressBar(fmt.Sprintf("%-4s", d.Subject), pct, true, cw).View())
		b.WriteString("\n")
		if d.Analysis != "" {
			b.WriteString(theme.Dim.Render("  " + d.Analysis))
			b.WriteString("\n")
		}
	}
	if len(o.Preferences) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("Preferences: " + strings.Join(o.Preferences, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Correct.Render(fmt.Sprintf("Plan trimmed by %d%%, saving %s", o.Efficiency.RemovedPercent, o.Efficiency.SavedTime)))
	return b.String()
}
