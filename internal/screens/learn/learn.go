// Package learn runs a lesson: timed playback, a quiz on it, then the
// replay in review mode.
package learn

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/lesson"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	quizscreen "github.com/abhisek/lumi/internal/screens/quiz"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

// tickInterval is the playback refresh rate.
const tickInterval = 250 * time.Millisecond

var speeds = []float64{0.5, 1, 1.5, 2}

type loadedMsg struct {
	lesson lesson.Lesson
	items  []quiz.Item
	err    error
}

type playTickMsg struct{}

// Options tune a lesson run.
type Options struct {
	// Title replaces the lesson title in the header.
	Title string
	// Complete is called once with the quiz result. The returned lines
	// are shown on the review banner.
	Complete func(session.Result) []string
}

// LessonScreen drives a lesson.LearningFlow.
type LessonScreen struct {
	deps    *bootstrap.Deps
	subject subject.Subject
	opts    Options
	flow    *lesson.LearningFlow
	sheet   quizscreen.Sheet
	ticking bool
	speed   int
	result  session.Result
	details []string
	spinner components.Spinner
	errMsg  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackInterceptor = (*LessonScreen)(nil)

// New creates a lesson screen for subj.
func New(d *bootstrap.Deps, subj subject.Subject, opts Options) *LessonScreen {
	return &LessonScreen{
		deps:    d,
		subject: subj,
		opts:    opts,
		speed:   1,
		spinner: components.Spinner{Label: "Loading lesson..."},
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	subj := s.subject
	load := func() tea.Msg {
		var msg loadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			l, err := s.deps.Content.Lesson(ctx, subj)
			msg.lesson = l
			return err
		})
		g.Go(func() error {
			items, err := s.deps.Content.QuizBank(ctx, subj)
			msg.items = items
			return err
		})
		msg.err = g.Wait()
		return msg
	}
	return tea.Batch(load, s.spinner.Tick())
}

func (s *LessonScreen) Title() string {
	if s.opts.Title != "" {
		return s.opts.Title
	}
	if s.flow != nil {
		return s.flow.Player().Lesson().Title
	}
	return s.subject.Label() + " Lesson"
}

// InterceptBack clears a typed quiz answer before leaving.
func (s *LessonScreen) InterceptBack() bool {
	return s.flow != nil && s.flow.Phase() == lesson.PhaseQuiz && s.sheet.HasText()
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.flow == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	switch s.flow.Phase() {
	case lesson.PhaseQuiz:
		return append(s.sheet.KeyHints(), layout.KeyHint{Key: "Esc", Description: "Quit"})
	case lesson.PhaseReview:
		return []layout.KeyHint{
			{Key: "Space", Description: "Play/pause"},
			{Key: "←→", Description: "Step"},
			{Key: "Enter", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Play/pause"},
		{Key: "←→", Description: "Step"},
		{Key: "+/-", Description: "Speed"},
		{Key: "Enter", Description: "Quiz"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.flow = lesson.NewLearningFlow(msg.lesson, msg.items)
		return s, nil
	case components.SpinnerTickMsg:
		if s.flow != nil || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case playTickMsg:
		return s, s.tick()
	}

	if s.flow == nil {
		return s, nil
	}
	if s.flow.Phase() == lesson.PhaseQuiz {
		return s, s.updateQuiz(msg)
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	return s, s.updatePlayer(kmsg)
}

func (s *LessonScreen) updatePlayer(kmsg tea.KeyMsg) tea.Cmd {
	p := s.flow.Player()
	switch kmsg.String() {
	case "space", " ":
		p.TogglePlay()
		return s.startTicking()
	case "left", "h":
		p.Seek(max(p.ActiveIndex()-1, 0))
		return s.startTicking()
	case "right", "l":
		p.Seek(p.ActiveIndex() + 1)
		return s.startTicking()
	case "+", "=":
		s.speed = min(s.speed+1, len(speeds)-1)
		p.SetSpeed(speeds[s.speed])
	case "-":
		s.speed = max(s.speed-1, 0)
		p.SetSpeed(speeds[s.speed])
	case "enter":
		if s.flow.Phase() == lesson.PhaseReview {
			return router.Pop
		}
		s.flow.FinishLesson()
		if s.flow.Quiz().Flow().Stage() != session.StageActive {
			return s.complete(session.Result{})
		}
		s.sheet = quizscreen.NewSheet(s.flow.Quiz())
		return s.sheet.Init()
	}
	return nil
}

func (s *LessonScreen) updateQuiz(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		s.sheet.ClearText()
		return nil
	}
	var (
		cmd       tea.Cmd
		submitted bool
	)
	s.sheet, cmd, submitted = s.sheet.Update(msg)
	if !submitted {
		return cmd
	}
	res, _ := s.flow.Quiz().Result()
	s.deps.RecordQuiz(context.Background(), s.subject, res)
	return s.complete(res)
}

// complete hands the result to the owner and switches to review.
func (s *LessonScreen) complete(res session.Result) tea.Cmd {
	s.result = res
	if s.opts.Complete != nil {
		s.details = s.opts.Complete(res)
	}
	if !s.flow.Review() {
		return router.Pop
	}
	return nil
}

func (s *LessonScreen) startTicking() tea.Cmd {
	if s.ticking || !s.flow.Player().Playing() {
		return nil
	}
	s.ticking = true
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return playTickMsg{} })
}

func (s *LessonScreen) tick() tea.Cmd {
	s.ticking = false
	if s.flow == nil || s.flow.Phase() == lesson.PhaseQuiz {
		return nil
	}
	s.flow.Player().Tick(tickInterval)
	return s.startTicking()
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render(s.errMsg)
	case s.flow == nil:
		body = s.spinner.View()
	case s.flow.Phase() == lesson.PhaseQuiz:
		body = s.sheet.View(cw)
	default:
		body = s.renderPlayer(cw)
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(body), width, height)
}

func (s *LessonScreen) renderPlayer(cw int) string {
	p := s.flow.Player()
	l := p.Lesson()

	var b strings.Builder
	if s.flow.Phase() == lesson.PhaseReview {
		b.WriteString(s.renderBanner(cw))
		b.WriteString("\n")
	}

	title := l.Title
	if l.Author != "" {
		title += theme.Dim.Render(fmt.Sprintf("  %s %s", l.Dynasty, l.Author))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.SubjectColor(l.Subject)).Bold(true).Render(title))
	b.WriteString("\n")

	state := "⏸"
	if p.Playing() {
		state = "▶"
	}
	clock := fmt.Sprintf("%s %s / %s  ×%.1f", state, formatClock(p.Position()), formatClock(l.Duration()), p.Speed())
	b.WriteString(components.NewProgressBar(clock, p.Progress()/100, false, cw).View())
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	active := p.ActiveIndex()
	for i, pt := range l.Points {
		b.WriteString(renderPoint(l.Format, pt, i == active))
		b.WriteString("\n")
	}

	if pt, ok := p.Active(); ok && (pt.Explanation != "" || len(pt.Notes) > 0) {
		var d strings.Builder
		d.WriteString(pt.Explanation)
		for _, n := range pt.Notes {
			d.WriteString("\n• " + n)
		}
		b.WriteString("\n")
		b.WriteString(components.ArcadeCard(strings.TrimSpace(d.String()), cw))
	}

	if s.flow.Phase() == lesson.PhaseReview {
		for _, n := range l.Notes {
			b.WriteString("\n")
			b.WriteString(theme.Warn.Render(n.Title) + "  " + theme.Body.Render(n.Body))
		}
	}
	if len(l.Vocab) > 0 {
		b.WriteString("\n")
		for _, v := range l.Vocab {
			b.WriteString(fmt.Sprintf("\n%s %s  %s",
				theme.Selected.Render(v.Word), theme.Dim.Render(v.Phonetics), theme.Body.Render(v.Meaning)))
		}
	}
	return b.String()
}

func (s *LessonScreen) renderBanner(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Correct.Render(fmt.Sprintf("Quiz: %d/%d correct", s.result.Correct, s.result.Total)))
	for _, d := range s.details {
		b.WriteString("\n" + theme.Body.Render(d))
	}
	b.WriteString("\n" + theme.Hint.Render("Review the lesson, then press Enter."))
	return components.ArcadeCard(b.String(), cw)
}

func renderPoint(f lesson.Format, pt lesson.Point, active bool) string {
	text := pt.Text
	if f == lesson.FormatDialogue && pt.Speaker != "" {
		text = pt.Speaker + ": " + text
	}
	prefix := "  "
	if pt.KeyStep {
		prefix = "★ "
	}
	if active {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Dim.Render(prefix + text)
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
