// Package conquer is the daily conquer run over pending mistakes.
package conquer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/quiz"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/screens/result"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
	"github.com/abhisek/lumi/internal/vault"
)

// autoAdvanceDelay is how long a correct answer stays on screen.
const autoAdvanceDelay = 800 * time.Millisecond

// advanceMsg moves past question index once its delay has passed.
type advanceMsg struct{ index int }

// ConquerScreen runs one daily conquer.
type ConquerScreen struct {
	deps     *bootstrap.Deps
	run      *vault.Conquest
	choices  components.Choices
	itemID   string
	picked   string
	last     vault.AnswerResult
	showHint bool
	claimed  bool
	errMsg   string
}

var _ screen.Screen = (*ConquerScreen)(nil)
var _ screen.KeyHintProvider = (*ConquerScreen)(nil)

// New queues today's conquer from the vault's pending items.
func New(d *bootstrap.Deps) *ConquerScreen {
	return &ConquerScreen{
		deps: d,
		run:  vault.NewConquest(d.Vault.Vault.Pending(), d.Rand),
	}
}

func (s *ConquerScreen) Init() tea.Cmd { return nil }

func (s *ConquerScreen) Title() string { return "Daily Conquer" }

func (s *ConquerScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.run.Stage() == session.StageBriefing:
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}, {Key: "Esc", Description: "Back"}}
	case s.run.Stage() == session.StageDebrief:
		return []layout.KeyHint{{Key: "Enter", Description: "Claim reward"}, {Key: "Esc", Description: "Leave without claiming"}}
	case s.run.Answered():
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "h", Description: "Hint"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ConquerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(advanceMsg); ok {
		if s.run.Stage() != session.StageActive || s.run.Flow().Index() != m.index {
			return s, nil
		}
		return s, s.next()
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.run.Stage() == session.StageBriefing {
		if kmsg.String() == "enter" {
			if !s.run.Start() {
				s.errMsg = "Nothing to conquer today. 🎉"
				return s, nil
			}
			s.sync()
		}
		return s, nil
	}
	if s.run.Stage() == session.StageDebrief {
		if kmsg.String() == "enter" {
			return s, s.claim()
		}
		return s, nil
	}
	if s.run.Stage() != session.StageActive {
		return s, nil
	}

	if s.run.Answered() {
		if kmsg.String() == "enter" {
			return s, s.next()
		}
		return s, nil
	}

	switch kmsg.String() {
	case "h":
		s.showHint = !s.showHint
	case "enter", "space", " ":
		s.picked = s.choices.Current()
		s.last = s.run.Answer(s.picked)
		if s.last.AutoAdvance {
			idx := s.run.Flow().Index()
			return s, tea.Tick(autoAdvanceDelay, func(time.Time) tea.Msg { return advanceMsg{index: idx} })
		}
	default:
		s.choices = s.choices.Update(msg)
	}
	return s, nil
}

// sync resets the widgets for the current question.
func (s *ConquerScreen) sync() {
	q, _, err := s.run.Current()
	if err != nil || q.ID == s.itemID {
		return
	}
	s.itemID = q.ID
	s.choices = components.NewChoices(q)
	s.picked = ""
	s.last = vault.AnswerResult{}
	s.showHint = false
}

// next moves to the following question. Past the last one the run sits in
// its debrief until the learner claims or leaves.
func (s *ConquerScreen) next() tea.Cmd {
	if !s.run.Next() {
		s.sync()
	}
	return nil
}

// claim commits the run and shows the result. Leaving the debrief with Esc
// discards it instead.
func (s *ConquerScreen) claim() tea.Cmd {
	if s.claimed {
		return nil
	}
	claim, ok := s.deps.ClaimConquest(context.Background(), s.run)
	if !ok {
		return router.Pop
	}
	s.claimed = true
	details := []string{
		fmt.Sprintf("%d mistakes mastered, %d still pending", len(claim.Transitions), s.deps.Vault.Vault.PendingCount()),
	}
	if claim.LevelsUp > 0 {
		details = append(details, fmt.Sprintf("Level up! Now Lv.%d", s.deps.Rewards.Wallet().Level))
	}
	return router.Replace(result.New(s.Title(), claim.Result, result.Options{Details: details, ShowXP: true}))
}

func (s *ConquerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Correct.Render(s.errMsg)
	case s.run.Stage() == session.StageBriefing:
		body = s.renderBriefing()
	case s.run.Stage() == session.StageDebrief:
		body = s.renderDebrief()
	default:
		body = s.renderBattle(cw)
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(body), width, height)
}

func (s *ConquerScreen) renderBriefing() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("⚔ 每日消灭"))
	b.WriteString("\n\n")
	if s.run.Len() == 0 {
		b.WriteString(theme.Correct.Render("Your vault is clear. Nothing to conquer today."))
		return b.String()
	}
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d questions from your mistake vault.", s.run.Len())))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render("Every correct answer masters the mistake and keeps your combo alive."))
	b.WriteString("\n\n")
	b.WriteString(components.ArcadeButton("FIGHT", true, 20))
	return b.String()
}

func (s *ConquerScreen) renderDebrief() string {
	res, _ := s.run.Claim()
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("🏆 战斗结束"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d / %d mistakes conquered", res.Correct, res.Total)))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Max combo ×%d", res.MaxCombo)))
	b.WriteString("\n")
	b.WriteString(theme.Warn.Render(fmt.Sprintf("+%d XP waiting", res.XPEarned)))
	b.WriteString("\n\n")
	b.WriteString(components.ArcadeButton("领取奖励并返回", true, 24))
	return b.String()
}

func (s *ConquerScreen) renderBattle(cw int) string {
	q, src, err := s.run.Current()
	if err != nil {
		return theme.Incorrect.Render(err.Error())
	}

	var b strings.Builder
	header := fmt.Sprintf("Question %d/%d", s.run.Flow().Index()+1, s.run.Len())
	combo := ""
	if c := s.run.Combo(); c > 1 {
		combo = "  " + theme.Warn.Render(fmt.Sprintf("🔥 combo ×%d", c))
	}
	b.WriteString(theme.Dim.Render(header) + combo)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(s.run.Flow().Index())/float64(s.run.Len()), false, cw).View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.SubjectColor(src.Subject)).Render(src.Subject.Label() + " · " + src.Topic))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Bold(true).Foreground(theme.Text).Render(q.Prompt))
	b.WriteString("\n\n")

	var reveal quiz.Answer
	if s.run.Answered() {
		reveal = q.Correct
	}
	b.WriteString(s.choices.View(pickedAnswer(s.picked), reveal))
	b.WriteString("\n\n")

	switch {
	case s.run.Answered() && s.last.Correct:
		b.WriteString(theme.Correct.Render("✓ Conquered!"))
	case s.run.Answered():
		b.WriteString(theme.Incorrect.Render("✗ Answer: " + src.CorrectAnswer))
		b.WriteString("\n")
		b.WriteString(components.ArcadeCard(src.Analysis, cw))
	case s.showHint:
		b.WriteString(components.ArcadeCard("💡 "+s.run.Hint(), cw))
	}
	return b.String()
}

func pickedAnswer(p string) quiz.Answer {
	if p == "" {
		return nil
	}
	return quiz.Single(p)
}
