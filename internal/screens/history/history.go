// Package history lists recorded study sessions and reward movements.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/store"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

const (
	tabSessions = iota
	tabRewards
)

const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEventRecord
	Rewards  []store.RewardEventRecord
	Err      error
}

// HistoryScreen displays past sessions and reward events.
type HistoryScreen struct {
	repo     store.EventRepo
	tab      int
	sessions []store.SessionEventRecord
	rewards  []store.RewardEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	spinner  components.Spinner
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Without a store it shows an empty log.
func New(d *bootstrap.Deps) *HistoryScreen {
	return &HistoryScreen{
		repo:     d.EventRepo(),
		expanded: make(map[int]bool),
		spinner:  components.Spinner{Label: "Loading history"},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.repo == nil {
		s.loaded = true
		return nil
	}
	return tea.Batch(s.spinner.Tick(), s.load)
}

func (s *HistoryScreen) load() tea.Msg {
	ctx := context.Background()
	sessions, err := s.repo.QuerySessionEvents(ctx, store.QueryOpts{Limit: pageSize})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	rewards, err := s.repo.QueryRewardEvents(ctx, store.QueryOpts{Limit: pageSize})
	if err != nil {
		return historyLoadedMsg{Sessions: sessions}
	}
	return historyLoadedMsg{Sessions: sessions, Rewards: rewards}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Sessions/Rewards"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabRewards {
		return len(s.rewards)
	}
	return len(s.sessions)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.rewards = msg.Rewards
		}
		s.loaded = true
		return s, nil

	case components.SpinnerTickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			s.tab = 1 - s.tab
			s.selected = 0
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		case "enter":
			if s.tab == tabSessions {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render("Error: " + s.errMsg))
	case !s.loaded:
		b.WriteString(s.spinner.View())
	default:
		b.WriteString(components.Tabs([]string{"Sessions", "Rewards"}, s.tab))
		b.WriteString("\n")
		b.WriteString(components.Rule(cw))
		b.WriteString("\n")
		if s.tab == tabRewards {
			s.renderRewards(&b)
		} else {
			s.renderSessions(&b, cw)
		}
	}

	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func (s *HistoryScreen) renderSessions(b *strings.Builder, cw int) {
	if len(s.sessions) == 0 {
		b.WriteString(theme.Dim.Italic(true).Render("No sessions yet. Start practicing!"))
		return
	}
	for i, sess := range s.sessions {
		var accuracy float64
		if sess.Total > 0 {
			accuracy = float64(sess.Correct) / float64(sess.Total) * 100
		}
		line := fmt.Sprintf("%s  %-10s %-6s %d/%d  %.0f%%",
			sess.Timestamp.Format("Jan 02 15:04"), modeLabel(sess.Mode), subjectLabel(sess.Subject),
			sess.Correct, sess.Total, accuracy)
		if sess.XPEarned > 0 {
			line += fmt.Sprintf("  +%d XP", sess.XPEarned)
		}
		b.WriteString(row(line, i == s.selected))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("max combo ×%d", sess.MaxCombo)
			if n := len(sess.MasteredIDs); n > 0 {
				detail += fmt.Sprintf(" · mastered %s", strings.Join(sess.MasteredIDs, ", "))
			}
			b.WriteString(lipgloss.NewStyle().Width(cw - 4).PaddingLeft(4).Foreground(theme.TextDim).Render(detail))
			b.WriteString("\n")
		}
	}
}

func (s *HistoryScreen) renderRewards(b *strings.Builder) {
	if len(s.rewards) == 0 {
		b.WriteString(theme.Dim.Italic(true).Render("No rewards yet."))
		return
	}
	for i, r := range s.rewards {
		amount := fmt.Sprintf("%+d", r.Amount)
		unit := "🪙"
		if r.Kind == store.RewardXP {
			unit = "XP"
		}
		style := theme.Correct
		if r.Amount < 0 {
			style = theme.Incorrect
		}
		reason := r.Reason
		if r.ItemID != "" {
			reason = fmt.Sprintf("%s (%s)", reason, r.ItemID)
		}
		line := fmt.Sprintf("%s  %s %s  %s",
			r.Timestamp.Format("Jan 02 15:04"), style.Render(amount), unit, reason)
		b.WriteString(row(line, i == s.selected))
		b.WriteString("\n")
	}
}

func row(line string, selected bool) string {
	if selected {
		return theme.Selected.Render("▸ ") + line
	}
	return "  " + theme.Unselected.Render(line)
}

func modeLabel(mode string) string {
	switch mode {
	case "quiz":
		return "Quiz"
	case "conquer":
		return "Conquer"
	case "assessment":
		return "Assessment"
	}
	return mode
}

func subjectLabel(raw string) string {
	if s, err := subject.Parse(raw); err == nil {
		return s.Label()
	}
	return "-"
}
