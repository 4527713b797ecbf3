// Package leaderboard shows the class ranking and the learner's badges.
package leaderboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/rewards"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

// LeaderboardScreen has one tab per period plus an achievements tab.
type LeaderboardScreen struct {
	deps    *bootstrap.Deps
	tab     int
	entries map[rewards.Period][]rewards.Entry
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates the leaderboard screen on the weekly tab.
func New(d *bootstrap.Deps) *LeaderboardScreen {
	return &LeaderboardScreen{
		deps:    d,
		tab:     1,
		entries: make(map[rewards.Period][]rewards.Entry),
	}
}

func (s *LeaderboardScreen) Init() tea.Cmd { return nil }

func (s *LeaderboardScreen) Title() string { return "Leaderboard" }

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "←→", Description: "Switch"}, {Key: "Esc", Description: "Back"}}
}

func (s *LeaderboardScreen) tabs() int { return len(rewards.Periods) + 1 }

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		s.tab = (s.tab + s.tabs() - 1) % s.tabs()
	case "right", "l", "tab":
		s.tab = (s.tab + 1) % s.tabs()
	}
	return s, nil
}

// board builds a period's ranking once so it stays stable while browsing.
func (s *LeaderboardScreen) board(p rewards.Period) []rewards.Entry {
	if e, ok := s.entries[p]; ok {
		return e
	}
	e := rewards.BuildLeaderboard(p, s.deps.Profile.Roster, s.deps.Rand)
	s.entries[p] = e
	return e
}

func (s *LeaderboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	labels := make([]string, 0, s.tabs())
	for _, p := range rewards.Periods {
		labels = append(labels, p.DisplayName())
	}
	labels = append(labels, "成就")

	var b strings.Builder
	b.WriteString(components.Tabs(labels, s.tab))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")
	if s.tab < len(rewards.Periods) {
		b.WriteString(renderBoard(s.board(rewards.Periods[s.tab])))
	} else {
		b.WriteString(renderAchievements(s.deps.Profile.Achievements, cw))
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func renderBoard(entries []rewards.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		rank := fmt.Sprintf("%3d", e.Rank)
		switch e.Rank {
		case 1:
			rank = " 🥇"
		case 2:
			rank = " 🥈"
		case 3:
			rank = " 🥉"
		}
		trend := theme.Dim.Render("–")
		if e.Trend == rewards.TrendUp {
			trend = theme.Correct.Render("↑")
		}
		line := fmt.Sprintf("%s  %s %-12s %7d XP  %s", rank, e.Avatar, e.Name, e.XP, trend)
		if e.Me {
			line = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).Render(line)
		} else {
			line = theme.Body.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if me, ok := rewards.MyEntry(entries); ok {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("You are #%d with %d XP. Keep climbing!", me.Rank, me.XP)))
	}
	return b.String()
}

func renderAchievements(list []rewards.Achievement, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d/%d unlocked", rewards.UnlockedCount(list), len(list))))
	b.WriteString("\n\n")
	for _, a := range list {
		title := theme.Dim.Render("🔒 " + a.Title)
		if a.Unlocked {
			title = theme.Correct.Render(a.Icon+" "+a.Title) + theme.Dim.Render("  "+a.UnlockedOn)
		}
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).PaddingLeft(3).Foreground(theme.TextDim).Render(a.Description))
		b.WriteString("\n")
	}
	return b.String()
}
