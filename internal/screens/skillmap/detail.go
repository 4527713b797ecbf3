package skillmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/screens/learn"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

// NodeDetailScreen shows one map node and starts it.
type NodeDetailScreen struct {
	deps    *bootstrap.Deps
	subject subject.Subject
	walker  *skillmap.Walker
	node    skillmap.Node
	flash   string
}

var _ screen.Screen = (*NodeDetailScreen)(nil)
var _ screen.KeyHintProvider = (*NodeDetailScreen)(nil)

func newNodeDetail(d *bootstrap.Deps, subj subject.Subject, w *skillmap.Walker, n skillmap.Node) *NodeDetailScreen {
	return &NodeDetailScreen{deps: d, subject: subj, walker: w, node: n}
}

func (s *NodeDetailScreen) Init() tea.Cmd { return nil }
func (s *NodeDetailScreen) Title() string { return s.node.Title }

func (s *NodeDetailScreen) KeyHints() []layout.KeyHint {
	label := "Start"
	if s.node.Type == skillmap.NodeChest {
		label = "Open"
	}
	return []layout.KeyHint{{Key: "Enter", Description: label}, {Key: "Esc", Description: "Back"}}
}

func (s *NodeDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || kmsg.String() != "enter" {
		return s, nil
	}
	if s.node.Type == skillmap.NodeChest {
		return s, s.openChest()
	}
	w, id := s.walker, s.node.ID
	return s, router.Replace(learn.New(s.deps, s.subject, learn.Options{
		Title: s.node.Title,
		Complete: func(res session.Result) []string {
			n, err := s.deps.CompleteNode(context.Background(), w, id, skillmap.StarsFor(res.Accuracy()))
			if err != nil {
				return []string{err.Error()}
			}
			lines := []string{"Level rating " + components.Stars(n.Stars, skillmap.MaxStars)}
			if n.RewardCoins > 0 {
				lines = append(lines, fmt.Sprintf("+%d coins", n.RewardCoins))
			}
			return lines
		},
	}))
}

func (s *NodeDetailScreen) openChest() tea.Cmd {
	if s.node.Status == skillmap.StatusCompleted {
		return router.Pop
	}
	n, err := s.deps.CompleteNode(context.Background(), s.walker, s.node.ID, 0)
	if err != nil {
		s.flash = err.Error()
		return nil
	}
	s.node = n
	s.flash = fmt.Sprintf("Chest opened! +%d coins", n.RewardCoins)
	return nil
}

func (s *NodeDetailScreen) View(width, height int) string {
	n := s.node
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%s  %s", nodeIcon(n), n.Title)))
	b.WriteString("\n")
	kind := fmt.Sprintf("Level %d", n.Level)
	switch n.Type {
	case skillmap.NodeChest:
		kind = "Reward chest"
	case skillmap.NodeBoss:
		kind = "Boss challenge"
	}
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%s · %s", kind, n.Status)))
	b.WriteString("\n\n")

	if n.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(n.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if n.Duration != "" {
		b.WriteString(dimStyle.Render("Duration:  ") + valStyle.Render(n.Duration) + "\n")
	}
	if n.RewardCoins > 0 {
		b.WriteString(dimStyle.Render("Reward:    ") + valStyle.Render(fmt.Sprintf("🪙 %d", n.RewardCoins)) + "\n")
	}
	if n.Type != skillmap.NodeChest {
		b.WriteString(dimStyle.Render("Best:      ") + components.Stars(n.Stars, skillmap.MaxStars) + "\n")
	}
	b.WriteString("\n")

	label := "START"
	if n.Type == skillmap.NodeChest {
		label = "OPEN"
		if n.Status == skillmap.StatusCompleted {
			label = "BACK"
		}
	}
	b.WriteString(components.ArcadeButton(label, true, 20))
	if s.flash != "" {
		b.WriteString("\n\n" + theme.Correct.Render(s.flash))
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}
