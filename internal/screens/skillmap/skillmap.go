// Package skillmap shows a subject's level map and opens its nodes.
package skillmap

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/skillmap"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

type walkerLoadedMsg struct {
	walker *skillmap.Walker
	err    error
}

// SkillMapScreen lists the nodes of one subject map.
type SkillMapScreen struct {
	deps         *bootstrap.Deps
	subject      subject.Subject
	walker       *skillmap.Walker
	cursor       int
	scrollOffset int
	grade        string
	textbook     string
	spinner      components.Spinner
	flash        string
	errMsg       string
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a map screen for subj.
func New(d *bootstrap.Deps, subj subject.Subject) *SkillMapScreen {
	return &SkillMapScreen{
		deps:    d,
		subject: subj,
		spinner: components.Spinner{Label: "Loading map..."},
	}
}

func (s *SkillMapScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		w, err := s.deps.Walker(context.Background(), s.subject)
		return walkerLoadedMsg{walker: w, err: err}
	}
	return tea.Batch(load, s.spinner.Tick())
}

func (s *SkillMapScreen) Title() string { return s.subject.Label() + " Map" }

// KeyHints returns the key binding hints for the footer.
func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "g/t", Description: "Grade/Textbook"},
		{Key: "u", Description: "Unlock all"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case walkerLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.walker = msg.walker
		m := s.walker.Map()
		s.grade, s.textbook = m.Grade, m.Textbook
		s.focusCurrent()
		return s, nil
	case components.SpinnerTickMsg:
		if s.walker != nil || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case router.ResumedMsg:
		if s.walker != nil {
			s.focusCurrent()
		}
		return s, nil
	case tea.KeyMsg:
		if s.walker == nil {
			return s, nil
		}
		s.flash = ""
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "g":
			s.grade = cycle(s.deps.Static.Grades(), s.grade)
			s.flash = "Now studying " + s.grade + " · " + s.textbook
		case "t":
			s.textbook = cycle(s.deps.Static.Textbooks(), s.textbook)
			s.flash = "Now studying " + s.grade + " · " + s.textbook
		case "u":
			s.walker.UnlockAll()
			s.flash = "Preview mode: every node unlocked."
		case "enter":
			return s, s.selectNode()
		case "q":
			return s, router.Pop
		}
	}
	return s, nil
}

// cycle returns the entry after cur, wrapping around. An unknown cur starts
// from the first entry.
func cycle(options []string, cur string) string {
	if len(options) == 0 {
		return cur
	}
	i := slices.Index(options, cur)
	return options[(i+1)%len(options)]
}

// focusCurrent moves the cursor to the node to play next.
func (s *SkillMapScreen) focusCurrent() {
	cur, ok := s.walker.Current()
	if !ok {
		return
	}
	for i, n := range s.walker.Map().Nodes {
		if n.ID == cur.ID {
			s.cursor = i
			return
		}
	}
}

func (s *SkillMapScreen) moveCursor(delta int) {
	s.cursor = min(max(s.cursor+delta, 0), max(len(s.walker.Map().Nodes)-1, 0))
}

// selectNode handles enter on the node under the cursor.
func (s *SkillMapScreen) selectNode() tea.Cmd {
	nodes := s.walker.Map().Nodes
	if s.cursor >= len(nodes) {
		return nil
	}
	n := nodes[s.cursor]
	if !s.walker.Selectable(n.ID) {
		s.flash = "Locked. Finish the current level first."
		return nil
	}
	return router.Push(newNodeDetail(s.deps, s.subject, s.walker, n))
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *SkillMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *SkillMapScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.errMsg != "" {
		return components.CabinetFrame(theme.Incorrect.Render(s.errMsg), width, height)
	}
	if s.walker == nil {
		return components.CabinetFrame(s.spinner.View(), width, height)
	}

	m := s.walker.Map()
	p := s.walker.Progress()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.SubjectColor(s.subject)).Bold(true).
		Render(fmt.Sprintf("%s · %s %s", s.subject.Label(), s.grade, s.textbook)))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(m.Chapter))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("%d/%d  ★ %d/%d", p.Completed, p.Total, p.Stars, p.MaxStars),
		float64(p.Percent())/100, true, cw).View())
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	// Header lines above plus the flash line below.
	rows := max(height-12, 3)
	s.adjustScroll(rows)
	var lines []string
	for i, n := range m.Nodes {
		if i < s.scrollOffset || i >= s.scrollOffset+rows {
			continue
		}
		lines = append(lines, s.renderNodeRow(n, i == s.cursor, cw))
	}
	b.WriteString(strings.Join(lines, "\n"))

	if len(m.Syllabus) > 0 {
		b.WriteString("\n\n")
		var chapters []string
		for _, c := range m.Syllabus {
			chapters = append(chapters, nodeIcon(skillmap.Node{Status: c.Status, Type: skillmap.NodeLevel})+" "+c.Title)
		}
		b.WriteString(theme.Dim.Render(strings.Join(chapters, "   ")))
	}
	if s.flash != "" {
		b.WriteString("\n\n" + theme.Hint.Render(s.flash))
	}
	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func nodeIcon(n skillmap.Node) string {
	switch {
	case n.Type == skillmap.NodeChest && n.Status == skillmap.StatusCompleted:
		return "🔓"
	case n.Type == skillmap.NodeChest:
		return "🎁"
	case n.Type == skillmap.NodeBoss:
		return "👑"
	case n.Status == skillmap.StatusCompleted:
		return "●"
	case n.Status == skillmap.StatusCurrent:
		return "◉"
	}
	return "○"
}

// renderNodeRow renders a single node row.
func (s *SkillMapScreen) renderNodeRow(n skillmap.Node, selected bool, cw int) string {
	indent := ""
	if n.Branch {
		indent = "  └ "
	}
	nameWidth := max(cw-len(indent)-22, 10)
	name := n.Title
	if r := []rune(name); len(r) > nameWidth {
		name = string(r[:nameWidth-1]) + "…"
	}

	var nameStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	case n.Status == skillmap.StatusCompleted:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
	case n.Status == skillmap.StatusCurrent:
		nameStyle = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	badge := theme.Dim.Render(n.Duration)
	switch {
	case n.Type == skillmap.NodeChest && n.RewardCoins > 0:
		badge = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("🪙 %d", n.RewardCoins))
	case n.Type != skillmap.NodeChest && n.Status == skillmap.StatusCompleted:
		badge = components.Stars(n.Stars, skillmap.MaxStars)
	}
	return fmt.Sprintf("%s%s%s %s  %s", cursor, indent, nodeIcon(n), nameStyle.Render(name), badge)
}
