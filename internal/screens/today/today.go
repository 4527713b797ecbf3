// Package today shows the daily plan with completion toggles.
package today

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

var filters = []plan.Filter{plan.FilterPending, plan.FilterDone, plan.FilterAll}

var filterLabels = []string{"待完成", "已完成", "全部"}

// PlanScreen lists today's tasks.
type PlanScreen struct {
	deps   *bootstrap.Deps
	filter int
	cursor int
	errMsg string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates the plan screen showing pending tasks.
func New(d *bootstrap.Deps) *PlanScreen {
	return &PlanScreen{deps: d}
}

func (s *PlanScreen) Init() tea.Cmd { return nil }

func (s *PlanScreen) Title() string { return "Today's Plan" }

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Filter"},
		{Key: "Space", Description: "Done/undo"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlanScreen) tasks() []plan.Task {
	return s.deps.Board.Filter(filters[s.filter])
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	tasks := s.tasks()
	switch kmsg.String() {
	case "left", "h":
		s.filter = (s.filter + len(filters) - 1) % len(filters)
		s.cursor = 0
	case "right", "l", "tab":
		s.filter = (s.filter + 1) % len(filters)
		s.cursor = 0
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(tasks)-1, 0))
	case "space", " ", "enter":
		if s.cursor < len(tasks) {
			if _, err := s.deps.ToggleTask(context.Background(), tasks[s.cursor].ID); err != nil {
				s.errMsg = err.Error()
			}
			s.cursor = min(s.cursor, max(len(s.tasks())-1, 0))
		}
	}
	return s, nil
}

func (s *PlanScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	p := s.deps.Board.Plan()
	prog := s.deps.Board.Progress()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(p.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(p.Description))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar(
		fmt.Sprintf("%d/%d · %d/%d min", prog.Done, prog.Total, prog.MinutesDone, prog.MinutesTotal),
		float64(prog.Percent())/100, true, cw).View())
	b.WriteString("\n\n")
	b.WriteString(components.Tabs(filterLabels, s.filter))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n")

	tasks := s.tasks()
	if len(tasks) == 0 {
		b.WriteString(theme.Dim.Render("Nothing here."))
	}
	for i, t := range tasks {
		b.WriteString(s.renderTask(t, i == s.cursor, cw))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Plan reward: %d XP", p.TotalXP)))

	return components.CabinetFrame(lipgloss.NewStyle().Width(cw).Render(b.String()), width, height)
}

func (s *PlanScreen) renderTask(t plan.Task, selected bool, cw int) string {
	box := "○"
	title := theme.Unselected.Render(t.Title)
	if t.Completed {
		box = theme.Correct.Render("●")
		title = theme.Dim.Strikethrough(true).Render(t.Title)
	}
	prefix := "  "
	if selected {
		prefix = theme.Selected.Render("▸ ")
		if !t.Completed {
			title = theme.Selected.Render(t.Title)
		}
	}
	tag := lipgloss.NewStyle().Foreground(theme.SubjectColor(t.Subject)).Render(t.Subject.Label())
	line := fmt.Sprintf("%s%s %s  %s  %s", prefix, box, tag, title, theme.Dim.Render(fmt.Sprintf("%d min", t.DurationMinutes)))
	if selected && t.Rationale != "" {
		line += "\n" + lipgloss.NewStyle().Width(cw-6).PaddingLeft(6).Foreground(theme.TextDim).Italic(true).Render(t.Rationale)
	}
	return line
}
