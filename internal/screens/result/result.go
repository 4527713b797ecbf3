// Package result renders the summary shown after a quiz, a daily conquer
// run or a lesson.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/session"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/layout"
	"github.com/abhisek/lumi/internal/ui/theme"
)

// Cell is one square of the answer grid.
type Cell struct {
	Label   string
	Correct bool
	Detail  string // shown when the cell is selected
}

// Options are the optional parts of a result screen.
type Options struct {
	Details []string // extra lines under the score
	Grid    []Cell
	ShowXP  bool
}

// Screen shows a finished session.
type Screen struct {
	title  string
	res    session.Result
	opts   Options
	cursor int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a result screen for res.
func New(title string, res session.Result, opts Options) *Screen {
	return &Screen{title: title, res: res, opts: opts}
}

// GridFromQuiz builds the answer grid of a submitted quiz.
func GridFromQuiz(q *session.Quiz) []Cell {
	var cells []Cell
	for i := 0; i < q.Flow().Len(); i++ {
		e, ok := q.Review(i)
		if !ok {
			break
		}
		detail := fmt.Sprintf("%s\nYour answer: %s   Correct: %s", e.Item.Prompt, orDash(e.Answer.String()), e.Item.Correct.String())
		if e.Item.Explanation != "" {
			detail += "\n" + e.Item.Explanation
		}
		cells = append(cells, Cell{Label: fmt.Sprint(i + 1), Correct: e.Correct, Detail: detail})
	}
	return cells
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.title }

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	if len(s.opts.Grid) > 0 {
		hints = append([]layout.KeyHint{{Key: "←→", Description: "Review answers"}}, hints...)
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		s.cursor = max(s.cursor-1, 0)
	case "right", "l":
		s.cursor = min(s.cursor+1, max(len(s.opts.Grid)-1, 0))
	case "enter", "q":
		return s, router.Pop
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	headline := "Keep going!"
	style := theme.Warn
	switch {
	case s.res.Perfect():
		headline, style = "Perfect run! ✨", theme.Correct
	case s.res.Accuracy() >= 0.6:
		headline, style = "Nice work!", theme.Correct
	}

	var b strings.Builder
	b.WriteString(style.Render(headline))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%d / %d correct", s.res.Correct, s.res.Total)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.res.Accuracy(), true, cw-8).View())
	b.WriteString("\n")
	if s.res.MaxCombo > 1 {
		b.WriteString(theme.Dim.Render(fmt.Sprintf("Max combo ×%d", s.res.MaxCombo)))
		b.WriteString("\n")
	}
	if s.opts.ShowXP {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("+%d XP", s.res.XPEarned)))
		b.WriteString("\n")
	}
	for _, d := range s.opts.Details {
		b.WriteString(theme.Body.Render(d))
		b.WriteString("\n")
	}

	if len(s.opts.Grid) > 0 {
		b.WriteString("\n")
		b.WriteString(s.renderGrid())
		b.WriteString("\n\n")
		b.WriteString(components.ArcadeCard(s.opts.Grid[s.cursor].Detail, cw))
	}

	return components.CabinetFrame(
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(b.String()),
		width, height)
}

func (s *Screen) renderGrid() string {
	cells := make([]string, len(s.opts.Grid))
	for i, c := range s.opts.Grid {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.BgDark).Background(theme.Success)
		if !c.Correct {
			st = st.Background(theme.Error)
		}
		if i == s.cursor {
			st = st.Bold(true).Underline(true)
		}
		cells[i] = st.Render(c.Label)
	}
	return strings.Join(cells, " ")
}
