// Package welcome shows the start-up splash before the dashboard.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	sparkleAt    = 500 * time.Millisecond
	greetAt      = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `    ╭───╮
  ╭─┤◉ ◉├─╮
  │ │ ◡ │ │
  ╰─┤✦✦✦├─╯
    ╰┬─┬╯`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen plays a short greeting and then replaces itself with the
// screen from next. Any key skips ahead.
type WelcomeScreen struct {
	name         string
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen greeting name.
func New(name string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{name: name, next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := strings.Split(lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt), "\n")

	if w.elapsed >= sparkleAt {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(sparkle)
		lines[0] = a + "  " + lines[0] + "  " + s
		lines[2] = s + "  " + lines[2] + "  " + a
		lines[4] = a + "  " + lines[4] + "  " + s
	}

	sections := []string{strings.Join(lines, "\n")}
	if w.elapsed >= greetAt {
		greeting := "Hi! I'm Lumi."
		if w.name != "" {
			greeting = fmt.Sprintf("Hi %s! I'm Lumi.", w.name)
		}
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(greeting),
			lipgloss.NewStyle().Foreground(theme.Text).Render("Ready to learn something new today?"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
