package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/screens/home"
	"github.com/abhisek/lumi/internal/screens/welcome"
	"github.com/abhisek/lumi/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *bootstrap.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome splash.
func newAppModel(d *bootstrap.Deps) AppModel {
	splash := welcome.New(d.Profile.Name, func() screen.Screen { return home.New(d) })
	return AppModel{
		deps:   d,
		router: router.New(splash),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	w := m.deps.Rewards.Wallet()
	header := layout.RenderHeader(active.Title(), layout.HeaderStats{
		Level:  w.Level,
		Coins:  w.Coins,
		Streak: m.deps.Stats.StreakDays,
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, d *bootstrap.Deps) error {
	p := tea.NewProgram(newAppModel(d), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		d.Log.Error("tui exited", "error", err)
	}
	return err
}
