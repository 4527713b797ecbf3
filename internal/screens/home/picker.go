package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/router"
	"github.com/abhisek/lumi/internal/screen"
	"github.com/abhisek/lumi/internal/subject"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/theme"
)

// picker asks for a subject and replaces itself with the chosen screen.
type picker struct {
	title string
	menu  components.Menu
}

func newPicker(title string, open func(subject.Subject) screen.Screen) *picker {
	items := make([]components.MenuItem, len(subject.All))
	for i, s := range subject.All {
		items[i] = components.MenuItem{
			Label: s.Label(),
			Hint:  s.Name(),
			Action: func() tea.Cmd {
				return router.Replace(open(s))
			},
		}
	}
	return &picker{title: title, menu: components.NewMenu(items)}
}

func (p *picker) Init() tea.Cmd { return nil }

func (p *picker) Title() string { return p.title }

func (p *picker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *picker) View(width, height int) string {
	heading := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("Choose a subject")
	return components.CabinetFrame(heading+"\n\n"+p.menu.View(), width, height)
}
