package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

// MenuItem is one entry in a navigation menu.
type MenuItem struct {
	Label    string
	Hint     string // dim text after the label
	Badge    string // highlighted count, e.g. pending mistakes
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Digits 1-9 jump to and activate an
// item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) {
			m.Selected = n - 1
			return m, m.activate(m.Selected)
		}
	}
	return m, nil
}

func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders the menu.
func (m Menu) View() string {
	badge := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Accent).Bold(true).Padding(0, 1)

	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		var line string
		switch {
		case item.Disabled:
			line = theme.Dim.Render("    " + item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
		default:
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Badge != "" {
			line += " " + badge.Render(item.Badge)
		}
		if item.Hint != "" {
			line += "  " + theme.Hint.Render(item.Hint)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
