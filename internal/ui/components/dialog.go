package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

// Dialog is a yes/no confirmation box.
type Dialog struct {
	Question string
	Yes, No  string
	focusYes bool
}

// DialogResult is reported by Update once the learner decides.
type DialogResult int

const (
	DialogOpen DialogResult = iota
	DialogConfirmed
	DialogCancelled
)

// NewDialog creates a dialog with the cancel button focused.
func NewDialog(question, yes, no string) Dialog {
	return Dialog{Question: question, Yes: yes, No: no}
}

// Update handles left/right focus, enter, y and n.
func (d Dialog) Update(msg tea.Msg) (Dialog, DialogResult) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, DialogOpen
	}
	switch kmsg.String() {
	case "left", "right", "tab", "h", "l":
		d.focusYes = !d.focusYes
	case "y":
		return d, DialogConfirmed
	case "n", "esc":
		return d, DialogCancelled
	case "enter":
		if d.focusYes {
			return d, DialogConfirmed
		}
		return d, DialogCancelled
	}
	return d, DialogOpen
}

// View renders the dialog box.
func (d Dialog) View(cw int) string {
	yes, no := theme.ButtonInactive.Render(d.Yes), theme.ButtonActive.Render(d.No)
	if d.focusYes {
		yes, no = theme.ButtonActive.Render(d.Yes), theme.ButtonInactive.Render(d.No)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no)
	body := lipgloss.JoinVertical(lipgloss.Center, theme.Body.Bold(true).Render(d.Question), "", buttons)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(body)
}
