package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances a Spinner.
type SpinnerTickMsg time.Time

// Spinner is a loading indicator driven by SpinnerTickMsg.
type Spinner struct {
	Label string
	frame int
}

// Tick schedules the next frame.
func (s Spinner) Tick() tea.Cmd {
	return tea.Tick(90*time.Millisecond, func(t time.Time) tea.Msg { return SpinnerTickMsg(t) })
}

// Update advances on a tick and schedules the next one.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if _, ok := msg.(SpinnerTickMsg); !ok {
		return s, nil
	}
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s, s.Tick()
}

// View renders the current frame and label.
func (s Spinner) View() string {
	return theme.Selected.Render(spinnerFrames[s.frame]) + " " + theme.Dim.Render(s.Label)
}
