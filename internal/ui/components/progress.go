package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += theme.Dim.Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return result
}
