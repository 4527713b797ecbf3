package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all arcade sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// ArcadeButton renders a styled button matching the home menu style.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}

// Tabs renders a row of tab labels with the active one highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeCyan).
				Bold(true).
				Padding(0, 1).
				Render(l)
			continue
		}
		parts[i] = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Padding(0, 1).
			Render(l)
	}
	return strings.Join(parts, " ")
}

// Rule renders a dim horizontal separator.
func Rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

// Stars renders a 0-3 star rating.
func Stars(n, of int) string {
	return lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(strings.Repeat("★", n)) +
		theme.Dim.Render(strings.Repeat("☆", max(of-n, 0)))
}
