// Package layout draws the frame shared by every screen: a header with the
// learner's level, coins and streak, the screen body, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool   { return width < compactWidth }
func IsCompactHeight(height int) bool { return height < compactHeight }

// IsTooSmall reports whether the terminal cannot fit a frame.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(fmt.Sprintf(
			"窗口太小啦 (%d×%d)\n\n请把终端调整到至少 %d×%d",
			width, height, MinWidth, MinHeight,
		)))
}

// HeaderStats are the wallet figures on the right of the header.
type HeaderStats struct {
	Level  int
	Coins  int
	Streak int
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader centres title between the brand and the wallet figures.
func RenderHeader(title string, st HeaderStats, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Lumi ✦")
	stats := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(fmt.Sprintf("Lv.%d", st.Level)),
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmt.Sprintf("🪙 %d", st.Coins)),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("🔥 %d", st.Streak)),
	}, "   ")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(brand), lipgloss.Width(center), lipgloss.Width(stats)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)

	row := brand + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + stats
	return bar.Width(width).Render(row)
}

// RenderFooter lists the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
