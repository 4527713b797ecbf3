package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/plan"
	"github.com/abhisek/lumi/internal/ui/components"
	"github.com/abhisek/lumi/internal/ui/theme"
)

const arcadeTitleFull = ` ██╗     ██╗   ██╗███╗   ███╗██╗
 ██║     ██║   ██║████╗ ████║██║
 ██║     ██║   ██║██╔████╔██║██║
 ██║     ██║   ██║██║╚██╔╝██║██║
 ███████╗╚██████╔╝██║ ╚═╝ ██║██║
 ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝`

const arcadeTitleCompact = "L · U · M · I"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(art)
}

// renderStatsBar renders today's XP, plan and vault figures in a double
// border box at content width.
func renderStatsBar(stats plan.UserStats, prog plan.Progress, pending, cw int, compact bool) string {
	xpStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	planStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	vaultStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			xpStyle.Render(fmt.Sprintf("⚡%d/%d", stats.XPToday, stats.XPTarget)),
			planStyle.Render(fmt.Sprintf("✓%d/%d", prog.Done, prog.Total)),
			vaultText(pending, true, vaultStyle),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			xpStyle.Render(fmt.Sprintf("⚡ %d/%d XP", stats.XPToday, stats.XPTarget)),
			planStyle.Render(fmt.Sprintf("✓ %d/%d TASKS", prog.Done, prog.Total)),
			vaultText(pending, false, vaultStyle),
		)
	}
	bar := components.NewProgressBar("", stats.XPProgress(), true, cw-6).View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line + "\n" + bar)
}

func vaultText(pending int, compact bool, active lipgloss.Style) string {
	if pending == 0 {
		if compact {
			return theme.Dim.Render("✎0")
		}
		return theme.Dim.Render("✎ VAULT CLEAR")
	}
	if compact {
		return active.Render(fmt.Sprintf("✎%d", pending))
	}
	return active.Render(fmt.Sprintf("✎ %d MISTAKES", pending))
}

// renderLLMBanner notes that bundled content is served without a provider.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Offline mode: set an LLM API key for live plans, variants and chat")
}

// renderMascotBox renders the mascot and greeting centered at content width.
func renderMascotBox(variant MascotVariant, greeting string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant) + "\n" + theme.Hint.Render(greeting))
}
