package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/ui/theme"
)

// MascotVariant selects which Lumi art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default indigo
	MascotCelebrating                      // Gold, star eyes: today's plan is done
	MascotAlert                            // Orange, exclamation: mistakes piling up
)

// alertPending is the pending-mistake count that worries Lumi.
const alertPending = 5

const mascotIdle = `  ╭───╮
╭─┤◉ ◉├─╮
│ │ ▽ │ │
╰─┤✦✦✦├─╯
  ╰┬─┬╯`

const mascotCelebrating = `\ ╭───╮ /
╭─┤★ ★├─╮
│ │ ◡ │ │
╰─┤✦✦✦├─╯
  ╰┬─┬╯`

const mascotAlert = `  ╭───╮  !
╭─┤◉ ◉├─╮
│ │ ○ │ │
╰─┤✦✦✦├─╯
  ╰┬─┬╯`

// pickMascot chooses the variant for the dashboard state.
func pickMascot(planDone bool, pending int) MascotVariant {
	switch {
	case pending >= alertPending:
		return MascotAlert
	case planDone:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
