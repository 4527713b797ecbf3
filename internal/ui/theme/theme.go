package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lumi/internal/subject"
)

// Color palette: deep space navy with neon accents.
var (
	Primary      = lipgloss.Color("#6366F1") // Indigo
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// SubjectColor returns the accent used for a subject's cards and tags.
func SubjectColor(s subject.Subject) color.Color {
	switch s {
	case subject.Math:
		return lipgloss.Color("#3B82F6")
	case subject.Chinese:
		return lipgloss.Color("#EF4444")
	case subject.English:
		return lipgloss.Color("#A855F7")
	default:
		return TextDim
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
