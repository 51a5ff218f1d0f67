package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, calm enough for a counselling office
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	BgRisk    = lipgloss.Color("#3F1D1D") // Dark Red
	BgSafe    = lipgloss.Color("#14301F") // Dark Green
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Notice = lipgloss.NewStyle().
		Foreground(Accent)
)

// Panels
var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	RiskCard = lipgloss.NewStyle().
			Background(BgRisk).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Error).
			Padding(1, 2)

	SafeCard = lipgloss.NewStyle().
			Background(BgSafe).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Success).
			Padding(1, 2)

	Banner = lipgloss.NewStyle().
		Background(Accent).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Value = lipgloss.NewStyle().
		Foreground(Secondary)

	SelectedValue = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Error)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)
