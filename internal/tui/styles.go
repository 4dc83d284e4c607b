package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#2E86AB")
	ColorAccent  = lipgloss.Color("#F18F01")
	ColorSuccess = lipgloss.Color("#3BB273")
	ColorDanger  = lipgloss.Color("#E4572E")
	ColorMuted   = lipgloss.Color("#7A7A7A")
	ColorBorder  = lipgloss.Color("#4A4A4A")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Width(22).
			Foreground(ColorMuted)

	FocusedLabelStyle = LabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	HeadlinePositiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)

	HeadlineNeutralStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	PlanIDStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)
