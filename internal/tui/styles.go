package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Badge colours follow the attribute order of the character page.
const (
	ColorHeader  = lipgloss.Color("#FFE81F")
	ColorLabel   = lipgloss.Color("245")
	ColorValue   = lipgloss.Color("252")
	ColorSubtle  = lipgloss.Color("240")
	ColorBorder  = lipgloss.Color("238")
	ColorError   = lipgloss.Color("#E53E3E")
	ColorSpinner = lipgloss.Color("#4FD1C5")

	ColorGreen  = lipgloss.Color("#38A169")
	ColorPurple = lipgloss.Color("#805AD5")
	ColorBlue   = lipgloss.Color("#3182CE")
	ColorYellow = lipgloss.Color("#D69E2E")
	ColorRed    = lipgloss.Color("#E53E3E")
	ColorOrange = lipgloss.Color("#DD6B20")
	ColorTeal   = lipgloss.Color("#319795")

	ColorBadgeFG = lipgloss.Color("#1A202C")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared by all renderers.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue).MarginTop(1)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorLabel).Italic(true)

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)

	BadgeStyle = lipgloss.NewStyle().Foreground(ColorBadgeFG).Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorSubtle)
)
