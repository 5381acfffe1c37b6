package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Warm and playful without shouting.
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#EC4899") // Pink
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#FAFAF9") // Warm white
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgCard    = lipgloss.Color("#292524") // Dark stone
	Border    = lipgloss.Color("#44403C") // Stone border
)

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
		Foreground(Secondary).
		Italic(true)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)
)
