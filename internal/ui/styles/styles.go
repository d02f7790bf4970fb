// Package styles provides shared lipgloss styles for the interactive
// prompts.
package styles

import "charm.land/lipgloss/v2"

// Colors used throughout the UI
var (
	// Primary is used for prompt titles (cyan/teal)
	Primary = lipgloss.Color("62")

	// Accent is the highlight color for selected items (pink)
	Accent = lipgloss.Color("212")

	// Muted is used for secondary text such as paths (gray)
	Muted = lipgloss.Color("240")
)

// Common styles
var (
	// TitleStyle renders prompt titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)
