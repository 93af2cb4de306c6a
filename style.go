package galley

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("12")
	light  = lipgloss.Color("254")

	// StatusStyle renders the persistent status text.
	StatusStyle = lipgloss.NewStyle().
			Foreground(accent).
			Background(light)

	// FlashStyle renders transient flash text, inverted relative to
	// StatusStyle so it reads as a highlight.
	FlashStyle = lipgloss.NewStyle().
			Foreground(light).
			Background(accent)
)
