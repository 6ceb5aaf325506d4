package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/theme"
)

// Styles used by the browse view
var (
	faintStyle  = theme.DefaultTheme.Muted
	headerStyle = theme.DefaultTheme.Highlight
)

var detailsStyle = lipgloss.NewStyle().
	Padding(0, 1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.DefaultTheme.Colors.MutedText)
