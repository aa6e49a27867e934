package ui

import "github.com/charmbracelet/lipgloss"

// Help and listing styles use the base ANSI palette so they follow the
// user's terminal theme.
var (
	// TitleStyle section headers
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle usage lines and model IDs
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle dimmed descriptions
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
