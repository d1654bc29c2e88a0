package ux

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for human-readable command output.
var (
	// TitleStyle renders section headings
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// TaskStyle renders generated task names
	TaskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	// MutedStyle renders secondary details like file paths and setups
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
