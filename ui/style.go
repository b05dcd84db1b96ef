package ui

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for command output and the browse TUI.
var (
	Title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	Success = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	Failure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4BF75"))
	Help     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
