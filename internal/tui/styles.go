package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	offlineStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	syncingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	syncedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
)
