package tui

import "github.com/charmbracelet/lipgloss"

const (
	focusColor  = lipgloss.Color("#04B575")
	borderColor = lipgloss.Color("#626262")
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(focusColor).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(borderColor)

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)
)
