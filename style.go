package main

import "github.com/charmbracelet/lipgloss"

const (
	panelBorderColor  = "240"
	panelTitleFGColor = "#e0e0e0"
	rejectedFGColor   = "#d75f5f"
	rejectedPanelW    = 38
)

var (
	appstyle = lipgloss.NewStyle().Margin(1, 2)

	plotStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(panelBorderColor))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, true, true, false).
			BorderForeground(lipgloss.Color(panelBorderColor)).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(panelTitleFGColor))
	rejectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(rejectedFGColor))

	limitsArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0).BorderLeft(true)

	focusedScaleStyle = lipgloss.NewStyle().Reverse(true)
)
