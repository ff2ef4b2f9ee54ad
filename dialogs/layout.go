package dialogs

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 60

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("252")).
	BorderBackground(lipgloss.Color("236")).
	Padding(1, 2).
	Width(boxWidth)

var homeDir = os.UserHomeDir

// Overlay centres a dialog over a dimmed width x height backdrop.
func Overlay(d Dialog, width, height int) string {
	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		d.View(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
	)
}
