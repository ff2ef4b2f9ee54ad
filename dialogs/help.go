package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Instructions is the short how-to shown above the key list.
const Instructions = "Use the arrow keys to move between trials and space to " +
	"flip the current trial between Accepted and Rejected. Trials whose name " +
	"contains \"wav\" start out rejected. Press X to drop every rejected trial, " +
	"e to export the marked table and s to save your progress for later."

// Help lists the key bindings under the instructions.
type Help struct {
	visible  bool
	bindings []key.Binding
}

func (d *Help) Init() tea.Cmd { return nil }

// NewHelpDialog creates a visible help dialog for bindings.
func NewHelpDialog(bindings []key.Binding) *Help {
	return &Help{visible: true, bindings: bindings}
}

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
		}
	}
	return d, nil
}

func (d *Help) View() string {
	if !d.visible {
		return ""
	}

	// Padding and border eat into the box width.
	textWidth := boxWidth - boxStyle.GetHorizontalFrameSize()
	intro := wordwrap.String(Instructions, textWidth)

	var lines []string
	for _, b := range d.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-12s %s", h.Key, h.Desc))
	}

	hint := lipgloss.NewStyle().Faint(true).Render("enter/esc to return")
	content := fmt.Sprintf("%s\n\n%s\n\n%s", intro, strings.Join(lines, "\n"), hint)
	return boxStyle.Render(content)
}

func (d *Help) Show()           { d.visible = true }
func (d *Help) Hide()           { d.visible = false }
func (d *Help) Focus() tea.Cmd  { return nil }
func (d *Help) Blur()           {}
func (d *Help) IsVisible() bool { return d.visible }
