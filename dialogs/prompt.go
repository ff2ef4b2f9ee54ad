package dialogs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pathPrompt is the text field shared by the file dialogs.
type pathPrompt struct {
	input   textinput.Model
	visible bool
	dir     string // bare file names resolve here when set
	hint    string
}

func newPathPrompt(prompt, value, dir, hint string) pathPrompt {
	ti := textinput.New()
	ti.Placeholder = value
	ti.Prompt = prompt
	ti.CharLimit = 1024
	ti.Width = 50
	if value != "" {
		ti.SetValue(value)
	}
	ti.Focus()
	return pathPrompt{input: ti, visible: true, dir: dir, hint: hint}
}

// resolve returns the entered path, or "" when nothing usable was typed.
func (p *pathPrompt) resolve() string {
	path := strings.TrimSpace(p.input.Value())
	if path == "" {
		path = p.input.Placeholder
	}
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := homeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if p.dir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(p.dir, path)
	}
	return path
}

// update handles enter and esc itself and passes other input to the field.
// confirmed and canceled build the messages sent back to the model.
func (p *pathPrompt) update(msg tea.Msg, confirmed func(string) tea.Msg, canceled tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			path := p.resolve()
			if path == "" {
				return nil
			}
			return func() tea.Msg { return confirmed(path) }
		case "esc":
			return func() tea.Msg { return canceled }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p pathPrompt) view() string {
	if !p.visible {
		return ""
	}
	help := lipgloss.NewStyle().Faint(true).Render(p.hint)
	return boxStyle.Render(fmt.Sprintf("%s\n\n%s", p.input.View(), help))
}

func (p *pathPrompt) show() tea.Cmd {
	p.visible = true
	return p.input.Focus()
}

func (p *pathPrompt) hide() {
	p.visible = false
	p.input.Blur()
}
