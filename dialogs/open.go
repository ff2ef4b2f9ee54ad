package dialogs

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/gpias-marker/logging"
)

type (
	OpenConfirmedMsg struct{ Path string }
	OpenCanceledMsg  struct{}
)

// Open asks for a trial table to load: CSV, optionally gzip, bzip2 or xz
// compressed, or an .xlsx workbook.
type Open struct {
	prompt pathPrompt
}

// NewOpenDialog starts with current, usually the file already loaded.
func NewOpenDialog(current string) *Open {
	return &Open{prompt: newPathPrompt("Open: ", current, "", "enter to load • esc to cancel")}
}

func (d *Open) Init() tea.Cmd { return d.prompt.input.Focus() }

func (d *Open) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	cmd := d.prompt.update(msg,
		func(path string) tea.Msg {
			logging.Debugf("Open dialog confirmed %s", path)
			return OpenConfirmedMsg{Path: path}
		},
		OpenCanceledMsg{})
	return d, cmd
}

func (d *Open) View() string    { return d.prompt.view() }
func (d *Open) Show()           { d.prompt.show() }
func (d *Open) Hide()           { d.prompt.hide() }
func (d *Open) Focus() tea.Cmd  { return d.prompt.input.Focus() }
func (d *Open) Blur()           { d.prompt.input.Blur() }
func (d *Open) IsVisible() bool { return d.prompt.visible }
