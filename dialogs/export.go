package dialogs

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/gpias-marker/logging"
)

type (
	ExportConfirmedMsg struct{ Path string }
	ExportCanceledMsg  struct{}
)

// Export asks where to write the annotated table. A name ending in .xlsx
// produces a workbook, anything else CSV.
type Export struct {
	prompt pathPrompt
}

// NewExportDialog proposes defaultName inside dir (or the working directory
// when dir is empty).
func NewExportDialog(defaultName, dir string) *Export {
	return &Export{prompt: newPathPrompt("Export as: ", defaultName, dir, "enter to export • esc to cancel")}
}

func (d *Export) Init() tea.Cmd { return d.prompt.input.Focus() }

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	cmd := d.prompt.update(msg,
		func(path string) tea.Msg {
			logging.Debugf("Export dialog confirmed %s", path)
			return ExportConfirmedMsg{Path: path}
		},
		ExportCanceledMsg{})
	return d, cmd
}

func (d *Export) View() string    { return d.prompt.view() }
func (d *Export) Show()           { d.prompt.show() }
func (d *Export) Hide()           { d.prompt.hide() }
func (d *Export) Focus() tea.Cmd  { return d.prompt.input.Focus() }
func (d *Export) Blur()           { d.prompt.input.Blur() }
func (d *Export) IsVisible() bool { return d.prompt.visible }
