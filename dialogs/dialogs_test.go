package dialogs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func esc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestExportConfirmResolvesIntoDir(t *testing.T) {
	d := NewExportDialog("rat12 - marked.csv", "/data/out")
	_, cmd := d.Update(enter())
	assert.Equal(t, ExportConfirmedMsg{Path: filepath.Join("/data/out", "rat12 - marked.csv")}, run(t, cmd))
}

func TestExportKeepsAbsolutePath(t *testing.T) {
	d := NewExportDialog("/tmp/x.xlsx", "/data/out")
	_, cmd := d.Update(enter())
	assert.Equal(t, ExportConfirmedMsg{Path: "/tmp/x.xlsx"}, run(t, cmd))
}

func TestExportCancel(t *testing.T) {
	d := NewExportDialog("a.csv", "")
	_, cmd := d.Update(esc())
	assert.Equal(t, ExportCanceledMsg{}, run(t, cmd))
}

func TestOpenTypingAndExpandHome(t *testing.T) {
	prev := homeDir
	homeDir = func() (string, error) { return "/home/rat", nil }
	t.Cleanup(func() { homeDir = prev })

	d := NewOpenDialog("")
	for _, r := range "~/a.csv" {
		d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := d.Update(enter())
	assert.Equal(t, OpenConfirmedMsg{Path: "/home/rat/a.csv"}, run(t, cmd))
}

func TestOpenEmptyEnterDoesNothing(t *testing.T) {
	d := NewOpenDialog("")
	_, cmd := d.Update(enter())
	assert.Nil(t, cmd)

	_, cmd = d.Update(esc())
	assert.Equal(t, OpenCanceledMsg{}, run(t, cmd))
}

func TestHiddenPromptIgnoresInput(t *testing.T) {
	d := NewOpenDialog("a.csv")
	d.Hide()
	assert.False(t, d.IsVisible())
	_, cmd := d.Update(enter())
	assert.Nil(t, cmd)
	assert.Empty(t, d.View())
}

func TestHelpView(t *testing.T) {
	d := NewHelpDialog([]key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle status")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled()),
	})
	v := d.View()
	assert.Contains(t, v, "toggle status")
	assert.NotContains(t, v, "hidden")
	assert.Contains(t, v, "arrow keys")
	for _, l := range strings.Split(v, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), boxWidth+2)
	}

	d.Update(esc())
	assert.False(t, d.IsVisible())
	assert.Empty(t, d.View())
}

func TestOverlayFillsArea(t *testing.T) {
	out := Overlay(NewOpenDialog("a.csv"), 100, 30)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 30)
	assert.Contains(t, out, "Open: ")
	for _, l := range lines {
		assert.Equal(t, 100, lipgloss.Width(l))
	}
}
