package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/andareed/gpias-marker/dialogs"
	"github.com/andareed/gpias-marker/logging"
	"github.com/andareed/gpias-marker/trial"
)

const footerHeight = 2

type model struct {
	session *trial.Session
	keys    Keymap
	ui      uiState

	activeDialog dialogs.Dialog
	panel        viewport.Model // rejected trials list

	ready          bool
	terminalWidth  int
	terminalHeight int

	initialPath string
	exportDir   string
}

func newModel(session *trial.Session, initialPath, exportDir string) *model {
	m := &model{
		session:     session,
		keys:        Keys,
		panel:       viewport.New(0, 0),
		initialPath: initialPath,
		exportDir:   exportDir,
	}
	m.ui.panelOpen = true
	m.ui.limits.minInput = initLimitsInput("min")
	m.ui.limits.maxInput = initLimitsInput("max")
	m.ui.limits.step = limitsStepDefault
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Infof("gpias-marker: Initialised")
	if m.initialPath != "" {
		return m.startLoad(m.initialPath)
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		m.refreshView()
		return m, nil

	case clearNoticeMsg:
		m.clearNotice(msg)
		return m, nil

	case fileLoadedMsg:
		return m, m.handleFileLoaded(msg)

	case dialogs.OpenConfirmedMsg:
		m.closeDialog()
		return m, m.startLoad(msg.Path)

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		return m, m.exportTo(msg.Path)

	case dialogs.OpenCanceledMsg, dialogs.ExportCanceledMsg:
		m.closeDialog()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// cursor blink and similar housekeeping
	if m.activeDialog != nil {
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		return m, cmd
	}
	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeDialog:
		return m.handleDialogKey(msg)
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeLimits:
		return m.handleLimitsKey(msg)
	}
	return m.handleViewModeKey(msg)
}

func (m *model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeDialog == nil {
		m.ui.mode = modeView
		return m, nil
	}
	d, cmd := m.activeDialog.Update(msg)
	m.activeDialog = d
	if !d.IsVisible() {
		m.closeDialog()
	}
	return m, cmd
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevTrial):
		m.prevTrial()
	case key.Matches(msg, m.keys.NextTrial):
		m.nextTrial()
	case key.Matches(msg, m.keys.FirstTrial):
		m.jumpToStart()
	case key.Matches(msg, m.keys.LastTrial):
		m.jumpToEnd()
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCurrent()
	case key.Matches(msg, m.keys.Jump):
		m.enterCommandMode(CommandFromPrefix(':'))
	case key.Matches(msg, m.keys.Autoscale):
		mode := m.session.ToggleAutoscale()
		cmd = m.startNotice("Autoscale "+onOff(mode == trial.AxisAuto), noticeInfo, noticeDuration)
	case key.Matches(msg, m.keys.EditLimits):
		m.openLimitsDrawer()
	case key.Matches(msg, m.keys.OpenFile):
		return m, m.openDialog(dialogs.NewOpenDialog(m.session.Source()))
	case key.Matches(msg, m.keys.ExportToFile):
		return m, m.openExportDialog()
	case key.Matches(msg, m.keys.RemoveRejected):
		cmd = m.confirmRemoveRejected()
	case key.Matches(msg, m.keys.SaveProgress):
		cmd = m.saveProgress()
	case key.Matches(msg, m.keys.RestoreProgress):
		cmd = m.restoreProgress()
	case key.Matches(msg, m.keys.CopyRejected):
		cmd = m.copyRejected()
	case key.Matches(msg, m.keys.TogglePanel):
		m.ui.panelOpen = !m.ui.panelOpen
	case key.Matches(msg, m.keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog(m.keys.Legend()))
	default:
		if m.ui.panelOpen {
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
	}
	m.refreshView()
	return m, cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// layout splits the terminal into the plot, the rejected panel and the
// footer. Sizes include borders.
type layout struct {
	contentW, mainH int
	plotW, panelW   int
	drawerH         int
}

func (m *model) layout() layout {
	l := layout{
		contentW: max(0, m.terminalWidth-appstyle.GetHorizontalFrameSize()),
	}
	contentH := max(0, m.terminalHeight-appstyle.GetVerticalFrameSize())
	if m.ui.limits.open {
		l.drawerH = limitsDrawerHeight
	}
	l.mainH = max(0, contentH-footerHeight-l.drawerH)
	if m.ui.panelOpen && l.contentW >= 2*rejectedPanelW {
		l.panelW = rejectedPanelW
	}
	l.plotW = l.contentW - l.panelW
	return l
}

// refreshView re-sizes the rejected panel and reloads its content.
func (m *model) refreshView() {
	if !m.ready {
		return
	}
	l := m.layout()
	innerW := max(0, l.panelW-panelStyle.GetHorizontalFrameSize())
	innerH := max(0, l.mainH-panelStyle.GetVerticalFrameSize()-1) // title line
	m.panel.Width = innerW
	m.panel.Height = innerH
	m.panel.SetContent(m.rejectedListContent(innerW))
}

func (m *model) rejectedListContent(width int) string {
	rejected := m.session.Rejected()
	if len(rejected) == 0 {
		return "none"
	}
	lines := make([]string, len(rejected))
	for i, d := range rejected {
		lines[i] = rejectedStyle.Render(wordwrap.String(d, max(1, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *model) rejectedTitle() string {
	_, n := m.session.Table().StatusCounts()
	return fmt.Sprintf("Rejected trials (%d)", n)
}
