package main

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/gpias-marker/dialogs"
	"github.com/andareed/gpias-marker/logging"
	"github.com/andareed/gpias-marker/trial"
)

// fileLoadedMsg carries a table read off the UI goroutine. The session is
// only swapped when it arrives in Update.
type fileLoadedMsg struct {
	path  string
	table *trial.Table
	err   error
}

func loadFileCmd(path string, trialLen int) tea.Cmd {
	return func() tea.Msg {
		t, err := trial.Load(path, trialLen)
		return fileLoadedMsg{path: path, table: t, err: err}
	}
}

func (m *model) startLoad(path string) tea.Cmd {
	m.ui.loading = path
	logging.Infof("Loading %s", path)
	return tea.Batch(
		loadFileCmd(path, m.session.Options().TrialLength),
		m.startNotice("Loading "+filepath.Base(path)+"…", noticeInfo, noticeDuration),
	)
}

func (m *model) handleFileLoaded(msg fileLoadedMsg) tea.Cmd {
	if msg.path != m.ui.loading {
		logging.Debugf("Dropping stale load of %s", msg.path)
		return nil
	}
	m.ui.loading = ""
	if msg.err != nil {
		logging.Errorf("Load failed: %v", msg.err)
		return m.errorNotice(msg.err)
	}
	m.session.Replace(msg.table, msg.path)
	m.refreshView()
	_, rejected := msg.table.StatusCounts()
	return m.startNotice(
		fmt.Sprintf("Loaded %s: %d trials, %d rejected", filepath.Base(msg.path), m.session.Total(), rejected),
		noticeSuccess,
		noticeDuration,
	)
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	m.ui.mode = modeDialog
	return d.Init()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
	m.ui.mode = modeView
}

func (m *model) defaultExportDir() string {
	if m.exportDir != "" {
		return m.exportDir
	}
	if src := m.session.Source(); src != "" {
		return filepath.Dir(src)
	}
	return ""
}

// openExportDialog needs a loaded file. A table emptied by removing every
// rejected trial still exports, as a header-only file.
func (m *model) openExportDialog() tea.Cmd {
	if m.session.Source() == "" {
		return m.startNotice("Nothing to export", noticeWarn, noticeDuration)
	}
	name := trial.DefaultExportName(m.session.Source())
	return m.openDialog(dialogs.NewExportDialog(name, m.defaultExportDir()))
}

// exportTo runs synchronously so the written file matches what is on screen.
func (m *model) exportTo(path string) tea.Cmd {
	if err := m.session.Export(path); err != nil {
		logging.Errorf("Export failed: %v", err)
		return m.errorNotice(err)
	}
	return m.startNotice("Exported to "+path, noticeSuccess, noticeDuration)
}

func (m *model) saveProgress() tea.Cmd {
	if m.session.Total() == 0 {
		return m.startNotice("Nothing to save", noticeWarn, noticeDuration)
	}
	path := trial.ProgressPath(m.session.Source())
	if err := m.session.SaveProgress(path); err != nil {
		return m.errorNotice(err)
	}
	return m.startNotice("Progress saved to "+filepath.Base(path), noticeSuccess, noticeDuration)
}

func (m *model) restoreProgress() tea.Cmd {
	if m.session.Total() == 0 {
		return m.startNotice("Load the data file before restoring progress", noticeWarn, noticeDuration)
	}
	path := trial.ProgressPath(m.session.Source())
	n, err := m.session.LoadProgress(path)
	var loadErr *trial.LoadError
	if errors.As(err, &loadErr) {
		return m.errorNotice(err)
	}
	m.refreshView()
	if err != nil {
		logging.Errorf("restoreProgress: %v", err)
		return m.startNotice(fmt.Sprintf("Restored %d trial statuses (journal: %v)", n, err), noticeWarn, errorNoticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Restored %d trial statuses", n), noticeSuccess, noticeDuration)
}
