package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/gpias-marker/clipboard"
	"github.com/andareed/gpias-marker/logging"
	"github.com/andareed/gpias-marker/trial"
)

// toggleCurrent flips the displayed trial. A journal failure is reported
// but the status change stands.
func (m *model) toggleCurrent() tea.Cmd {
	ordinal := m.session.Ordinal()
	st, err := m.session.Toggle()
	if st == "" {
		return m.startNotice("No data loaded", noticeWarn, noticeDuration)
	}
	m.refreshView()
	if err != nil {
		logging.Errorf("toggleCurrent: %v", err)
		return m.startNotice(fmt.Sprintf("Trial %d %s (journal: %v)", ordinal, st, err), noticeWarn, errorNoticeDuration)
	}
	kind := noticeSuccess
	if st == trial.Rejected {
		kind = noticeInfo
	}
	return m.startNotice(fmt.Sprintf("Trial %d %s", ordinal, st), kind, noticeDuration)
}

func (m *model) confirmRemoveRejected() tea.Cmd {
	if _, rejected := m.session.Table().StatusCounts(); rejected == 0 {
		return m.startNotice("No rejected trials to remove", noticeInfo, noticeDuration)
	}
	m.enterCommandMode(CmdRemove)
	return nil
}

func (m *model) handleRemoveCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.exitCommandMode()
		n := m.session.RemoveRejected()
		m.refreshView()
		return m, m.startNotice(
			fmt.Sprintf("Removed %d rejected trials, %d remain", n, m.session.Total()),
			noticeSuccess,
			noticeDuration,
		)
	case "n", "N":
		m.exitCommandMode()
		return m, nil
	}

	// Unhandled keys: stay in the prompt
	return m, nil
}

func (m *model) copyRejected() tea.Cmd {
	rejected := m.session.Rejected()
	if len(rejected) == 0 {
		return m.startNotice("No rejected trials to copy", noticeInfo, noticeDuration)
	}
	if err := clipboard.Copy(strings.Join(rejected, "\n")); err != nil {
		return m.errorNotice(err)
	}
	return m.startNotice(fmt.Sprintf("Copied %d rejected trials", len(rejected)), noticeSuccess, noticeDuration)
}
