package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/gpias-marker/logging"
)

func (m *model) nextTrial() {
	m.session.Next()
	logging.Debugf("nextTrial: now %d/%d", m.session.Ordinal(), m.session.Total())
}

func (m *model) prevTrial() {
	m.session.Prev()
	logging.Debugf("prevTrial: now %d/%d", m.session.Ordinal(), m.session.Total())
}

func (m *model) jumpToStart() {
	if m.session.Total() == 0 {
		return
	}
	m.session.Goto(1)
}

func (m *model) jumpToEnd() {
	if m.session.Total() == 0 {
		return
	}
	m.session.Goto(m.session.Total())
}

// jumpToTrial moves to trial n. Out-of-range numbers are ignored without a
// notice; the session logs them.
func (m *model) jumpToTrial(n int) tea.Cmd {
	if m.session.Total() == 0 {
		return m.startNotice("No data loaded", noticeWarn, noticeDuration)
	}
	m.session.Goto(n)
	return nil
}
