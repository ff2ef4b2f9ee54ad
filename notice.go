package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type clearNoticeMsg struct{ id int }

type noticeKind string

const (
	noticeInfo    noticeKind = "info"
	noticeSuccess noticeKind = "success"
	noticeWarn    noticeKind = "warn"
	noticeError   noticeKind = "error"
)

const (
	noticeDuration      = 2 * time.Second
	errorNoticeDuration = 5 * time.Second
)

func noticeText(msg string, kind noticeKind) string {
	if msg == "" {
		return ""
	}
	var icon string
	switch kind {
	case noticeInfo:
		icon = "ℹ"
	case noticeSuccess:
		icon = "✓"
	case noticeWarn:
		icon = "!"
	case noticeError:
		icon = "×"
	}
	if icon == "" {
		return msg
	}
	return icon + " " + msg
}

func (m *model) startNotice(msg string, kind noticeKind, d time.Duration) tea.Cmd {
	m.ui.noticeMsg = msg
	m.ui.noticeType = kind

	// bump sequence to invalidate older timers
	m.ui.noticeSeq++
	id := m.ui.noticeSeq

	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m *model) errorNotice(err error) tea.Cmd {
	return m.startNotice(err.Error(), noticeError, errorNoticeDuration)
}

func (m *model) clearNotice(msg clearNoticeMsg) {
	if msg.id == m.ui.noticeSeq {
		m.ui.noticeMsg = ""
		m.ui.noticeType = ""
	}
}
