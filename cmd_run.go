package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) runCommand() tea.Cmd {
	switch m.ui.command.cmd {
	case CmdJump:
		n, err := strconv.Atoi(strings.TrimSpace(m.ui.command.buf))
		if err != nil {
			return m.startNotice("Invalid trial number", noticeWarn, noticeDuration)
		}
		return m.jumpToTrial(n)
	}
	return nil
}

func (m *model) enterCommandMode(cmd Command) {
	m.ui.command = CommandInput{cmd: cmd}
	m.ui.mode = modeCommand
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// universal cancel
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		return m, nil
	}

	// constrained command: remove confirmation
	if m.ui.command.cmd == CmdRemove {
		return m.handleRemoveCommandKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		cmd := m.runCommand()
		m.exitCommandMode()
		m.refreshView()
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if len(m.ui.command.buf) > 0 {
			m.ui.command.buf = m.ui.command.buf[:len(m.ui.command.buf)-1]
		}
		return m, nil
	}

	// trial numbers only
	if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
		m.ui.command.buf += string(msg.Runes[0])
	}
	return m, nil
}
