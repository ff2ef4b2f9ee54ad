package main

import "fmt"

type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdRemove
)

type CommandInput struct {
	cmd Command
	buf string
}

func CommandFromPrefix(r rune) Command {
	switch r {
	case ':':
		return CmdJump
	default:
		return CmdNone
	}
}

func (m *model) commandBadge(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "[JUMP]"
	case CmdRemove:
		return "[REMOVE]"
	default:
		return "[NORMAL]"
	}
}

func (m *model) commandPrompt(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "trial: "
	case CmdRemove:
		_, rejected := m.session.Table().StatusCounts()
		return fmt.Sprintf("remove %d rejected trials? (y/n) ", rejected)
	default:
		return ""
	}
}

func (m *model) commandHintsLine(cmd Command) string {
	switch cmd {
	case CmdRemove:
		return "y: remove   n/esc: keep"
	default:
		return "enter: apply   esc: cancel"
	}
}

// activeCommandLine returns the command prompt text for the footer status line.
func (m *model) activeCommandLine() string {
	badge := m.commandBadge(m.ui.command.cmd)
	prompt := m.commandPrompt(m.ui.command.cmd)
	return badge + " " + prompt + m.ui.command.buf
}
