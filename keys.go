package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit            key.Binding
	PrevTrial       key.Binding
	NextTrial       key.Binding
	FirstTrial      key.Binding
	LastTrial       key.Binding
	Toggle          key.Binding
	Jump            key.Binding
	Autoscale       key.Binding
	EditLimits      key.Binding
	OpenFile        key.Binding
	ExportToFile    key.Binding
	RemoveRejected  key.Binding
	SaveProgress    key.Binding
	RestoreProgress key.Binding
	CopyRejected    key.Binding
	TogglePanel     key.Binding
	OpenHelp        key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	PrevTrial: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous trial"),
	),
	NextTrial: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next trial"),
	),
	FirstTrial: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g/home", "first trial"),
	),
	LastTrial: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G/end", "last trial"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "accept / reject trial"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "go to trial number"),
	),
	Autoscale: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle autoscale"),
	),
	EditLimits: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "edit fixed Y limits"),
	),
	OpenFile: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open file"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export marked table"),
	),
	RemoveRejected: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "remove rejected trials"),
	),
	SaveProgress: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save progress"),
	),
	RestoreProgress: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restore progress"),
	),
	CopyRejected: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy rejected list"),
	),
	TogglePanel: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "show / hide rejected list"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.PrevTrial,
		k.NextTrial,
		k.FirstTrial,
		k.LastTrial,
		k.Toggle,
		k.Jump,
		k.Autoscale,
		k.EditLimits,
		k.OpenFile,
		k.ExportToFile,
		k.RemoveRejected,
		k.SaveProgress,
		k.RestoreProgress,
		k.CopyRejected,
		k.TogglePanel,
		k.Quit,
	}
}
