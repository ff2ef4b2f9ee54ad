package main

type mode int

const (
	modeView mode = iota
	modeCommand
	modeLimits
	modeDialog
)

type uiState struct {
	mode       mode
	command    CommandInput
	limits     limitsUI
	panelOpen  bool
	loading    string // path being read, empty when idle
	noticeMsg  string
	noticeType noticeKind
	noticeSeq  int
}
