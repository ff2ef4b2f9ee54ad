package main

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/andareed/gpias-marker/trial"
)

const (
	limitsFocusMin = iota
	limitsFocusMax
	limitsFocusScale
)

const (
	limitsDrawerContentHeight = 5
	limitsDrawerHeight        = limitsDrawerContentHeight + 2
	limitsInputWidth          = 12
)

// limitsSteps are the nudge sizes offered on the scale row.
var limitsSteps = []float64{0.05, 0.1, 0.25, 0.5, 1}

const limitsStepDefault = 1 // index into limitsSteps

type limitsUI struct {
	open     bool
	focus    int
	minInput textinput.Model
	maxInput textinput.Model
	errorMsg string
	draft    trial.Limits
	orig     trial.Limits
	step     int
}

func initLimitsInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 24
	ti.Width = limitsInputWidth
	ti.Prompt = ""
	return ti
}
