package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/andareed/gpias-marker/logging"
	"github.com/andareed/gpias-marker/trial"
)

func (m *model) openLimitsDrawer() {
	lu := &m.ui.limits
	lu.open = true
	lu.errorMsg = ""
	lu.orig = m.session.Axis().Fixed
	lu.draft = lu.orig
	lu.step = limitsStepDefault

	m.updateLimitsInputsFromDraft()
	m.setLimitsFocus(limitsFocusMin)
	m.ui.mode = modeLimits
}

func (m *model) closeLimitsDrawer() {
	m.ui.limits.open = false
	m.ui.limits.errorMsg = ""
	m.setLimitsFocus(limitsFocusScale)
	m.ui.mode = modeView
}

func (m *model) handleLimitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lu := &m.ui.limits

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeLimitsDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.applyLimitsFromInputs()
	case msg.Type == tea.KeyTab:
		m.setLimitsFocus((lu.focus + 1) % 3)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setLimitsFocus((lu.focus + 2) % 3)
		return m, nil
	case lu.focus == limitsFocusScale && msg.String() == "r":
		lu.draft = lu.orig
		lu.errorMsg = ""
		m.updateLimitsInputsFromDraft()
		return m, nil
	case lu.focus == limitsFocusScale && (msg.Type == tea.KeyDown || msg.Type == tea.KeyLeft):
		m.shiftLimits(-m.limitsStep())
		return m, nil
	case lu.focus == limitsFocusScale && (msg.Type == tea.KeyUp || msg.Type == tea.KeyRight):
		m.shiftLimits(m.limitsStep())
		return m, nil
	case lu.focus == limitsFocusScale && msg.Type == tea.KeyShiftRight:
		m.expandLimits(m.limitsStep())
		return m, nil
	case lu.focus == limitsFocusScale && msg.Type == tea.KeyShiftLeft:
		m.expandLimits(-m.limitsStep())
		return m, nil
	case lu.focus == limitsFocusScale && msg.String() == "-":
		m.adjustLimitsStep(false)
		return m, nil
	case lu.focus == limitsFocusScale && (msg.String() == "+" || msg.String() == "="):
		m.adjustLimitsStep(true)
		return m, nil
	}

	var cmd tea.Cmd
	switch lu.focus {
	case limitsFocusMin:
		lu.minInput, cmd = lu.minInput.Update(msg)
	case limitsFocusMax:
		lu.maxInput, cmd = lu.maxInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setLimitsFocus(focus int) {
	lu := &m.ui.limits
	lu.focus = focus
	switch focus {
	case limitsFocusMin:
		lu.minInput.Focus()
		lu.maxInput.Blur()
	case limitsFocusMax:
		lu.minInput.Blur()
		lu.maxInput.Focus()
	default:
		lu.minInput.Blur()
		lu.maxInput.Blur()
	}
}

func formatLimit(v float64) string {
	return strconv.FormatFloat(roundLimit(v), 'f', -1, 64)
}

func roundLimit(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func (m *model) updateLimitsInputsFromDraft() {
	lu := &m.ui.limits
	lu.minInput.SetValue(formatLimit(lu.draft.Min))
	lu.maxInput.SetValue(formatLimit(lu.draft.Max))
}

// syncDraftFromInputs picks up whatever parses; bad text is reported on apply.
func (m *model) syncDraftFromInputs() {
	lu := &m.ui.limits
	if v, err := strconv.ParseFloat(strings.TrimSpace(lu.minInput.Value()), 64); err == nil {
		lu.draft.Min = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(lu.maxInput.Value()), 64); err == nil {
		lu.draft.Max = v
	}
}

// applyLimitsFromInputs validates the text fields and, if they parse,
// installs them as the fixed limits. On error the drawer stays open.
func (m *model) applyLimitsFromInputs() tea.Cmd {
	lu := &m.ui.limits
	lu.errorMsg = ""

	if err := m.session.SetFixedLimits(lu.minInput.Value(), lu.maxInput.Value()); err != nil {
		lu.errorMsg = err.Error()
		logging.Warnf("applyLimits: %v", err)
		return nil
	}
	applied := m.session.Axis()
	m.closeLimitsDrawer()
	msg := "Y limits set to " + applied.Fixed.String()
	if applied.Mode == trial.AxisAuto {
		msg += " (autoscale is on)"
	}
	return m.startNotice(msg, noticeSuccess, noticeDuration)
}

func (m *model) shiftLimits(delta float64) {
	lu := &m.ui.limits
	lu.errorMsg = ""
	m.syncDraftFromInputs()
	lu.draft = trial.Limits{Min: roundLimit(lu.draft.Min + delta), Max: roundLimit(lu.draft.Max + delta)}
	m.updateLimitsInputsFromDraft()
}

// expandLimits widens (delta > 0) or narrows the draft about its centre.
// Narrowing stops before the range would collapse.
func (m *model) expandLimits(delta float64) {
	lu := &m.ui.limits
	lu.errorMsg = ""
	m.syncDraftFromInputs()
	next := trial.Limits{Min: roundLimit(lu.draft.Min - delta), Max: roundLimit(lu.draft.Max + delta)}
	if next.Min >= next.Max {
		lu.errorMsg = "Range cannot shrink further"
		return
	}
	lu.draft = next
	m.updateLimitsInputsFromDraft()
}

func (m *model) limitsStep() float64 {
	i := m.ui.limits.step
	if i < 0 || i >= len(limitsSteps) {
		return limitsSteps[limitsStepDefault]
	}
	return limitsSteps[i]
}

func (m *model) adjustLimitsStep(increase bool) {
	i := m.ui.limits.step
	if increase {
		i++
	} else {
		i--
	}
	m.ui.limits.step = max(0, min(i, len(limitsSteps)-1))
}

func (m *model) limitsDrawerView(width int) string {
	lu := &m.ui.limits
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth)

	minLine := fmt.Sprintf("Y min: %s", lu.minInput.View())
	maxLine := fmt.Sprintf("Y max: %s", lu.maxInput.View())
	scaleLine := m.limitsScaleLine(innerWidth)
	if lu.focus == limitsFocusScale {
		scaleLine = focusedScaleStyle.Render(scaleLine)
	}
	helpLine := fmt.Sprintf("tab: next  enter: apply  esc: cancel  scale row: ←/→ shift %g  shift+←/→ widen/narrow  -/+ step  r revert",
		m.limitsStep(),
	)
	errorLine := ""
	if lu.errorMsg != "" {
		errorLine = "Error: " + lu.errorMsg
	}

	lines := []string{
		lineStyle.Render(minLine),
		lineStyle.Render(maxLine),
		lineStyle.Render(scaleLine),
		lineStyle.Render(helpLine),
		lineStyle.Render(errorLine),
	}
	return limitsArea.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

// limitsScaleLine draws the current trial's value range ('=') against the
// draft limits ('[' and ']') on a shared scale.
func (m *model) limitsScaleLine(width int) string {
	f := m.session.Frame()
	draft := m.ui.limits.draft
	if f.Empty || len(f.Values) == 0 {
		return fmt.Sprintf("Scale: %s (no data)", draft)
	}

	lo, hi := floats.Min(f.Values), floats.Max(f.Values)
	scaleMin, scaleMax := math.Min(lo, draft.Min), math.Max(hi, draft.Max)
	minLabel, maxLabel := formatLimit(scaleMin), formatLimit(scaleMax)
	padding := 2
	barWidth := width - len(minLabel) - len(maxLabel) - padding*2
	span := scaleMax - scaleMin
	if barWidth < 10 || span <= 0 {
		return fmt.Sprintf("Data: %s..%s  Limits: %s", formatLimit(lo), formatLimit(hi), draft)
	}

	pos := func(v float64) int {
		p := int(float64(barWidth-1) * (v - scaleMin) / span)
		return max(0, min(p, barWidth-1))
	}
	bar := []rune(strings.Repeat("-", barWidth))
	for i := pos(lo); i <= pos(hi); i++ {
		bar[i] = '='
	}
	bar[pos(draft.Min)] = '['
	bar[pos(draft.Max)] = ']'

	return fmt.Sprintf("%s  %s  %s", minLabel, string(bar), maxLabel)
}

func (m *model) axisStatusLabel() string {
	ax := m.session.Axis()
	if ax.Mode == trial.AxisAuto {
		return "Y: auto"
	}
	return "Y: " + ax.Fixed.String()
}
