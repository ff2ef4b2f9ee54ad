package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/gpias-marker/dialogs"
	"github.com/andareed/gpias-marker/trial"
)

const testTrialLen = 5

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// writeTrials writes n single-session trials of testTrialLen rows each.
// Every third trial is a "wav" stimulus, which loads as rejected.
func writeTrials(t *testing.T, n int) string {
	t.Helper()
	records := [][]string{{"Session", "TrialNo", "TrialIndex", "TrialName", "Time(ms)", "Encl 1"}}
	for no := 1; no <= n; no++ {
		name := "tone"
		if no%3 == 0 {
			name = "noise.wav"
		}
		for i := 0; i < testTrialLen; i++ {
			records = append(records, []string{
				"S1",
				strconv.Itoa(no),
				strconv.Itoa(no),
				name,
				strconv.Itoa(i * 100),
				strconv.FormatFloat(float64(no)+float64(i)*0.1, 'f', -1, 64),
			})
		}
	}
	path := filepath.Join(t.TempDir(), "trials.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, csv.NewWriter(f).WriteAll(records))
	require.NoError(t, f.Close())
	return path
}

func newTestModel(t *testing.T) *model {
	t.Helper()
	opts := trial.DefaultOptions()
	opts.TrialLength = testTrialLen
	m := newModel(trial.NewSession(opts), "", t.TempDir())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// loadInto drives a load the way the program does: startLoad, then the
// message the load command produces.
func loadInto(t *testing.T, m *model, path string) {
	t.Helper()
	m.startLoad(path)
	m.Update(loadFileCmd(path, testTrialLen)())
	require.Empty(t, m.ui.loading)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestNewModelDefaults(t *testing.T) {
	m := newModel(trial.NewSession(trial.DefaultOptions()), "", "")
	assert.Equal(t, modeView, m.ui.mode)
	assert.True(t, m.ui.panelOpen)
	assert.Nil(t, m.Init())
	assert.Equal(t, "loading...", m.View())
}

func TestInitStartsLoad(t *testing.T) {
	path := writeTrials(t, 2)
	m := newModel(trial.NewSession(trial.DefaultOptions()), path, "")
	require.NotNil(t, m.Init())
	assert.Equal(t, path, m.ui.loading)
	assert.Equal(t, "LOADING", m.footerMode())
}

func TestFileLoaded(t *testing.T) {
	m := newTestModel(t)
	path := writeTrials(t, 6)
	loadInto(t, m, path)

	assert.Equal(t, 6, m.session.Total())
	assert.Equal(t, 1, m.session.Ordinal())
	assert.Equal(t, path, m.session.Source())
	assert.Equal(t, noticeSuccess, m.ui.noticeType)
	assert.Contains(t, m.ui.noticeMsg, "6 trials, 2 rejected")
	assert.Equal(t, "Rejected trials (2)", m.rejectedTitle())
}

func TestFileLoadFailureKeepsState(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 3))

	missing := filepath.Join(t.TempDir(), "missing.csv")
	m.startLoad(missing)
	m.Update(loadFileCmd(missing, testTrialLen)())

	assert.Equal(t, 3, m.session.Total())
	assert.Equal(t, noticeError, m.ui.noticeType)
	assert.Contains(t, m.ui.noticeMsg, "missing.csv")
}

func TestStaleLoadDropped(t *testing.T) {
	m := newTestModel(t)
	first, second := writeTrials(t, 2), writeTrials(t, 4)

	m.startLoad(first)
	m.startLoad(second)
	m.Update(loadFileCmd(first, testTrialLen)())
	assert.Equal(t, 0, m.session.Total())
	assert.Equal(t, second, m.ui.loading)

	m.Update(loadFileCmd(second, testTrialLen)())
	assert.Equal(t, 4, m.session.Total())
}

func TestNavigationKeys(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 5))

	press(m, tea.KeyMsg{Type: tea.KeyRight}, keyRunes("l"))
	assert.Equal(t, 3, m.session.Ordinal())

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.session.Ordinal())

	press(m, keyRunes("G"))
	assert.Equal(t, 5, m.session.Ordinal())

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 5, m.session.Ordinal(), "stays on the last trial")

	press(m, keyRunes("g"))
	assert.Equal(t, 1, m.session.Ordinal())

	press(m, keyRunes("h"))
	assert.Equal(t, 1, m.session.Ordinal(), "stays on the first trial")
}

func TestToggleKey(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 4))

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, trial.Rejected, m.session.Frame().Status)
	assert.Equal(t, "Trial 1 Rejected", m.ui.noticeMsg)
	assert.Len(t, m.session.Rejected(), 2)

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, trial.Accepted, m.session.Frame().Status)
	assert.Len(t, m.session.Rejected(), 1)
}

func TestToggleWithoutData(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, noticeWarn, m.ui.noticeType)
	assert.Equal(t, "No data loaded", m.ui.noticeMsg)
}

func TestJumpCommand(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 12))

	press(m, keyRunes(":"))
	require.Equal(t, modeCommand, m.ui.mode)
	assert.Equal(t, "JUMP", m.footerMode())

	press(m, keyRunes("1"), keyRunes("x"), keyRunes("2"))
	assert.Equal(t, "12", m.ui.command.buf, "only digits are accepted")

	press(m, tea.KeyMsg{Type: tea.KeyBackspace}, keyRunes("0"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, 10, m.session.Ordinal())
}

func TestJumpOutOfRange(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 3))
	m.session.Goto(2)
	seq := m.ui.noticeSeq

	press(m, keyRunes(":"), keyRunes("9"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.session.Ordinal())
	assert.Equal(t, seq, m.ui.noticeSeq, "out-of-range jumps are ignored quietly")

	press(m, keyRunes(":"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Invalid trial number", m.ui.noticeMsg)

	press(m, keyRunes(":"), keyRunes("1"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, 2, m.session.Ordinal())
}

func TestRemoveRejectedConfirm(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 6))

	press(m, keyRunes("X"))
	require.Equal(t, modeCommand, m.ui.mode)
	assert.Equal(t, CmdRemove, m.ui.command.cmd)
	assert.Contains(t, m.activeCommandLine(), "remove 2 rejected trials?")

	press(m, keyRunes("n"))
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, 6, m.session.Total())

	press(m, keyRunes("X"), keyRunes("q"))
	assert.Equal(t, modeCommand, m.ui.mode, "other keys keep the prompt open")

	press(m, keyRunes("y"))
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, 4, m.session.Total())
	assert.Empty(t, m.session.Rejected())
	assert.Equal(t, "Removed 2 rejected trials, 4 remain", m.ui.noticeMsg)
}

func TestRemoveRejectedNothingToDo(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 2))

	press(m, keyRunes("X"))
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, "No rejected trials to remove", m.ui.noticeMsg)
}

func TestAutoscaleKey(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, trial.AxisFixed, m.session.Axis().Mode)

	press(m, keyRunes("a"))
	assert.Equal(t, trial.AxisAuto, m.session.Axis().Mode)
	assert.Equal(t, "Autoscale on", m.ui.noticeMsg)
	assert.Equal(t, "Y: auto", m.axisStatusLabel())

	press(m, keyRunes("a"))
	assert.Equal(t, trial.AxisFixed, m.session.Axis().Mode)
	assert.Equal(t, "Y: -0.5..1", m.axisStatusLabel())
}

func TestLimitsDrawerApply(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 2))

	press(m, keyRunes("y"))
	require.Equal(t, modeLimits, m.ui.mode)
	assert.Equal(t, "LIMITS", m.footerMode())
	assert.Equal(t, "-0.5", m.ui.limits.minInput.Value())

	m.ui.limits.minInput.SetValue("-2")
	m.ui.limits.maxInput.SetValue("3.5")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeView, m.ui.mode)
	assert.False(t, m.ui.limits.open)
	assert.Equal(t, trial.Limits{Min: -2, Max: 3.5}, m.session.Axis().Fixed)
	assert.Equal(t, trial.AxisFixed, m.session.Axis().Mode)
	assert.Equal(t, "Y limits set to -2..3.5", m.ui.noticeMsg)
}

func TestLimitsDrawerRejectsBadInput(t *testing.T) {
	m := newTestModel(t)
	before := m.session.Axis().Fixed

	press(m, keyRunes("y"))
	m.ui.limits.minInput.SetValue("abc")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeLimits, m.ui.mode)
	assert.True(t, m.ui.limits.open)
	assert.Contains(t, m.ui.limits.errorMsg, "lower limit")
	assert.Equal(t, before, m.session.Axis().Fixed)

	m.ui.limits.minInput.SetValue("2")
	m.ui.limits.maxInput.SetValue("1")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.ui.limits.errorMsg, "below upper limit")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, before, m.session.Axis().Fixed)
}

func TestLimitsDrawerScaleRow(t *testing.T) {
	m := newTestModel(t)

	press(m, keyRunes("y"), tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, limitsFocusScale, m.ui.limits.focus)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, trial.Limits{Min: -0.4, Max: 1.1}, m.ui.limits.draft)

	press(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.Equal(t, trial.Limits{Min: -0.5, Max: 1.2}, m.ui.limits.draft)
	assert.Equal(t, "-0.5", m.ui.limits.minInput.Value())
	assert.Equal(t, "1.2", m.ui.limits.maxInput.Value())

	press(m, keyRunes("+"))
	assert.InDelta(t, 0.25, m.limitsStep(), 1e-9)

	press(m, keyRunes("r"))
	assert.Equal(t, trial.Limits{Min: -0.5, Max: 1}, m.ui.limits.draft)

	for i := 0; i < 10; i++ {
		press(m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	}
	assert.Equal(t, "Range cannot shrink further", m.ui.limits.errorMsg)
	assert.Less(t, m.ui.limits.draft.Min, m.ui.limits.draft.Max)
}

func TestExportDialogFlow(t *testing.T) {
	m := newTestModel(t)
	path := writeTrials(t, 3)
	loadInto(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	press(m, keyRunes("e"))
	require.Equal(t, modeDialog, m.ui.mode)
	require.NotNil(t, m.activeDialog)
	assert.Contains(t, m.View(), "Export as:")

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	confirmed, ok := msg.(dialogs.ExportConfirmedMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(m.exportDir, "trials - marked.csv"), confirmed.Path)

	m.Update(msg)
	assert.Equal(t, modeView, m.ui.mode)
	assert.Nil(t, m.activeDialog)
	assert.Equal(t, noticeSuccess, m.ui.noticeType)

	tbl, err := trial.Load(confirmed.Path, testTrialLen)
	require.NoError(t, err)
	_, rejected := tbl.StatusCounts()
	assert.Equal(t, 2, rejected)
}

func TestExportNothingLoaded(t *testing.T) {
	m := newTestModel(t)
	press(m, keyRunes("e"))
	assert.Equal(t, modeView, m.ui.mode)
	assert.Equal(t, "Nothing to export", m.ui.noticeMsg)
}

func TestExportAfterRemovingEveryTrial(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 3))
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	press(m, space, keyRunes("l"), space)
	press(m, keyRunes("X"), keyRunes("y"))
	require.Equal(t, 0, m.session.Total())

	press(m, keyRunes("e"))
	require.Equal(t, modeDialog, m.ui.mode)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)
	assert.Equal(t, noticeSuccess, m.ui.noticeType)

	path := msg.(dialogs.ExportConfirmedMsg).Path
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Session,TrialNo,TrialIndex,TrialName,Time(ms),Encl 1,Status\n", string(data))

	tbl, err := trial.Load(path, testTrialLen)
	require.NoError(t, err)
	assert.True(t, tbl.Empty())
}

func TestOpenDialogCancel(t *testing.T) {
	m := newTestModel(t)
	press(m, keyRunes("o"))
	require.Equal(t, modeDialog, m.ui.mode)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, modeView, m.ui.mode)
	assert.Nil(t, m.activeDialog)
}

func TestHelpDialog(t *testing.T) {
	m := newTestModel(t)
	press(m, keyRunes("?"))
	require.Equal(t, modeDialog, m.ui.mode)
	assert.Contains(t, m.View(), "accept / reject trial")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeView, m.ui.mode)
}

func TestProgressSaveRestore(t *testing.T) {
	m := newTestModel(t)
	press(m, keyRunes("s"))
	assert.Equal(t, "Nothing to save", m.ui.noticeMsg)

	path := writeTrials(t, 4)
	loadInto(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, keyRunes("s"))
	require.Equal(t, noticeSuccess, m.ui.noticeType)
	require.FileExists(t, trial.ProgressPath(path))

	loadInto(t, m, path)
	assert.Len(t, m.session.Rejected(), 1)

	press(m, keyRunes("r"))
	assert.Equal(t, "Restored 4 trial statuses", m.ui.noticeMsg)
	assert.Len(t, m.session.Rejected(), 2)
}

func TestPanelToggle(t *testing.T) {
	m := newTestModel(t)
	require.Positive(t, m.layout().panelW)

	press(m, keyRunes("v"))
	assert.False(t, m.ui.panelOpen)
	assert.Zero(t, m.layout().panelW)
	assert.Equal(t, m.layout().contentW, m.layout().plotW)
}

func TestNoticeClearedBySequence(t *testing.T) {
	m := newTestModel(t)
	m.startNotice("first", noticeInfo, noticeDuration)
	m.startNotice("second", noticeInfo, noticeDuration)

	m.Update(clearNoticeMsg{id: 1})
	assert.Equal(t, "second", m.ui.noticeMsg, "an older timer must not clear a newer notice")

	m.Update(clearNoticeMsg{id: 2})
	assert.Empty(t, m.ui.noticeMsg)
}

func TestViewFitsTerminal(t *testing.T) {
	m := newTestModel(t)
	loadInto(t, m, writeTrials(t, 3))

	for _, open := range []bool{false, true} {
		if open {
			press(m, keyRunes("y"))
		}
		out := m.View()
		lines := strings.Split(out, "\n")
		assert.LessOrEqual(t, len(lines), 40)
		for i, line := range lines {
			assert.LessOrEqual(t, lipgloss.Width(line), 120, "line %d", i)
		}
		assert.Contains(t, out, "S1 - No. 1 - tone")
		assert.Contains(t, out, "Trial 1/3")
	}
}

func TestFooterWidth(t *testing.T) {
	st := footerState{
		Mode:          "NORMAL",
		FileName:      strings.Repeat("very-long-name/", 20) + "trials.csv",
		AxisLabel:     "Y: auto",
		Rejected:      12,
		Trial:         3,
		TotalTrials:   480,
		StatusMessage: strings.Repeat("notice ", 40),
		Legend:        legend,
	}
	for _, w := range []int{20, 60, 116} {
		out := renderFooter(w, st, defaultFooterStyles())
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Equal(t, w, lipgloss.Width(line), "width %d", w)
		}
	}
}
