package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type footerState struct {
	Mode      string
	ModeInput string

	FileName string

	AxisLabel string
	Rejected  int

	Trial       int
	TotalTrials int

	StatusMessage string
	Legend        string
}

type footerStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	FileNameFG lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
}

func defaultFooterStyles() footerStyles {
	return footerStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		FileNameFG: lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

// renderFooter draws the control bar and the status bar, each exactly
// width cells wide.
func renderFooter(width int, st footerState, styles footerStyles) string {
	if width <= 0 {
		return ""
	}
	if st.Mode == "" {
		st.Mode = "NORMAL"
	}
	if st.Legend == "" {
		st.Legend = "(? help)"
	}
	st.Trial = max(st.Trial, 0)
	st.TotalTrials = max(st.TotalTrials, 0)

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func renderControlBar(width int, st footerState, styles footerStyles) string {
	gapW := 1
	bar := lipgloss.NewStyle().Background(styles.BarBG).Foreground(styles.TextFG)

	rightPlain := truncatePlain(fmt.Sprintf(" Trial %d/%d ", st.Trial, st.TotalTrials), width)
	rightW := runewidth.StringWidth(rightPlain)
	leftW := max(0, width-rightW)

	pillPlain := truncatePlain(" "+st.Mode+" ", leftW)
	pillW := runewidth.StringWidth(pillPlain)

	statusPlain := fmt.Sprintf("[%s] · [REJECTED: %d]", st.AxisLabel, st.Rejected)
	statusW := min(runewidth.StringWidth(statusPlain), max(0, leftW-pillW-2*gapW))
	statusPlain = truncatePlain(statusPlain, statusW)

	fileW := max(0, leftW-pillW-statusW-2*gapW)
	filePlain := fileSegment(fileW, st)

	pill := lipgloss.NewStyle().Background(styles.ModePillBG).Foreground(styles.ModePillFG).Render(pillPlain)
	file := bar.Foreground(styles.FileNameFG).Render(padRightPlain(filePlain, fileW))
	status := bar.Foreground(styles.DimFG).Render(statusPlain)

	used := pillW + fileW + statusW + 2*gapW
	gap := bar.Render(strings.Repeat(" ", gapW))
	filler := bar.Render(strings.Repeat(" ", max(0, leftW-used)))
	if fileW == 0 && statusW == 0 {
		gap = ""
		filler = bar.Render(strings.Repeat(" ", max(0, leftW-pillW)))
		return pill + filler + bar.Render(rightPlain)
	}
	return pill + gap + file + gap + status + filler + bar.Render(rightPlain)
}

func fileSegment(colW int, st footerState) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.FileName)
	if name == "" {
		name = "(no file)"
	}
	plain := truncatePlain("▸ "+name, colW)
	if input := strings.TrimSpace(st.ModeInput); input != "" {
		if remaining := colW - runewidth.StringWidth(plain); remaining > 0 {
			plain += truncatePlain(" ▸ "+input, remaining)
		}
	}
	return plain
}

func renderStatusBar(width int, st footerState, styles footerStyles) string {
	bar := lipgloss.NewStyle().Background(styles.StatusBG)

	legendPlain := truncatePlain(st.Legend, width)
	legendW := runewidth.StringWidth(legendPlain)
	leftW := max(0, width-legendW)

	msgPlain := padRightPlain(truncatePlain(st.StatusMessage, leftW), leftW)
	return bar.Foreground(styles.StatusFG).Render(msgPlain) + bar.Foreground(styles.LegendFG).Render(legendPlain)
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(s, w)
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}
