// Package chart draws a trial frame as a text plot: a status header, the
// median-centred Encl 1 trace against Y labels, the shaded reference
// interval and a time axis.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/floats"

	"github.com/andareed/gpias-marker/trial"
)

const (
	headerLines = 2
	axisLines   = 2
	minPlotRows = 3
	minPlotCols = 8

	pointGlyph = "•"
	spanGlyph  = "│"
	zeroGlyph  = "┈"
)

var (
	acceptedTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	rejectedTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	identStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	placeholder   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	axisStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	traceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff"))
	zeroStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	shadeBG       = lipgloss.Color("#3a3a3a")
)

type cellKind int

const (
	cellBlank cellKind = iota
	cellZero
	cellPoint
	cellSpan
)

func (k cellKind) glyph() string {
	switch k {
	case cellZero:
		return zeroGlyph
	case cellPoint:
		return pointGlyph
	case cellSpan:
		return spanGlyph
	}
	return " "
}

func (k cellKind) style(shaded bool) lipgloss.Style {
	var s lipgloss.Style
	switch k {
	case cellZero:
		s = zeroStyle
	case cellPoint, cellSpan:
		s = traceStyle
	default:
		s = lipgloss.NewStyle()
	}
	if shaded {
		s = s.Background(shadeBG)
	}
	return s
}

// Render draws f into exactly height lines of width cells. An empty frame,
// or a size too small to plot in, shows a centred placeholder instead.
func Render(f trial.Frame, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := height - headerLines - axisLines
	if f.Empty || rows < minPlotRows || width < minPlotCols*2 {
		text := f.Title
		if !f.Empty {
			text = "window too small"
		}
		text = runewidth.Truncate(text, width, "…")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, placeholder.Render(text))
	}

	labels, labelW := yLabels(f.Bounds, rows)
	cols := width - labelW - 1

	var b strings.Builder
	b.WriteString(fit(center(f.Title, width), width, titleStyle(f.Status)))
	b.WriteByte('\n')
	b.WriteString(fit(center(f.Identifier, width), width, identStyle))

	grid := plot(f, rows, cols)
	shaded := shadedColumns(f, cols)
	for r := 0; r < rows; r++ {
		b.WriteByte('\n')
		tick := "│"
		if labels[r] != "" {
			tick = "┤"
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s%s", labelW, labels[r], tick)))
		b.WriteString(renderRow(grid[r], shaded))
	}

	b.WriteByte('\n')
	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelW) + "└" + strings.Repeat("─", cols)))
	b.WriteByte('\n')
	b.WriteString(fit(xLabels(f.Times, labelW, cols), width, axisStyle))
	return b.String()
}

func titleStyle(s trial.Status) lipgloss.Style {
	if s == trial.Rejected {
		return rejectedTitle
	}
	return acceptedTitle
}

// plot rasterises the trace. Each column covers an equal slice of the time
// range and is drawn as the span of values falling in it, joined to the
// previous column's last value so the trace stays connected.
func plot(f trial.Frame, rows, cols int) [][]cellKind {
	grid := make([][]cellKind, rows)
	for r := range grid {
		grid[r] = make([]cellKind, cols)
	}
	if zr, ok := rowOf(0, f.Bounds, rows); ok {
		for c := range grid[zr] {
			grid[zr][c] = cellZero
		}
	}

	tmin, tmax := timeRange(f.Times)
	prev := -1
	for c, idx := range columnSamples(f.Times, tmin, tmax, cols) {
		if len(idx) == 0 {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, i := range idx {
			lo = math.Min(lo, f.Values[i])
			hi = math.Max(hi, f.Values[i])
		}
		if prev >= 0 {
			lo = math.Min(lo, f.Values[prev])
			hi = math.Max(hi, f.Values[prev])
		}
		prev = idx[len(idx)-1]

		top := clampRow(f.Bounds.Max-hi, f.Bounds, rows)
		bottom := clampRow(f.Bounds.Max-lo, f.Bounds, rows)
		if hi < f.Bounds.Min || lo > f.Bounds.Max {
			continue
		}
		if top == bottom {
			grid[top][c] = cellPoint
			continue
		}
		for r := top; r <= bottom; r++ {
			grid[r][c] = cellSpan
		}
	}
	return grid
}

func columnSamples(times []float64, tmin, tmax float64, cols int) [][]int {
	out := make([][]int, cols)
	span := tmax - tmin
	for i, t := range times {
		c := 0
		if span > 0 {
			c = int((t - tmin) / span * float64(cols))
		}
		c = max(0, min(c, cols-1))
		out[c] = append(out[c], i)
	}
	return out
}

func shadedColumns(f trial.Frame, cols int) []bool {
	out := make([]bool, cols)
	tmin, tmax := timeRange(f.Times)
	if f.Highlight.End < f.Highlight.Start {
		return out
	}
	dt := (tmax - tmin) / float64(cols)
	for c := range out {
		start := tmin + float64(c)*dt
		end := start + dt
		out[c] = start <= f.Highlight.End && end >= f.Highlight.Start
	}
	return out
}

// renderRow styles runs of identical cells together.
func renderRow(cells []cellKind, shaded []bool) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j] == cells[i] && shaded[j] == shaded[i] {
			run.WriteString(cells[j].glyph())
			j++
		}
		b.WriteString(cells[i].style(shaded[i]).Render(run.String()))
		i = j
	}
	return b.String()
}

// rowOf maps v to a grid row, top row first. ok is false outside bounds.
func rowOf(v float64, l trial.Limits, rows int) (int, bool) {
	if v < l.Min || v > l.Max {
		return 0, false
	}
	return clampRow(l.Max-v, l, rows), true
}

func clampRow(depth float64, l trial.Limits, rows int) int {
	r := int(math.Round(depth / (l.Max - l.Min) * float64(rows-1)))
	return max(0, min(r, rows-1))
}

// yLabels puts the upper, middle and lower limit against the first, middle
// and last rows.
func yLabels(l trial.Limits, rows int) ([]string, int) {
	labels := make([]string, rows)
	labels[0] = formatValue(l.Max)
	labels[rows-1] = formatValue(l.Min)
	labels[(rows-1)/2] = formatValue((l.Max + l.Min) / 2)
	w := 0
	for _, s := range labels {
		w = max(w, runewidth.StringWidth(s))
	}
	return labels, w
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func xLabels(times []float64, labelW, cols int) string {
	tmin, tmax := timeRange(times)
	left := fmt.Sprintf("%g ms", tmin)
	right := fmt.Sprintf("%g ms", tmax)
	gap := cols + 1 - len(left) - len(right)
	if gap < 1 {
		return strings.Repeat(" ", labelW) + left
	}
	return strings.Repeat(" ", labelW) + left + strings.Repeat(" ", gap) + right
}

func timeRange(times []float64) (float64, float64) {
	if len(times) == 0 {
		return 0, 0
	}
	return floats.Min(times), floats.Max(times)
}

func center(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// fit truncates or pads plain text to exactly width cells, then styles it.
func fit(s string, width int, style lipgloss.Style) string {
	return style.Render(runewidth.FillRight(runewidth.Truncate(s, width, "…"), width))
}
