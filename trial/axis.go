package trial

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// AxisMode selects how the Y display range is chosen.
type AxisMode int

const (
	AxisFixed AxisMode = iota
	AxisAuto
)

func (m AxisMode) String() string {
	if m == AxisAuto {
		return "auto"
	}
	return "fixed"
}

// Limits is a Y display range.
type Limits struct {
	Min float64
	Max float64
}

func (l Limits) String() string {
	return fmt.Sprintf("%g..%g", l.Min, l.Max)
}

// AxisSettings are the operator's axis choices.
type AxisSettings struct {
	Mode  AxisMode
	Fixed Limits
}

const (
	DefaultFixedMin   = -0.5
	DefaultFixedMax   = 1.0
	DefaultSeedFactor = 0.6

	autoPadding = 0.1
	flatPadding = 0.5
)

// DefaultLimits are the fixed limits used before any file is loaded.
func DefaultLimits() Limits {
	return Limits{Min: DefaultFixedMin, Max: DefaultFixedMax}
}

// Median returns the middle value of values, averaging the two middle
// values for an even count. It returns NaN for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Center subtracts the median of values from each value. The result is the
// per-trial baseline-corrected signal that is displayed and autoscaled.
func Center(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	floats.AddConst(-Median(values), out)
	return out
}

// ComputeLimits returns the Y range for series. Fixed mode returns fixed
// unchanged. Auto mode pads the observed range by 10% on each side; a flat
// series gets a fixed half-unit margin and an empty one falls back to fixed.
func ComputeLimits(series []float64, mode AxisMode, fixed Limits) Limits {
	if mode == AxisFixed || len(series) == 0 {
		return fixed
	}
	lo, hi := floats.Min(series), floats.Max(series)
	span := hi - lo
	if span == 0 {
		return Limits{Min: lo - flatPadding, Max: hi + flatPadding}
	}
	return Limits{Min: lo - autoPadding*span, Max: hi + autoPadding*span}
}

// SeedFixedMax derives the default upper limit from a freshly loaded table:
// the maximum raw Encl 1 reading times factor, rounded to one decimal.
// ok is false for an empty table.
func SeedFixedMax(t *Table, factor float64) (float64, bool) {
	if t.Empty() {
		return 0, false
	}
	values := make([]float64, len(t.rows))
	for i, r := range t.rows {
		values[i] = r.Encl1
	}
	return math.Round(floats.Max(values)*factor*10) / 10, true
}

// ParseLimits reads operator-entered limit text.
func ParseLimits(minText, maxText string) (Limits, error) {
	lo, err := parseLimit("lower limit", minText)
	if err != nil {
		return Limits{}, err
	}
	hi, err := parseLimit("upper limit", maxText)
	if err != nil {
		return Limits{}, err
	}
	if lo >= hi {
		return Limits{}, &InputFormatError{
			Field: "limits",
			Value: minText + " " + maxText,
			Err:   fmt.Errorf("lower limit must be below upper limit"),
		}
	}
	return Limits{Min: lo, Max: hi}, nil
}

func parseLimit(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &InputFormatError{Field: field, Value: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputFormatError{Field: field, Value: text, Err: fmt.Errorf("not a finite number")}
	}
	return v, nil
}
