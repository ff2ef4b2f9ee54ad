package trial

import "fmt"

// Interval is a shaded reference span on the time axis, in ms.
type Interval struct {
	Start float64
	End   float64
}

// Frame is everything a renderer needs to draw the current trial.
type Frame struct {
	Empty      bool
	Title      string // "Status: Accepted", or the placeholder title
	Identifier string // "{Session} - No. {TrialNo} - {TrialName}"
	Counter    string // "Displayed trial: K / N"
	Status     Status
	Times      []float64
	Values     []float64 // Encl 1 minus the trial median
	Highlight  Interval
	Bounds     Limits
}

const noDataTitle = "No Data Loaded"

func counterText(ordinal, total int) string {
	return fmt.Sprintf("Displayed trial: %d / %d", ordinal, total)
}

// Frame builds the display contract for the current trial.
func (s *Session) Frame() Frame {
	b := s.seg.Block()
	if b.Empty() {
		return Frame{
			Empty:     true,
			Title:     noDataTitle,
			Counter:   counterText(0, 0),
			Highlight: s.opts.Highlight,
			Bounds:    s.axis.Fixed,
		}
	}

	first := s.table.rows[b.Start]
	values := Center(s.table.Encl1(b))
	return Frame{
		Title:      fmt.Sprintf("Status: %s", first.Status),
		Identifier: fmt.Sprintf("%s - No. %d - %s", first.Session, first.TrialNo, first.TrialName),
		Counter:    counterText(s.seg.Ordinal(), s.seg.Total()),
		Status:     first.Status,
		Times:      s.table.Times(b),
		Values:     values,
		Highlight:  s.opts.Highlight,
		Bounds:     ComputeLimits(values, s.axis.Mode, s.axis.Fixed),
	}
}
