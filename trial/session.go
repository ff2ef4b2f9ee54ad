package trial

import (
	"fmt"
	"slices"

	"github.com/andareed/gpias-marker/logging"
)

// Options configure a Session.
type Options struct {
	TrialLength   int
	Highlight     Interval
	DefaultLimits Limits
	SeedFactor    float64
	Autoscale     bool
}

// DefaultOptions returns the stock trial length, highlight window and limits.
func DefaultOptions() Options {
	return Options{
		TrialLength:   DefaultTrialLength,
		Highlight:     Interval{Start: 300, End: 320},
		DefaultLimits: DefaultLimits(),
		SeedFactor:    DefaultSeedFactor,
	}
}

// Decision is a single status change, as handed to a Recorder.
type Decision struct {
	Source     string
	Ordinal    int
	Session    string
	TrialIndex int
	TrialName  string
	Status     Status
}

// Recorder receives every status change made through a Session.
type Recorder interface {
	Record(Decision) error
}

// Session is the complete editing state: the table, the current trial, the
// rejected index and the axis settings. The table, cursor and index are
// always replaced together.
type Session struct {
	opts     Options
	table    *Table
	seg      Segmenter
	rejected RejectedIndex
	axis     AxisSettings
	source   string
	recorder Recorder
}

// NewSession returns a session with an empty table.
func NewSession(opts Options) *Session {
	if opts.TrialLength <= 0 {
		opts.TrialLength = DefaultTrialLength
	}
	if opts.SeedFactor <= 0 {
		opts.SeedFactor = DefaultSeedFactor
	}
	if opts.DefaultLimits == (Limits{}) {
		opts.DefaultLimits = DefaultLimits()
	}
	s := &Session{opts: opts}
	s.axis = AxisSettings{Mode: AxisFixed, Fixed: opts.DefaultLimits}
	if opts.Autoscale {
		s.axis.Mode = AxisAuto
	}
	s.replace(EmptyTable(opts.TrialLength), "")
	return s
}

// SetRecorder installs r to receive status changes. nil disables recording.
func (s *Session) SetRecorder(r Recorder) { s.recorder = r }

// Options returns the options the session was created with.
func (s *Session) Options() Options { return s.opts }

// Table returns the current table. Callers must not retain it across Load
// or RemoveRejected.
func (s *Session) Table() *Table { return s.table }

// Source is the path the table was loaded from, if any.
func (s *Session) Source() string { return s.source }

// Rejected returns a copy of the rejected index.
func (s *Session) Rejected() RejectedIndex { return slices.Clone(s.rejected) }

// Axis returns the current axis settings.
func (s *Session) Axis() AxisSettings { return s.axis }

// Block returns the current trial block.
func (s *Session) Block() Block { return s.seg.Block() }

// Ordinal returns the current trial number, 0 when empty.
func (s *Session) Ordinal() int { return s.seg.Ordinal() }

// Total returns the number of trials.
func (s *Session) Total() int { return s.seg.Total() }

// Load reads path and, only if that succeeds, replaces the session state.
func (s *Session) Load(path string) error {
	t, err := Load(path, s.opts.TrialLength)
	if err != nil {
		return err
	}
	s.Replace(t, path)
	return nil
}

// Replace installs a freshly loaded table: the cursor returns to the first
// trial, the rejected index is rebuilt and the fixed upper limit is reseeded
// from the data.
func (s *Session) Replace(t *Table, source string) {
	s.replace(t, source)
	if v, ok := SeedFixedMax(t, s.opts.SeedFactor); ok {
		s.axis.Fixed.Max = v
		logging.Debugf("Seeded fixed upper limit to %g", v)
	}
}

func (s *Session) replace(t *Table, source string) {
	s.table = t
	s.seg = NewSegmenter(t)
	s.rejected = RebuildRejectedIndex(t)
	s.source = source
}

// Export writes the annotated table to path.
func (s *Session) Export(path string) error {
	return Export(s.table, path)
}

// Next moves to the following trial.
func (s *Session) Next() { s.seg.Next() }

// Prev moves to the preceding trial.
func (s *Session) Prev() { s.seg.Prev() }

// Goto jumps to trial n, ignoring out-of-range requests.
func (s *Session) Goto(n int) bool {
	ok := s.seg.Goto(n)
	if !ok {
		logging.Debugf("Goto %d ignored, %d trials", n, s.seg.Total())
	}
	return ok
}

// Toggle flips the current trial's status. The state change always
// happens; a non-nil error only reports a Recorder failure.
func (s *Session) Toggle() (Status, error) {
	b := s.seg.Block()
	st := Toggle(s.table, b, &s.rejected)
	if st == "" {
		return "", nil
	}
	logging.Infof("Trial %d marked %s", b.Ordinal, st)
	return st, s.record(b, st)
}

func (s *Session) record(b Block, st Status) error {
	if s.recorder == nil {
		return nil
	}
	first := s.table.rows[b.Start]
	err := s.recorder.Record(Decision{
		Source:     s.source,
		Ordinal:    b.Ordinal,
		Session:    first.Session,
		TrialIndex: first.TrialIndex,
		TrialName:  first.TrialName,
		Status:     st,
	})
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// RemoveRejected drops every rejected trial and returns how many went.
func (s *Session) RemoveRejected() int {
	_, rejected := s.table.StatusCounts()
	s.replace(RemoveRejected(s.table), s.source)
	logging.Infof("Removed %d rejected trials, %d remain", rejected, s.seg.Total())
	return rejected
}

// SetAxisMode switches between fixed and autoscaled limits.
func (s *Session) SetAxisMode(m AxisMode) { s.axis.Mode = m }

// ToggleAutoscale flips the axis mode and returns the new one.
func (s *Session) ToggleAutoscale() AxisMode {
	if s.axis.Mode == AxisAuto {
		s.axis.Mode = AxisFixed
	} else {
		s.axis.Mode = AxisAuto
	}
	return s.axis.Mode
}

// SetFixedLimits parses operator text into the fixed limits. On error the
// limits are left as they were.
func (s *Session) SetFixedLimits(minText, maxText string) error {
	l, err := ParseLimits(minText, maxText)
	if err != nil {
		return err
	}
	s.axis.Fixed = l
	return nil
}
