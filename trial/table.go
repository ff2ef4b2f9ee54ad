package trial

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Table is the ordered sample table for one editing session. Rows are sorted
// by (Session, TrialNo) and every trial occupies trialLen contiguous rows
// sharing one (Session, TrialIndex) key that no other block uses. Status is
// only ever written a whole block at a time.
type Table struct {
	columns   []string
	statusCol int
	trialLen  int
	rows      []Sample
}

// Block is the half-open row range [Start, End) of one trial.
type Block struct {
	Start   int
	End     int
	Ordinal int // 1-based trial number, 0 for the empty block
}

func (b Block) Len() int    { return b.End - b.Start }
func (b Block) Empty() bool { return b.End <= b.Start }

// EmptyTable returns a table with the canonical columns and no rows.
func EmptyTable(trialLen int) *Table {
	if trialLen <= 0 {
		trialLen = DefaultTrialLength
	}
	cols := append(slices.Clone(RequiredColumns), ColStatus)
	return &Table{columns: cols, statusCol: len(cols) - 1, trialLen: trialLen}
}

// FromRecords builds a table from a header row followed by data rows.
// It checks the schema, derives default statuses for a source without a
// Status column, sorts by (Session, TrialNo) and validates that the rows
// form whole trials of uniform status.
func FromRecords(records [][]string, trialLen int) (*Table, error) {
	if trialLen <= 0 {
		trialLen = DefaultTrialLength
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := slices.Clone(records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	statusCol, hasStatus := idx[ColStatus]
	if !hasStatus {
		header = append(header, ColStatus)
		statusCol = len(header) - 1
	}

	rows := make([]Sample, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2 // 1-based, counting the header
		if len(rec) != len(records[0]) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(rec), len(records[0]))
		}
		s, err := parseSample(rec, idx, line)
		if err != nil {
			return nil, err
		}
		cells := slices.Clone(rec)
		if hasStatus {
			st, ok := ParseStatus(rec[statusCol])
			if !ok {
				return nil, fmt.Errorf("line %d: unknown %s %q", line, ColStatus, rec[statusCol])
			}
			s.Status = st
		} else {
			s.Status = Accepted
			if isWavTrial(s.TrialName) {
				s.Status = Rejected
			}
			cells = append(cells, "")
		}
		s.cells = cells
		rows = append(rows, s)
	}

	slices.SortStableFunc(rows, func(a, b Sample) int {
		if c := strings.Compare(a.Session, b.Session); c != 0 {
			return c
		}
		return cmp.Compare(a.TrialNo, b.TrialNo)
	})

	t := &Table{columns: header, statusCol: statusCol, trialLen: trialLen, rows: rows}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseSample(rec []string, idx map[string]int, line int) (Sample, error) {
	var s Sample
	var err error
	s.Session = strings.TrimSpace(rec[idx[ColSession]])
	s.TrialName = strings.TrimSpace(rec[idx[ColTrialName]])
	if s.TrialNo, err = parseInt(rec[idx[ColTrialNo]]); err != nil {
		return s, fmt.Errorf("line %d: %s: %w", line, ColTrialNo, err)
	}
	if s.TrialIndex, err = parseInt(rec[idx[ColTrialIndex]]); err != nil {
		return s, fmt.Errorf("line %d: %s: %w", line, ColTrialIndex, err)
	}
	if s.TimeMs, err = parseFloat(rec[idx[ColTime]]); err != nil {
		return s, fmt.Errorf("line %d: %s: %w", line, ColTime, err)
	}
	if s.Encl1, err = parseFloat(rec[idx[ColEncl1]]); err != nil {
		return s, fmt.Errorf("line %d: %s: %w", line, ColEncl1, err)
	}
	return s, nil
}

// parseInt also accepts integral floats such as "3.0", which spreadsheet
// exports commonly produce.
func parseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return int(f), nil
}

// parseFloat rejects NaN and infinities so every plotted sample is finite.
func parseFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}

func (t *Table) validate() error {
	if len(t.rows)%t.trialLen != 0 {
		return fmt.Errorf("%w: %d rows, trial length %d", ErrPartialTrial, len(t.rows), t.trialLen)
	}
	seen := make(map[string]int, t.TotalTrials())
	for start := 0; start < len(t.rows); start += t.trialLen {
		ordinal := start/t.trialLen + 1
		first := t.rows[start]
		key := first.Key()
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: trial %d repeats %s - Trial %d of trial %d",
				ErrTrialKey, ordinal, first.Session, first.TrialIndex, prev)
		}
		seen[key] = ordinal
		for i := start + 1; i < start+t.trialLen; i++ {
			r := t.rows[i]
			if r.Key() != key {
				return fmt.Errorf("%w: trial %d mixes %s - Trial %d with %s - Trial %d",
					ErrTrialKey, ordinal, first.Session, first.TrialIndex, r.Session, r.TrialIndex)
			}
			if r.Status != first.Status {
				return fmt.Errorf("%w: trial %d", ErrMixedStatus, ordinal)
			}
		}
	}
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// TrialLength returns the number of rows per trial.
func (t *Table) TrialLength() int { return t.trialLen }

// TotalTrials is the number of whole trials in the table.
func (t *Table) TotalTrials() int { return len(t.rows) / t.trialLen }

// Columns returns the header in export order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Row returns a copy of row i.
func (t *Table) Row(i int) Sample { return t.rows[i] }

// Rows returns a copy of the samples in b.
func (t *Table) Rows(b Block) []Sample {
	if b.Empty() {
		return nil
	}
	return slices.Clone(t.rows[b.Start:b.End])
}

// BlockAt returns the trial block starting at row start.
func (t *Table) BlockAt(start int) Block {
	if t.Empty() || start < 0 || start >= len(t.rows) {
		return Block{}
	}
	end := min(start+t.trialLen, len(t.rows))
	return Block{Start: start, End: end, Ordinal: start/t.trialLen + 1}
}

// Blocks enumerates every trial block in table order.
func (t *Table) Blocks() []Block {
	blocks := make([]Block, 0, t.TotalTrials())
	for start := 0; start+t.trialLen <= len(t.rows); start += t.trialLen {
		blocks = append(blocks, t.BlockAt(start))
	}
	return blocks
}

// BlockStatus returns the status shared by every row of b.
func (t *Table) BlockStatus(b Block) Status {
	if b.Empty() {
		return ""
	}
	return t.rows[b.Start].Status
}

// setBlockStatus is the only status mutator.
func (t *Table) setBlockStatus(b Block, s Status) {
	for i := b.Start; i < b.End; i++ {
		t.rows[i].Status = s
	}
}

// StatusCounts returns the number of accepted and rejected trials.
func (t *Table) StatusCounts() (accepted, rejected int) {
	for _, b := range t.Blocks() {
		if t.BlockStatus(b) == Rejected {
			rejected++
		} else {
			accepted++
		}
	}
	return accepted, rejected
}

// Records returns the header and all rows as strings, with the Status cell
// refreshed from the current annotation.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, slices.Clone(t.columns))
	for _, r := range t.rows {
		rec := slices.Clone(r.cells)
		rec[t.statusCol] = string(r.Status)
		out = append(out, rec)
	}
	return out
}

// Encl1 returns the raw channel values of b.
func (t *Table) Encl1(b Block) []float64 {
	if b.Empty() {
		return nil
	}
	out := make([]float64, 0, b.Len())
	for _, r := range t.rows[b.Start:b.End] {
		out = append(out, r.Encl1)
	}
	return out
}

// Times returns the Time(ms) values of b.
func (t *Table) Times(b Block) []float64 {
	if b.Empty() {
		return nil
	}
	out := make([]float64, 0, b.Len())
	for _, r := range t.rows[b.Start:b.End] {
		out = append(out, r.TimeMs)
	}
	return out
}

// filter returns a new table holding the rows keep accepts, in order.
func (t *Table) filter(keep func(Sample) bool) *Table {
	rows := make([]Sample, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &Table{columns: slices.Clone(t.columns), statusCol: t.statusCol, trialLen: t.trialLen, rows: rows}
}
