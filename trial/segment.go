package trial

// Segmenter tracks which trial of a table is current. The cursor is always
// the first row of a trial and never points past the last whole trial.
// Navigation only moves the cursor; redrawing is up to the caller.
type Segmenter struct {
	table  *Table
	cursor int
}

// NewSegmenter returns a segmenter positioned on the first trial.
func NewSegmenter(t *Table) Segmenter {
	return Segmenter{table: t}
}

// Cursor returns the first row of the current trial.
func (s *Segmenter) Cursor() int { return s.cursor }

// Block returns the current trial, or the empty block for an empty table.
func (s *Segmenter) Block() Block {
	return s.table.BlockAt(s.cursor)
}

// Ordinal returns the 1-based number of the current trial, 0 when empty.
func (s *Segmenter) Ordinal() int {
	if s.table.Empty() {
		return 0
	}
	return s.cursor/s.table.trialLen + 1
}

// Total returns the number of whole trials. Rows past the last whole trial
// are not navigable.
func (s *Segmenter) Total() int { return s.table.TotalTrials() }

// Next moves to the following trial and stays put on the last one.
func (s *Segmenter) Next() {
	last := max(0, s.table.Len()-s.table.trialLen)
	s.cursor = min(s.cursor+s.table.trialLen, last)
}

// Prev moves to the preceding trial and stays put on the first one.
func (s *Segmenter) Prev() {
	s.cursor = max(0, s.cursor-s.table.trialLen)
}

// Goto jumps to trial n. Out-of-range requests leave the cursor unchanged
// and report false.
func (s *Segmenter) Goto(n int) bool {
	if n < 1 || n > s.Total() {
		return false
	}
	s.cursor = (n - 1) * s.table.trialLen
	return true
}
