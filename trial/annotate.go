package trial

import (
	"fmt"
	"slices"
)

// RejectedIndex holds one descriptor per rejected trial. Toggling keeps
// recency order; a rebuild lists trials in table order.
type RejectedIndex []string

// Contains reports whether d is listed.
func (r RejectedIndex) Contains(d string) bool {
	return slices.Contains(r, d)
}

func (r *RejectedIndex) add(d string) {
	if !r.Contains(d) {
		*r = append(*r, d)
	}
}

func (r *RejectedIndex) remove(d string) {
	if i := slices.Index(*r, d); i >= 0 {
		*r = slices.Delete(*r, i, i+1)
	}
}

// Describe formats the rejected-list entry for a trial whose first row is s.
func Describe(ordinal int, s Sample) string {
	return fmt.Sprintf("Trial %d: %s - Trial %d %s", ordinal, s.Session, s.TrialIndex, s.TrialName)
}

// Toggle flips the status of every row in b and updates idx to match.
// It returns the new status, or "" when b is empty.
func Toggle(t *Table, b Block, idx *RejectedIndex) Status {
	if b.Empty() {
		return ""
	}
	next := t.BlockStatus(b).Flip()
	SetStatus(t, b, idx, next)
	return next
}

// SetStatus writes s to every row of b and updates idx to match.
func SetStatus(t *Table, b Block, idx *RejectedIndex, s Status) {
	if b.Empty() {
		return
	}
	t.setBlockStatus(b, s)
	d := Describe(b.Ordinal, t.rows[b.Start])
	if s == Rejected {
		idx.add(d)
	} else {
		idx.remove(d)
	}
}

// RebuildRejectedIndex lists every rejected trial in table order. Trials
// are the distinct (TrialIndex, Session) groups in order of first
// appearance and are numbered in that order.
func RebuildRejectedIndex(t *Table) RejectedIndex {
	idx := RejectedIndex{}
	seen := make(map[string]struct{})
	ordinal := 0
	for _, r := range t.rows {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ordinal++
		if r.Status == Rejected {
			idx = append(idx, Describe(ordinal, r))
		}
	}
	return idx
}

// RemoveRejected returns a new table without the rejected rows. The caller
// must reset its cursor and rebuild its index.
func RemoveRejected(t *Table) *Table {
	return t.filter(func(s Sample) bool { return s.Status != Rejected })
}
