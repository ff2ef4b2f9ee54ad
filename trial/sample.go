package trial

import (
	"fmt"
	"strings"
)

// Status is the trial-granular annotation.
type Status string

const (
	Accepted Status = "Accepted"
	Rejected Status = "Rejected"
)

// Flip returns the opposite status.
func (s Status) Flip() Status {
	if s == Rejected {
		return Accepted
	}
	return Rejected
}

// ParseStatus accepts the two canonical values. A blank cell is reported
// as Accepted with ok=true.
func ParseStatus(raw string) (Status, bool) {
	switch strings.TrimSpace(raw) {
	case "", string(Accepted):
		return Accepted, true
	case string(Rejected):
		return Rejected, true
	default:
		return "", false
	}
}

// Column names expected in the source table.
const (
	ColSession    = "Session"
	ColTrialNo    = "TrialNo"
	ColTrialIndex = "TrialIndex"
	ColTrialName  = "TrialName"
	ColTime       = "Time(ms)"
	ColEncl1      = "Encl 1"
	ColStatus     = "Status"
)

// RequiredColumns must all be present in a header row.
var RequiredColumns = []string{ColSession, ColTrialNo, ColTrialIndex, ColTrialName, ColTime, ColEncl1}

// DefaultTrialLength is the number of samples recorded per trial.
const DefaultTrialLength = 500

// Sample is one row of the recording.
type Sample struct {
	Session    string
	TrialNo    int
	TrialIndex int
	TrialName  string
	TimeMs     float64
	Encl1      float64
	Status     Status

	// cells are the source fields in header order; the Status cell is
	// rewritten from Status on export.
	cells []string
}

// Key identifies the trial a sample belongs to.
func (s Sample) Key() string {
	return fmt.Sprintf("%s|%d", s.Session, s.TrialIndex)
}

// isWavTrial reports whether the trial name marks a wav stimulus, which is
// rejected by default.
func isWavTrial(name string) bool {
	return strings.Contains(strings.ToLower(name), "wav")
}
