package trial

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPartialTrial is returned when the row count is not a whole number of trials.
	ErrPartialTrial = errors.New("row count is not a multiple of the trial length")
	// ErrMixedStatus is returned when a source file carries different Status values inside one trial.
	ErrMixedStatus = errors.New("trial rows disagree on Status")
	// ErrTrialKey is returned when a block of rows is not exactly one
	// (Session, TrialIndex) trial, or a trial appears in more than one block.
	ErrTrialKey = errors.New("trial rows do not form one (Session, TrialIndex) group")
)

// LoadError reports a file that could not be read or parsed. The session
// keeps its previous table when one is returned.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a destination that could not be written.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// SchemaError lists required columns absent from a header row.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// InputFormatError is returned for an unusable axis-limit text field.
type InputFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *InputFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputFormatError) Unwrap() error { return e.Err }
