package trial

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/andareed/gpias-marker/logging"
)

// --- Wire format ---

const snapshotVersion = 1

const progressSuffix = ".progress.json"

type progressDTO struct {
	Version   int               `json:"version"`
	Source    string            `json:"source,omitempty"`
	Trial     int               `json:"trial"`
	Autoscale bool              `json:"autoscale"`
	FixedMin  float64           `json:"fixedMin"`
	FixedMax  float64           `json:"fixedMax"`
	Statuses  map[string]string `json:"statuses"` // trial key -> Status
}

// ProgressPath is the default progress file for a source table.
func ProgressPath(source string) string {
	if source == "" {
		return "session" + progressSuffix
	}
	return source + progressSuffix
}

// SaveProgress writes the per-trial statuses, the current trial and the
// axis settings so an unfinished review can be resumed later.
func (s *Session) SaveProgress(path string) error {
	dto := progressDTO{
		Version:   snapshotVersion,
		Source:    s.source,
		Trial:     s.seg.Ordinal(),
		Autoscale: s.axis.Mode == AxisAuto,
		FixedMin:  s.axis.Fixed.Min,
		FixedMax:  s.axis.Fixed.Max,
		Statuses:  make(map[string]string, s.seg.Total()),
	}
	for _, b := range s.table.Blocks() {
		dto.Statuses[s.table.rows[b.Start].Key()] = string(s.table.BlockStatus(b))
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	logging.Infof("Saved progress for %d trials to %s", len(dto.Statuses), path)
	return nil
}

// LoadProgress re-applies saved statuses to the trials currently loaded,
// matching them by (Session, TrialIndex). Trials absent from the file keep
// their status. It returns the number of trials matched.
//
// A file that cannot be used is a *LoadError and changes nothing. Every
// trial whose status actually changes is passed to the Recorder; a
// Recorder failure is returned after the restore has been applied, as with
// Toggle.
func (s *Session) LoadProgress(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	var dto progressDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	if dto.Version != snapshotVersion {
		return 0, &LoadError{Path: path, Err: fmt.Errorf("progress version %d not supported (want %d)", dto.Version, snapshotVersion)}
	}

	// Validate everything before touching the table.
	statuses := make(map[string]Status, len(dto.Statuses))
	for k, v := range dto.Statuses {
		st, ok := ParseStatus(v)
		if !ok {
			return 0, &LoadError{Path: path, Err: fmt.Errorf("trial %s: unknown status %q", k, v)}
		}
		statuses[k] = st
	}

	applied := 0
	var changed []Block
	for _, b := range s.table.Blocks() {
		st, ok := statuses[s.table.rows[b.Start].Key()]
		if !ok {
			continue
		}
		applied++
		if s.table.BlockStatus(b) != st {
			s.table.setBlockStatus(b, st)
			changed = append(changed, b)
		}
	}
	s.rejected = RebuildRejectedIndex(s.table)
	s.seg = NewSegmenter(s.table)
	s.seg.Goto(dto.Trial)
	if dto.FixedMin < dto.FixedMax {
		s.axis.Fixed = Limits{Min: dto.FixedMin, Max: dto.FixedMax}
	}
	s.axis.Mode = AxisFixed
	if dto.Autoscale {
		s.axis.Mode = AxisAuto
	}
	logging.Infof("Restored %d trial statuses from %s, %d changed", applied, path, len(changed))

	var errs []error
	for _, b := range changed {
		if err := s.record(b, s.table.BlockStatus(b)); err != nil {
			errs = append(errs, err)
		}
	}
	return applied, errors.Join(errs...)
}
