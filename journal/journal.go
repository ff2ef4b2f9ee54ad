// Package journal appends every accept/reject decision to a SQLite log.
// Each program run gets its own run id so a review can be audited later.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/andareed/gpias-marker/trial"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	runId      TEXT    NOT NULL,
	createdAt  REAL    NOT NULL,
	source     TEXT    NOT NULL,
	ordinal    INTEGER NOT NULL,
	session    TEXT    NOT NULL,
	trialIndex INTEGER NOT NULL,
	trialName  TEXT    NOT NULL,
	status     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS decisions_run ON decisions(runId);
`

// Entry is one journaled decision.
type Entry struct {
	ID        int64
	RunID     string
	CreatedAt time.Time
	trial.Decision
}

// Journal records decisions. It satisfies trial.Recorder.
type Journal struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

// Open opens or creates the journal at path. ":memory:" gives a private
// in-memory journal.
func Open(path string) (*Journal, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &Journal{db: db, runID: uuid.New().String(), now: time.Now}, nil
}

// RunID identifies the decisions made by this process.
func (j *Journal) RunID() string { return j.runID }

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends d under the current run id.
func (j *Journal) Record(d trial.Decision) error {
	_, err := j.db.Exec(`
		INSERT INTO decisions (runId, createdAt, source, ordinal, session, trialIndex, trialName, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, j.runID, unixFromTime(j.now()), d.Source, d.Ordinal, d.Session, d.TrialIndex, d.TrialName, string(d.Status))
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// Recent returns up to limit decisions, newest first, across all runs.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, runId, createdAt, source, ordinal, session, trialIndex, trialName, status
		FROM decisions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt float64
		var status string
		if err := rows.Scan(&e.ID, &e.RunID, &createdAt, &e.Source, &e.Ordinal,
			&e.Session, &e.TrialIndex, &e.TrialName, &status); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		e.CreatedAt = timeFromUnix(createdAt)
		e.Status = trial.Status(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
