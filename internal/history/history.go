// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records export and batch outcomes in a local SQLite
// database so past conversions can be inspected from the CLI.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notes-press/pkg/types"
)

const dbFile = "history.db"

// defaultLimit caps listing when the caller does not say otherwise.
const defaultLimit = 20

// Record is one job's outcome as persisted.
type Record struct {
	// JobID is the export job's unique identifier.
	JobID string

	// Kind distinguishes single exports, batch entries, and compact runs.
	Kind string

	Input  string
	Output string
	Status types.JobStatus

	// PagesWritten and PagesFailed summarize the per-page outcomes.
	PagesWritten int
	PagesFailed  int

	// Error is the failure reason for failed jobs, empty otherwise.
	Error string

	Started  time.Time
	Finished time.Time
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/history.db,
// creating the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		job_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		input TEXT NOT NULL,
		output TEXT,
		status TEXT NOT NULL,
		pages_written INTEGER NOT NULL DEFAULT 0,
		pages_failed INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		started_at TEXT NOT NULL,
		finished_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one job outcome.
func (s *Store) Record(rec Record) error {
	if rec.JobID == "" {
		return fmt.Errorf("record needs a job ID")
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO jobs
		 (job_id, kind, input, output, status, pages_written, pages_failed, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.JobID, rec.Kind, rec.Input, rec.Output, string(rec.Status),
		rec.PagesWritten, rec.PagesFailed, rec.Error,
		rec.Started.UTC().Format(time.RFC3339),
		rec.Finished.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording job %s: %w", rec.JobID, err)
	}
	return nil
}

// Recent returns the most recently started jobs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.Query(
		`SELECT job_id, kind, input, output, status, pages_written, pages_failed, error, started_at, finished_at
		 FROM jobs ORDER BY started_at DESC, job_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var status, started, finished string
		if err := rows.Scan(&rec.JobID, &rec.Kind, &rec.Input, &rec.Output, &status,
			&rec.PagesWritten, &rec.PagesFailed, &rec.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Status = types.JobStatus(status)
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			rec.Started = t
		}
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			rec.Finished = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
