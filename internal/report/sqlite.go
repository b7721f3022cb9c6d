package report

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps run outcomes in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path with WAL mode.
// Use ":memory:" for in-memory databases in tests.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the outcome's row.
func (s *SQLiteStore) Save(o *Outcome) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO runs (id, status, invocation, report_path, started_at, duration_ns, stdout, stderr, exit_code, error, write_error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, string(o.Status), o.Invocation, o.ReportPath,
		o.StartedAt.UnixNano(), int64(o.Duration),
		[]byte(o.Capture.Stdout), []byte(o.Capture.Stderr), o.ExitCode,
		nullString(o.Error), nullString(o.WriteError),
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", o.ID, err)
	}
	return nil
}

// Load retrieves a run by ID.
func (s *SQLiteStore) Load(runID string) (*Outcome, error) {
	row := s.db.QueryRow(
		`SELECT id, status, invocation, report_path, started_at, duration_ns, stdout, stderr, exit_code, error, write_error
		 FROM runs WHERE id = ?`, runID)

	o, err := scanOutcome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}
	return o, nil
}

// List returns stored runs, newest first.
func (s *SQLiteStore) List(limit int) ([]*Outcome, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		`SELECT id, status, invocation, report_path, started_at, duration_ns, stdout, stderr, exit_code, error, write_error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []*Outcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOutcome(sc scanner) (*Outcome, error) {
	var (
		o                 Outcome
		status            string
		startedAt, durNS  int64
		stdout, stderr    []byte
		errText, writeErr sql.NullString
	)
	err := sc.Scan(&o.ID, &status, &o.Invocation, &o.ReportPath, &startedAt, &durNS,
		&stdout, &stderr, &o.ExitCode, &errText, &writeErr)
	if err != nil {
		return nil, err
	}
	o.Capture = CaptureResult{Stdout: string(stdout), Stderr: string(stderr)}
	o.Status = Status(status)
	o.StartedAt = time.Unix(0, startedAt)
	o.Duration = time.Duration(durNS)
	o.Error = errText.String
	o.WriteError = writeErr.String
	return &o, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
