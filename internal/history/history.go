// Package history records scheduling runs in a local SQLite database
// so past runs can be listed and compared.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/nwalden/planloom/internal/plan"
	"github.com/nwalden/planloom/internal/stats"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    source          TEXT NOT NULL,
    title           TEXT NOT NULL,
    total_tasks     INTEGER NOT NULL,
    done_tasks      INTEGER NOT NULL,
    milestones      INTEGER NOT NULL,
    total_duration  INTEGER NOT NULL,
    completion_rate REAL NOT NULL,
    plan_start      TEXT NOT NULL DEFAULT '',
    plan_end        TEXT NOT NULL DEFAULT '',
    recorded_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Run is one recorded scheduling run.
type Run struct {
	ID             int64
	Source         string
	Title          string
	TotalTasks     int
	DoneTasks      int
	Milestones     int
	TotalDuration  int
	CompletionRate float64
	PlanStart      string
	PlanEnd        string
	RecordedAt     time.Time
}

// Store persists run summaries in a SQLite database in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath, enables WAL
// mode and busy timeout, and creates the schema if it does not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled connections
	// that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores a summary of a scheduled plan. source identifies where
// the plan came from, typically the input file path.
func (s *Store) Record(ctx context.Context, source string, p *plan.Plan, st *stats.Stats) (int64, error) {
	layout := p.Layout()
	start, end := "", ""
	if !st.Start.IsZero() {
		start = st.Start.Format(layout)
	}
	if !st.End.IsZero() {
		end = st.End.Format(layout)
	}

	const q = `
		INSERT INTO runs (source, title, total_tasks, done_tasks, milestones, total_duration, completion_rate, plan_start, plan_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		source, p.Title, st.TotalTasks, st.DoneTasks, st.Milestones, st.TotalDuration, st.CompletionRate, start, end)
	if err != nil {
		return 0, fmt.Errorf("history: record run for %q: %w", source, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: record run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, source, title, total_tasks, done_tasks, milestones, total_duration, completion_rate, plan_start, plan_end, recorded_at
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &r.Source, &r.Title, &r.TotalTasks, &r.DoneTasks, &r.Milestones,
			&r.TotalDuration, &r.CompletionRate, &r.PlanStart, &r.PlanEnd, &ts); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		recordedAt, parseErr := parseTimestamp(ts)
		if parseErr != nil {
			return nil, fmt.Errorf("history: parse run timestamp: %w", parseErr)
		}
		r.RecordedAt = recordedAt
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}

// Clear deletes all recorded runs.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("history: clear runs: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339,
// while canonical SQLite returns the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
