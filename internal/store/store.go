// Package store provides a SQLite-backed archive of reconciliation runs.
//
// Each run records the plan the engine produced together with its merge
// statistics, so a toolchain operator can inspect what past reconciliations
// decided. The archive is append-only; runs are never updated.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/docfold/docfold/internal/plan"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed-width so lexical ordering of created_at matches
// chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// ErrNotFound is returned when a run ID does not exist in the archive.
var ErrNotFound = errors.New("store: run not found")

// Run is one archived reconciliation: the plan plus its summary statistics.
type Run struct {
	ID        string
	CreatedAt time.Time
	Label     string
	Stats     plan.Stats
	Plan      *plan.Plan
}

// Store is a handle on the run archive.
type Store struct {
	db *sql.DB
}

// Open creates or opens the archive database at the given path.
// Applies required pragmas and the schema automatically; safe to call on an
// existing archive.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to archive: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the archive.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// SaveRun archives a plan under a fresh run ID and returns the stored run.
func (s *Store) SaveRun(ctx context.Context, label string, p *plan.Plan) (*Run, error) {
	data, err := plan.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Label:     label,
		Stats:     p.Stats,
		Plan:      p,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, label, kept, replaced, recursed, plan_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), run.Label,
		run.Stats.Kept, run.Stats.Replaced, run.Stats.Recursed, string(data))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// GetRun loads one archived run, including its full plan.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, label, kept, replaced, recursed, plan_json
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// ListRuns returns archived runs newest-first, without their plans.
// Limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, created_at, label, kept, replaced, recursed, ''
		 FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanner is the shared surface of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner, withPlan bool) (*Run, error) {
	var (
		run      Run
		created  string
		planJSON string
	)
	err := sc.Scan(&run.ID, &created, &run.Label,
		&run.Stats.Kept, &run.Stats.Replaced, &run.Stats.Recursed, &planJSON)
	if err != nil {
		return nil, err
	}
	run.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if withPlan {
		run.Plan, err = plan.Unmarshal([]byte(planJSON))
		if err != nil {
			return nil, fmt.Errorf("unmarshal archived plan: %w", err)
		}
	}
	return &run, nil
}
