// Package store records runs and their refinement rounds in SQLite.
//
// A run is one invocation of the pipeline: its settings and final status.
// Each round stores the candidate count, the guard count, the solve status
// and the full snapshot JSON, so any round can be re-rendered or re-solved
// later.
//
//	st, err := store.Open("runs.db")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//	id, err := st.CreateRun(ctx, store.Run{Strategy: "grow-one-by-one", Racks: 20})
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    created_at  TEXT NOT NULL,
    strategy    TEXT NOT NULL,
    racks       INTEGER NOT NULL,
    model       TEXT NOT NULL,
    coverage    TEXT NOT NULL,
    delta       REAL NOT NULL,
    seed        INTEGER NOT NULL,
    status      TEXT NOT NULL DEFAULT 'running'
);
CREATE TABLE IF NOT EXISTS rounds (
    run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    round       INTEGER NOT NULL,
    candidates  INTEGER NOT NULL,
    guards      INTEGER NOT NULL,
    status      TEXT NOT NULL,
    duration_ms INTEGER NOT NULL,
    cache_hit   INTEGER NOT NULL,
    snapshot    TEXT NOT NULL,
    PRIMARY KEY (run_id, round)
);`

// Run statuses.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Run is one pipeline invocation.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Strategy  string    `json:"strategy"`
	Racks     int       `json:"racks"`
	Model     string    `json:"guarding_model"`
	Coverage  string    `json:"coverage"`
	Delta     float64   `json:"delta"`
	Seed      uint64    `json:"seed"`
	Status    string    `json:"status"`
}

// Round is one solved refinement round of a run.
type Round struct {
	RunID      string        `json:"run_id"`
	Round      int           `json:"round"`
	Candidates int           `json:"candidates"`
	Guards     int           `json:"guards"`
	Status     string        `json:"status"`
	Duration   time.Duration `json:"duration"`
	CacheHit   bool          `json:"cache_hit"`
	Snapshot   []byte        `json:"-"`
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "create database directory")
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "open %s", path)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "apply schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// CreateRun inserts a run with status running. An empty ID is replaced by
// a new UUID; the ID is returned.
func (s *Store) CreateRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO runs (id, created_at, strategy, racks, model, coverage, delta, seed, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Strategy, r.Racks,
		r.Model, r.Coverage, r.Delta, int64(r.Seed), StatusRunning)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeStorage, err, "insert run")
	}
	return r.ID, nil
}

// FinishRun sets a run's final status.
func (s *Store) FinishRun(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "update run")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.New(errs.ErrCodeRunNotFound, "run %s not found", id)
	}
	return nil
}

// AddRound records a round. Recording the same round twice replaces it.
func (s *Store) AddRound(ctx context.Context, r Round) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO rounds (run_id, round, candidates, guards, status, duration_ms, cache_hit, snapshot)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Round, r.Candidates, r.Guards, r.Status,
		r.Duration.Milliseconds(), r.CacheHit, string(r.Snapshot))
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "insert round %d", r.Round)
	}
	return nil
}

// Runs lists the most recent runs first. A limit of zero lists all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, created_at, strategy, racks, model, coverage, delta, seed, status
          FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run returns a single run.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, created_at, strategy, racks, model, coverage, delta, seed, status
        FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, errs.New(errs.ErrCodeRunNotFound, "run %s not found", id)
	}
	return r, err
}

// Rounds lists a run's rounds in order.
func (s *Store) Rounds(ctx context.Context, runID string) ([]Round, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT run_id, round, candidates, guards, status, duration_ms, cache_hit, snapshot
        FROM rounds WHERE run_id = ? ORDER BY round`, runID)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list rounds")
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var (
			r    Round
			ms   int64
			snap string
		)
		if err := rows.Scan(&r.RunID, &r.Round, &r.Candidates, &r.Guards, &r.Status, &ms, &r.CacheHit, &snap); err != nil {
			return nil, errs.Wrap(errs.ErrCodeStorage, err, "scan round")
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.Snapshot = []byte(snap)
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r       Run
		created string
		seed    int64
	)
	if err := sc.Scan(&r.ID, &created, &r.Strategy, &r.Racks, &r.Model, &r.Coverage, &r.Delta, &seed, &r.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, errs.Wrap(errs.ErrCodeStorage, err, "scan run")
	}
	r.Seed = uint64(seed)
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return r, nil
}
