// Package runlog persists simulation results in a SQLite database.
//
// One row is written per run; rows of the same simulation share a
// simulation id so the timed run can be compared with its exploration run.
package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates an unknown record id.
var ErrNotFound = errors.New("runlog: record not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	sim_id      TEXT NOT NULL,
	maze        TEXT NOT NULL,
	dim         INTEGER NOT NULL,
	run         INTEGER NOT NULL,
	moves       INTEGER NOT NULL,
	retreats    INTEGER NOT NULL DEFAULT 0,
	reached     INTEGER NOT NULL,
	optimal     INTEGER NOT NULL,
	policy      TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_maze ON runs (maze, created_at);
`

// Record is one stored run.
type Record struct {
	ID        uuid.UUID
	SimID     uuid.UUID
	Maze      string
	Dim       int
	Run       int
	Moves     int
	Retreats  int
	Reached   bool
	Optimal   int
	Policy    string
	CreatedAt time.Time
}

// Store wraps the database handle.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
// ":memory:" gives a private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("runlog: apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// NewSimID returns a fresh simulation id.
func NewSimID() uuid.UUID { return uuid.New() }

// Insert stores r, assigning ID and CreatedAt when they are zero, and
// returns the stored record.
func (s *Store) Insert(ctx context.Context, r Record) (Record, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.SimID == uuid.Nil {
		r.SimID = r.ID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, sim_id, maze, dim, run, moves, retreats, reached, optimal, policy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.SimID.String(), r.Maze, r.Dim, r.Run, r.Moves, r.Retreats,
		r.Reached, r.Optimal, r.Policy, r.CreatedAt,
	)
	if err != nil {
		return r, fmt.Errorf("runlog: insert: %w", err)
	}
	return r, nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id.String())
	r, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// List returns the most recent records, newest first. An empty maze matches
// every maze; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, maze string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		selectRuns+` WHERE (? = '' OR maze = ?) ORDER BY created_at DESC, sim_id, run DESC LIMIT ?`,
		maze, maze, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const selectRuns = `SELECT id, sim_id, maze, dim, run, moves, retreats, reached, optimal, policy, created_at FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (Record, error) {
	var (
		r         Record
		id, simID string
	)
	if err := sc.Scan(&id, &simID, &r.Maze, &r.Dim, &r.Run, &r.Moves, &r.Retreats,
		&r.Reached, &r.Optimal, &r.Policy, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return Record{}, fmt.Errorf("runlog: bad id %q: %w", id, err)
	}
	if r.SimID, err = uuid.Parse(simID); err != nil {
		return Record{}, fmt.Errorf("runlog: bad sim id %q: %w", simID, err)
	}
	return r, nil
}
