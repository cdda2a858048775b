// Package store persists configuration snapshots in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
)

// DefaultSnapshotName is used when the caller does not name a snapshot,
// matching the single-slot behavior most users want.
const DefaultSnapshotName = "default"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name, created_at DESC);
`

// Snapshot is a stored configuration with its metadata.
type Snapshot struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	Config    *domain.ForecastConfig `json:"config"`
	CreatedAt time.Time              `json:"created_at"`
}

// Store wraps the snapshot database. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a new snapshot of the configuration under the given name.
// Each save is a new row; Load returns the most recent one.
func (s *Store) Save(ctx context.Context, name string, cfg *domain.ForecastConfig) (*Snapshot, error) {
	if name == "" {
		name = DefaultSnapshotName
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}

	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (name, data, created_at) VALUES (?, ?, ?)`,
		name, string(data), createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: id, Name: name, Config: cfg, CreatedAt: createdAt}, nil
}

// Load returns the most recent snapshot with the given name, or
// sql.ErrNoRows when none exists.
func (s *Store) Load(ctx context.Context, name string) (*Snapshot, error) {
	if name == "" {
		name = DefaultSnapshotName
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, data, created_at FROM snapshots WHERE name = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		name)
	return scanSnapshot(row)
}

// Latest returns the most recently saved snapshot regardless of name, or
// sql.ErrNoRows when the store is empty.
func (s *Store) Latest(ctx context.Context) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, data, created_at FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanSnapshot(row)
}

// List returns the names of all snapshots with their latest save time.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, data, created_at FROM snapshots
		 WHERE id IN (SELECT MAX(id) FROM snapshots GROUP BY name)
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snap, err := scanSnapshotRows(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}
	return snapshots, rows.Err()
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	var data string
	if err := row.Scan(&snap.ID, &snap.Name, &data, &snap.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &snap.Config); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", snap.Name, err)
	}
	return &snap, nil
}

func scanSnapshotRows(rows *sql.Rows) (*Snapshot, error) {
	var snap Snapshot
	var data string
	if err := rows.Scan(&snap.ID, &snap.Name, &data, &snap.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &snap.Config); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", snap.Name, err)
	}
	return &snap, nil
}
