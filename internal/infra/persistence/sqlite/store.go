// Package sqlite persists configuration snapshots to a single-file SQLite
// database, one JSON blob per named configuration.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bcaguide/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ domain.ConfigStore = (*Store)(nil)

// Store is a SQLite-backed configuration store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore opens (creating if necessary) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "bcaguide.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS configs (
		name TEXT PRIMARY KEY,
		simulation TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create configs table: %w", err)
	}
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Save upserts args under name.
func (s *Store) Save(ctx context.Context, name string, args domain.SimulationArguments) (domain.ConfigInfo, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return domain.ConfigInfo{}, fmt.Errorf("encode configuration: %w", err)
	}
	info := domain.ConfigInfo{
		Name:       name,
		SavedAt:    s.now().UTC(),
		Simulation: args.Simulation,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO configs(name,simulation,saved_at,payload) VALUES(?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET simulation=excluded.simulation, saved_at=excluded.saved_at, payload=excluded.payload`,
		name, info.Simulation, info.SavedAt.Format(time.RFC3339Nano), payload)
	if err != nil {
		return domain.ConfigInfo{}, fmt.Errorf("upsert %s: %w", name, err)
	}
	return info, nil
}

// Load returns the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (domain.SimulationArguments, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM configs WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SimulationArguments{}, domain.ErrConfigNotFound{Name: name}
	}
	if err != nil {
		return domain.SimulationArguments{}, fmt.Errorf("select %s: %w", name, err)
	}
	var args domain.SimulationArguments
	if err := json.Unmarshal(payload, &args); err != nil {
		return domain.SimulationArguments{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return args, nil
}

// List returns snapshot metadata sorted by name.
func (s *Store) List(ctx context.Context) ([]domain.ConfigInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, simulation, saved_at FROM configs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.ConfigInfo
	for rows.Next() {
		var info domain.ConfigInfo
		var savedAt string
		if err := rows.Scan(&info.Name, &info.Simulation, &savedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if info.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			return nil, fmt.Errorf("parse saved_at of %s: %w", info.Name, err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configs: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot under name, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM configs WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
