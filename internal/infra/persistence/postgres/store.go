// Package postgres provides a Postgres-backed configuration store that keeps
// a hydrated in-memory cache for reads and writes through to the database.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bcaguide/internal/infra/persistence/memory"
	"bcaguide/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

var _ domain.ConfigStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/bcaguide?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists configurations to Postgres, serving reads from a cache
// hydrated at open.
type Store struct {
	cache *memory.Store
	db    *sql.DB
	mu    sync.Mutex
	now   func() time.Time
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), ensures the configs table exists, and hydrates the cache.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS configs (
		name TEXT PRIMARY KEY,
		simulation TEXT NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure configs table: %w", err)
	}
	s := &Store{cache: memory.NewStore(), db: db, now: time.Now}
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name, simulation, saved_at, payload FROM configs`)
	if err != nil {
		return fmt.Errorf("select configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []domain.ConfigInfo
	argsByName := make(map[string]domain.SimulationArguments)
	for rows.Next() {
		var info domain.ConfigInfo
		var payload []byte
		if err := rows.Scan(&info.Name, &info.Simulation, &info.SavedAt, &payload); err != nil {
			return fmt.Errorf("scan configs: %w", err)
		}
		var args domain.SimulationArguments
		if err := json.Unmarshal(payload, &args); err != nil {
			return fmt.Errorf("decode %s: %w", info.Name, err)
		}
		infos = append(infos, info)
		argsByName[info.Name] = args
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate configs: %w", err)
	}
	s.cache.Import(infos, argsByName)
	return nil
}

// Save writes args through to Postgres and updates the cache.
func (s *Store) Save(ctx context.Context, name string, args domain.SimulationArguments) (domain.ConfigInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.Marshal(args)
	if err != nil {
		return domain.ConfigInfo{}, fmt.Errorf("encode configuration: %w", err)
	}
	savedAt := s.now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO configs(name,simulation,saved_at,payload) VALUES($1,$2,$3,$4)
		ON CONFLICT(name) DO UPDATE SET simulation=EXCLUDED.simulation, saved_at=EXCLUDED.saved_at, payload=EXCLUDED.payload`,
		name, args.Simulation, savedAt, payload); err != nil {
		return domain.ConfigInfo{}, fmt.Errorf("upsert %s: %w", name, err)
	}
	s.cache.SetNow(func() time.Time { return savedAt })
	return s.cache.Save(ctx, name, args)
}

// Load returns the cached snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (domain.SimulationArguments, error) {
	return s.cache.Load(ctx, name)
}

// List returns cached snapshot metadata sorted by name.
func (s *Store) List(ctx context.Context) ([]domain.ConfigInfo, error) {
	return s.cache.List(ctx)
}

// Delete removes the snapshot under name from Postgres and the cache.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM configs WHERE name = $1`, name); err != nil {
		return false, fmt.Errorf("delete %s: %w", name, err)
	}
	return s.cache.Delete(ctx, name)
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
