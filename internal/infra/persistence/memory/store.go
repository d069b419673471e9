// Package memory provides a volatile configuration store used by tests and
// as the hydration cache of the database-backed stores.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bcaguide/pkg/domain"
)

var _ domain.ConfigStore = (*Store)(nil)

type entry struct {
	info domain.ConfigInfo
	args domain.SimulationArguments
}

// Store keeps configuration snapshots in process memory.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry), now: time.Now}
}

// Save stores args under name, overwriting any previous snapshot.
func (s *Store) Save(_ context.Context, name string, args domain.SimulationArguments) (domain.ConfigInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := domain.ConfigInfo{
		Name:       name,
		SavedAt:    s.now().UTC(),
		Simulation: args.Simulation,
	}
	s.entries[name] = entry{info: info, args: args}
	return info, nil
}

// Load returns the snapshot stored under name.
func (s *Store) Load(_ context.Context, name string) (domain.SimulationArguments, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	if !ok {
		return domain.SimulationArguments{}, domain.ErrConfigNotFound{Name: name}
	}
	return e.args, nil
}

// List returns snapshot metadata sorted by name.
func (s *Store) List(_ context.Context) ([]domain.ConfigInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ConfigInfo, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the snapshot under name, reporting whether it existed.
func (s *Store) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[name]; !ok {
		return false, nil
	}
	delete(s.entries, name)
	return true, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// Import replaces the store contents; used by database-backed stores to
// hydrate their cache at open.
func (s *Store) Import(infos []domain.ConfigInfo, argsByName map[string]domain.SimulationArguments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry, len(infos))
	for _, info := range infos {
		s.entries[info.Name] = entry{info: info, args: argsByName[info.Name]}
	}
}

// SetNow overrides the clock for tests.
func (s *Store) SetNow(now func() time.Time) { s.now = now }
