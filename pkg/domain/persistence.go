package domain

import (
	"context"
	"time"
)

// ConfigInfo describes a stored configuration snapshot.
type ConfigInfo struct {
	Name       string    `json:"name"`
	SavedAt    time.Time `json:"saved_at"`
	Simulation string    `json:"simulation,omitempty"`
}

// ConfigStore is the minimal abstraction over durable configuration backends.
// Implementations snapshot the full SimulationArguments tree under a name;
// saving an existing name overwrites it.
type ConfigStore interface {
	Save(ctx context.Context, name string, args SimulationArguments) (ConfigInfo, error)
	Load(ctx context.Context, name string) (SimulationArguments, error)
	List(ctx context.Context) ([]ConfigInfo, error)
	Delete(ctx context.Context, name string) (bool, error)
	Close() error
}

// ErrConfigNotFound is returned by Load when no snapshot exists under the
// requested name.
type ErrConfigNotFound struct {
	Name string
}

func (e ErrConfigNotFound) Error() string {
	return "configuration " + e.Name + " not found"
}
