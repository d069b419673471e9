// Package persistence selects a configuration store backend from the
// environment.
package persistence

import (
	"fmt"
	"os"
	"strings"

	"bcaguide/internal/infra/persistence/memory"
	"bcaguide/internal/infra/persistence/postgres"
	"bcaguide/internal/infra/persistence/sqlite"
	"bcaguide/pkg/domain"
)

// Environment variables understood by Open.
const (
	EnvDriver      = "BCAGUIDE_PERSISTENCE_DRIVER"
	EnvSQLitePath  = "BCAGUIDE_SQLITE_PATH"
	EnvPostgresDSN = "BCAGUIDE_POSTGRES_DSN"
)

// Open returns the configuration store selected by BCAGUIDE_PERSISTENCE_DRIVER
// (sqlite by default).
func Open() (domain.ConfigStore, error) {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv(EnvDriver)))
	switch driver {
	case "", "sqlite":
		return sqlite.NewStore(os.Getenv(EnvSQLitePath))
	case "postgres":
		return postgres.NewStore(os.Getenv(EnvPostgresDSN))
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", driver)
	}
}
