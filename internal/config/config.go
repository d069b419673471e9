// Package config loads the application configuration from a YAML file,
// falling back to defaults when no file is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the configuration file location.
const EnvPath = "BCAGUIDE_CONFIG"

// TargetDefaults seeds the target settings panel of a new session.
type TargetDefaults struct {
	Thickness float64 `yaml:"thickness"`
	Segments  int     `yaml:"segments"`
}

// Config is the application configuration.
type Config struct {
	// Simulation names the external program input decks are prepared for.
	Simulation string `yaml:"simulation"`
	// MaxComponents bounds the combined beam and target row count.
	MaxComponents int            `yaml:"max_components"`
	Target        TargetDefaults `yaml:"target"`
	// MetricsAddr, when set, exposes Prometheus metrics on that address.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Simulation:    "sdtrimsp",
		MaxComponents: 5,
		Target:        TargetDefaults{Thickness: 1000, Segments: 100},
	}
}

// Load reads the configuration at path. An empty path falls back to
// BCAGUIDE_CONFIG, then to bcaguide.yaml; a missing file yields defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = "bcaguide.yaml"
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MaxComponents <= 0 {
		return Config{}, fmt.Errorf("%s: max_components must be positive", path)
	}
	if cfg.Target.Thickness < 0 || cfg.Target.Segments < 0 {
		return Config{}, fmt.Errorf("%s: target thickness and segments must not be negative", path)
	}
	return cfg, nil
}
