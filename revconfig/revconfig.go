// Package revconfig loads YAML configuration for a catalog run: widths to
// cover, gate budgets, SAT backend selection, and store location. Grounded
// on the yaml.v3 load-into-struct idiom used across the example pack's
// config loaders (e.g. cmd/aleutian/config/loader.go), adapted to this
// module's single explicit Load(path) rather than a home-directory
// singleton, since a catalog run is parameterized per invocation rather
// than per user.
package revconfig

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SolverConfig selects and configures the SAT backend.
type SolverConfig struct {
	Backend    string   `yaml:"backend"`     // "gophersat" or "external"
	Binary     string   `yaml:"binary"`      // external binary name, if Backend == "external"
	Args       []string `yaml:"args"`
	TimeoutSec int      `yaml:"timeout_sec"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend"` // "memory" or "badger"
	Dir     string `yaml:"dir"`     // badger data directory, if Backend == "badger"
}

// DimensionConfig names one (width, gate count) cell of the catalog sweep.
type DimensionConfig struct {
	Width int `yaml:"width"`
	Gates int `yaml:"gates"`
}

// Config is the full configuration surface for a catalog generation run.
type Config struct {
	Dimensions       []DimensionConfig `yaml:"dimensions"`
	Solver           SolverConfig      `yaml:"solver"`
	Store            StoreConfig       `yaml:"store"`
	MaxUnrollNodes   int               `yaml:"max_unroll_nodes"`
	Workers          int               `yaml:"workers"`
	LogLevel         string            `yaml:"log_level"`
}

// Default returns the configuration a fresh install ships with: a single
// small dimension, the in-process solver, and an in-memory store.
func Default() Config {
	return Config{
		Dimensions: []DimensionConfig{{Width: 3, Gates: 4}},
		Solver:     SolverConfig{Backend: "gophersat", TimeoutSec: 30},
		Store:      StoreConfig{Backend: "memory"},
		Workers:    1,
		LogLevel:   "info",
	}
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
