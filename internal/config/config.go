// Package config loads hexsim settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/hexsim/internal/economy"
	"github.com/talgya/hexsim/internal/world"
)

// Config holds every runtime setting. Command-line flags override it.
type Config struct {
	Radius       int           `env:"HEXSIM_RADIUS" envDefault:"10"`
	Seed         int64         `env:"HEXSIM_SEED" envDefault:"0"` // 0 picks a random seed
	Terrain      string        `env:"HEXSIM_TERRAIN" envDefault:"uniform"`
	MaxTurns     int           `env:"HEXSIM_MAX_TURNS" envDefault:"200"`
	TurnInterval time.Duration `env:"HEXSIM_TURN_INTERVAL" envDefault:"0s"`
	GrowEvery    int           `env:"HEXSIM_GROW_EVERY" envDefault:"0"`
	CatalogPath  string        `env:"HEXSIM_CATALOG"` // Empty uses the built-in catalog
	JournalPath  string        `env:"HEXSIM_JOURNAL"` // Empty disables the journal
	LogLevel     string        `env:"HEXSIM_LOG_LEVEL" envDefault:"info"`
	Autopilot    bool          `env:"HEXSIM_AUTOPILOT" envDefault:"true"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Radius < 1 {
		return fmt.Errorf("config: radius %d must be at least 1", c.Radius)
	}
	if c.MaxTurns < 0 || c.GrowEvery < 0 || c.TurnInterval < 0 {
		return fmt.Errorf("config: max turns, grow interval and turn interval must not be negative")
	}
	switch world.TerrainMode(c.Terrain) {
	case world.TerrainUniform, world.TerrainNoise:
	default:
		return fmt.Errorf("config: unknown terrain mode %q", c.Terrain)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// GenConfig returns the grid generation parameters.
func (c Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		Radius: c.Radius,
		Seed:   c.Seed,
		Mode:   world.TerrainMode(c.Terrain),
	}
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}

// Catalog returns the building catalog, read from CatalogPath if set.
func (c Config) Catalog() (economy.Catalog, error) {
	if c.CatalogPath == "" {
		return economy.DefaultCatalog(), nil
	}
	return economy.LoadCatalog(c.CatalogPath)
}
