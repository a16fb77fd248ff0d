// Package config loads wyrmgate configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds all wyrmgate configuration.
type Config struct {
	Name    string        `yaml:"name"`
	Storage StorageConfig `yaml:"storage"`
	Combat  CombatConfig  `yaml:"combat"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and configures the session store.
type StorageConfig struct {
	Driver       string `yaml:"driver"` // memory, sqlite
	DatabasePath string `yaml:"database_path"`
}

// CombatConfig configures combat resolution.
type CombatConfig struct {
	// DiceSeed seeds the dice roller; 0 means seed from the clock.
	DiceSeed int64 `yaml:"dice_seed"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Name: "wyrmgate",
		Storage: StorageConfig{
			Driver:       DriverMemory,
			DatabasePath: "wyrmgate.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path, backfilling defaults for zero values.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverMemory
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "wyrmgate.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the rest of the system cannot honor.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
