// Package config loads venturematch settings from defaults, an optional YAML
// file and VENTUREMATCH_ environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/recommend"
)

var (
	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the complete venturematch configuration.
type Config struct {
	Log       LogConfig        `koanf:"log"`
	Storage   StorageConfig    `koanf:"storage"`
	Catalog   CatalogConfig    `koanf:"catalog"`
	Recommend recommend.Config `koanf:"recommend"`
	Metrics   MetricsConfig    `koanf:"metrics"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `koanf:"level"`
}

// StorageConfig locates the snapshot database.
type StorageConfig struct {
	// Path is the BadgerDB directory. Empty means no persistence.
	Path string `koanf:"path"`
}

// CatalogConfig controls how catalogs are built from the raw dataset.
type CatalogConfig struct {
	// Dataset is the path of the raw investors.json file.
	Dataset string `koanf:"dataset"`

	// Workers sizes the build worker pool. Zero means one per CPU.
	Workers int `koanf:"workers"`

	// LocationMode is "city" or "region".
	LocationMode string `koanf:"location_mode"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile, when set, receives the metrics in Prometheus text format
	// after each command.
	Textfile string `koanf:"textfile"`
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Catalog: CatalogConfig{
			Workers:      0, // 0 = use runtime.NumCPU()
			LocationMode: string(canon.LocationCity),
		},
		Recommend: recommend.DefaultConfig(),
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLevel(c.Log.Level)
	return level
}

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
	return level, nil
}

func (c *Config) validateLogging() error {
	_, err := ParseLevel(c.Log.Level)
	return err
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Workers < 0 {
		return fmt.Errorf("%w: catalog.workers must not be negative, got %d", ErrInvalidConfig, c.Catalog.Workers)
	}
	if _, err := canon.ParseLocationMode(c.Catalog.LocationMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
