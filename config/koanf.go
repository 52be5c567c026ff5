package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "VENTUREMATCH_"

// ConfigPathEnvVar names the config file when no path is passed to Load.
const ConfigPathEnvVar = EnvPrefix + "CONFIG"

// envMappings maps environment variable names, without EnvPrefix and
// lowercased, onto koanf paths.
var envMappings = map[string]string{
	"log_level": "log.level",

	"db":           "storage.path",
	"storage_path": "storage.path",

	"dataset":       "catalog.dataset",
	"workers":       "catalog.workers",
	"location_mode": "catalog.location_mode",

	"threshold":        "recommend.threshold",
	"hybrid_expansion": "recommend.hybrid_expansion",

	"weight_industry":         "recommend.weights.industry",
	"weight_stage":            "recommend.weights.stage",
	"weight_location":         "recommend.weights.location",
	"weight_team":             "recommend.weights.team",
	"weight_year":             "recommend.weights.year",
	"weight_business_model":   "recommend.weights.business_model",
	"weight_revenue_stage":    "recommend.weights.revenue_stage",
	"weight_customer_segment": "recommend.weights.customer_segment",

	"metrics_file": "metrics.textfile",
}

// Load builds a Config from three layers: built-in defaults, the YAML file at
// path (or $VENTUREMATCH_CONFIG when path is empty; no file is fine) and
// VENTUREMATCH_* environment variables. The result is validated.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment
	// VENTUREMATCH_LOG_LEVEL -> log.level
	// VENTUREMATCH_WEIGHT_INDUSTRY -> recommend.weights.industry
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	// Unmapped keys are skipped, including the config path itself.
	return ""
}
