// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/resonance/internal/behavior"
	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/contextstore"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/resonance"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/resonance/config.yaml",
	"/etc/resonance/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     EnvDevelopment,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Scoring:   *resonance.DefaultConfig(),
		Recommend: *recommend.DefaultConfig(),
		Catalog:   catalog.DefaultConfig(),
		Store: StoreConfig{
			Persist:       true,
			Path:          "/data/resonance",
			SnapshotTTL:   90 * 24 * time.Hour,
			FlushInterval: 30 * time.Second,
			IdleTTL:       30 * time.Minute,
			GCInterval:    10 * time.Minute,
		},
		Events: EventsConfig{
			Enabled: true,
			Topic:   contextstore.TopicVisitorEvents,
			Buffer:  256,
		},
		Behavior: behavior.DefaultConfig(),
	}
}

// Load reads configuration using Koanf with the following precedence:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any mapped setting
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFrom is Load with an explicit config file. The file must exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
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

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML already yields slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Resonance scoring
	"scoring_weight_interest":   "scoring.weights.interest",
	"scoring_weight_location":   "scoring.weights.location",
	"scoring_weight_behavior":   "scoring.weights.behavior",
	"scoring_weight_temporal":   "scoring.weights.temporal",
	"scoring_weight_journey":    "scoring.weights.journey",
	"scoring_far_score":         "scoring.far_score",
	"scoring_training_horizon":  "scoring.training_horizon",
	"scoring_behavior_baseline": "scoring.behavior_baseline",

	// Recommendation composer
	"recommend_strategy_timeout":    "recommend.strategy_timeout",
	"recommend_max_items":           "recommend.max_items",
	"recommend_franchise_threshold": "recommend.thresholds.franchise",
	"recommend_training_threshold":  "recommend.thresholds.training",
	"recommend_products_threshold":  "recommend.thresholds.products",
	"recommend_stores_threshold":    "recommend.thresholds.stores",
	"recommend_navigate_radius_km":  "recommend.navigate_radius_km",
	"recommend_nearby_radius_km":    "recommend.nearby_radius_km",
	"recommend_nearby_limit":        "recommend.nearby_limit",
	"recommend_urgent_contact_ttl":  "recommend.urgent_contact_ttl",
	"recommend_max_next_actions":    "recommend.max_next_actions",

	// Catalog
	"catalog_seed_path":                 "catalog.seed_path",
	"catalog_breaker_max_requests":      "catalog.breaker.max_requests",
	"catalog_breaker_interval":          "catalog.breaker.interval",
	"catalog_breaker_timeout":           "catalog.breaker.timeout",
	"catalog_breaker_failure_threshold": "catalog.breaker.failure_threshold",

	// Visitor context store
	"store_persist":        "store.persist",
	"store_path":           "store.path",
	"store_in_memory":      "store.in_memory",
	"store_snapshot_ttl":   "store.snapshot_ttl",
	"store_flush_interval": "store.flush_interval",
	"store_idle_ttl":       "store.idle_ttl",
	"store_gc_interval":    "store.gc_interval",

	// Event bus
	"events_enabled": "events.enabled",
	"events_topic":   "events.topic",
	"events_buffer":  "events.buffer",

	// Behavior tracking
	"behavior_interest_depth":         "behavior.interest_depth",
	"behavior_default_interest_level": "behavior.default_interest_level",
	"behavior_scroll_resonance_delta": "behavior.scroll_resonance_delta",
	"behavior_scroll_rate_per_second": "behavior.scroll_rate_per_second",
	"behavior_scroll_burst":           "behavior.scroll_burst",
	"behavior_idle_ttl":               "behavior.idle_ttl",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SCORING_WEIGHT_INTEREST -> scoring.weights.interest
//   - STORE_PATH -> store.path
//
// Unmapped keys return "" so unrelated environment variables never leak into config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
