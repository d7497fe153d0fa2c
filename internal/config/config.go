// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/resonance/internal/behavior"
	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/resonance"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables, in that order of precedence.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   LoggingConfig    `koanf:"logging"`
	Security  SecurityConfig   `koanf:"security"`
	Scoring   resonance.Config `koanf:"scoring"`
	Recommend recommend.Config `koanf:"recommend"`
	Catalog   catalog.Config   `koanf:"catalog"`
	Store     StoreConfig      `koanf:"store"`
	Events    EventsConfig     `koanf:"events"`
	Behavior  behavior.Config  `koanf:"behavior"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// SecurityConfig holds CORS and rate limiting settings for the public API.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// StoreConfig configures the visitor context store and its snapshot database.
type StoreConfig struct {
	// Persist enables BadgerDB snapshots so returning visitors keep their context.
	Persist bool `koanf:"persist"`

	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// SnapshotTTL expires snapshots of visitors who never return.
	SnapshotTTL time.Duration `koanf:"snapshot_ttl" validate:"gte=0"`

	// FlushInterval is how often dirty contexts are written to the database.
	FlushInterval time.Duration `koanf:"flush_interval" validate:"gt=0"`

	// IdleTTL is how long a visitor context stays in memory without events.
	IdleTTL time.Duration `koanf:"idle_ttl" validate:"gt=0"`

	// GCInterval is how often the value log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval" validate:"gt=0"`
}

// EventsConfig configures the in-process visitor event bus.
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Topic   string `koanf:"topic"`
	Buffer  int64  `koanf:"buffer" validate:"gte=0"`
}

// Environment modes.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ToLogging converts the loaded section into a logging.Config.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}
