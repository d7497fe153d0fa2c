// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Scoring.Weights.Interest != 0.35 {
		t.Errorf("Scoring.Weights.Interest = %v, want 0.35", cfg.Scoring.Weights.Interest)
	}
	if cfg.Recommend.Thresholds.Stores != 8 {
		t.Errorf("Recommend.Thresholds.Stores = %d, want 8", cfg.Recommend.Thresholds.Stores)
	}
	if cfg.Events.Topic != "visitor.events" {
		t.Errorf("Events.Topic = %q, want visitor.events", cfg.Events.Topic)
	}
	if cfg.Store.FlushInterval != 30*time.Second {
		t.Errorf("Store.FlushInterval = %v, want 30s", cfg.Store.FlushInterval)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := s.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestLoggingConfig_ToLogging(t *testing.T) {
	t.Parallel()

	got := LoggingConfig{Level: "debug", Format: "console", Caller: true}.ToLogging()
	if got.Level != "debug" || got.Format != "console" || !got.Caller {
		t.Errorf("ToLogging() = %+v", got)
	}
	if !got.Timestamp {
		t.Error("ToLogging() should keep timestamps enabled")
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative weight", func(c *Config) { c.Scoring.Weights.Location = -0.1 }},
		{"empty distance bands", func(c *Config) { c.Scoring.DistanceBands = nil }},
		{"threshold above ten", func(c *Config) { c.Recommend.Thresholds.Franchise = 11 }},
		{"zero strategy timeout", func(c *Config) { c.Recommend.StrategyTimeout = 0 }},
		{"zero scroll rate", func(c *Config) { c.Behavior.ScrollRatePerSecond = 0 }},
		{"zero breaker timeout", func(c *Config) { c.Catalog.Breaker.Timeout = 0 }},
		{"rate limit too small", func(c *Config) { c.Security.RateLimitReqs = 0 }},
		{"rate limit window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = EnvProduction }},
		{"persist without path", func(c *Config) { c.Store.Path = "" }},
		{"events without topic", func(c *Config) { c.Events.Topic = "" }},
		{"zero flush interval", func(c *Config) { c.Store.FlushInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should have failed")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_Allowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"rate limit disabled ignores bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}},
		{"production with explicit origins", func(c *Config) {
			c.Server.Environment = EnvProduction
			c.Security.CORSOrigins = []string{"https://shop.example"}
		}},
		{"in-memory store needs no path", func(c *Config) {
			c.Store.InMemory = true
			c.Store.Path = ""
		}},
		{"events disabled without topic", func(c *Config) {
			c.Events.Enabled = false
			c.Events.Topic = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
