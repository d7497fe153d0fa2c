// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package behavior

import (
	"fmt"
	"time"
)

// Config tunes the aggregator.
type Config struct {
	// InterestDepth is the scroll percentage above which a page's category
	// becomes an interest.
	InterestDepth float64 `koanf:"interest_depth" validate:"gte=0,lte=100"`

	// DefaultInterestLevel is the level assigned to scroll-derived interests.
	DefaultInterestLevel int `koanf:"default_interest_level" validate:"gte=0,lte=10"`

	// ScrollResonanceDelta is added to the visitor's resonance when a scroll
	// creates a new interest.
	ScrollResonanceDelta float64 `koanf:"scroll_resonance_delta" validate:"gte=0,lte=1"`

	// ScrollRatePerSecond and ScrollBurst bound scroll processing per visitor.
	ScrollRatePerSecond float64 `koanf:"scroll_rate_per_second" validate:"gt=0"`
	ScrollBurst         int     `koanf:"scroll_burst" validate:"gte=1"`

	// IdleTTL is how long an aggregator may sit unused before Manager drops it.
	IdleTTL time.Duration `koanf:"idle_ttl" validate:"gt=0"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		InterestDepth:        50,
		DefaultInterestLevel: 5,
		ScrollResonanceDelta: 0.05,
		ScrollRatePerSecond:  4,
		ScrollBurst:          8,
		IdleTTL:              30 * time.Minute,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.InterestDepth < 0 || c.InterestDepth > 100 {
		return fmt.Errorf("interest depth must be within 0..100, got %v", c.InterestDepth)
	}
	if c.DefaultInterestLevel < 0 || c.DefaultInterestLevel > 10 {
		return fmt.Errorf("default interest level must be within 0..10, got %d", c.DefaultInterestLevel)
	}
	if c.ScrollRatePerSecond <= 0 || c.ScrollBurst < 1 {
		return fmt.Errorf("scroll rate must be positive with burst >= 1")
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("idle TTL must be positive")
	}
	return nil
}
