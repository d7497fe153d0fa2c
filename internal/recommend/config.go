// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/resonance/internal/content"
)

// Config contains all configuration for the recommendation composer.
type Config struct {
	// StrategyTimeout bounds each strategy run.
	// Default: 500ms.
	StrategyTimeout time.Duration `json:"strategy_timeout" koanf:"strategy_timeout"`

	// MaxItems caps the composed list. Zero keeps every item.
	MaxItems int `json:"max_items" koanf:"max_items"`

	// Thresholds are the minimum interest levels for targeted items.
	Thresholds InterestThresholds `json:"thresholds" koanf:"thresholds"`

	// NavigateRadiusKm is the distance below which a navigate action is offered.
	// Default: 5.
	NavigateRadiusKm float64 `json:"navigate_radius_km" koanf:"navigate_radius_km"`

	// NearbyRadiusKm is the store search radius.
	// Default: 20.
	NearbyRadiusKm float64 `json:"nearby_radius_km" koanf:"nearby_radius_km"`

	// NearbyLimit caps the number of stores fetched per lookup.
	NearbyLimit int `json:"nearby_limit" koanf:"nearby_limit"`

	BusinessHours content.Hours `json:"business_hours" koanf:"business_hours"`
	EveningHours  content.Hours `json:"evening_hours" koanf:"evening_hours"`

	// UrgentContactTTL is how long the decision-stage contact card stays valid.
	UrgentContactTTL time.Duration `json:"urgent_contact_ttl" koanf:"urgent_contact_ttl"`

	// MaxNextActions caps NextActions.
	MaxNextActions int `json:"max_next_actions" koanf:"max_next_actions"`
}

// InterestThresholds are per-category minimum interest levels (0-10).
type InterestThresholds struct {
	Franchise int `json:"franchise" koanf:"franchise"`
	Training  int `json:"training" koanf:"training"`
	Products  int `json:"products" koanf:"products"`
	Stores    int `json:"stores" koanf:"stores"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StrategyTimeout: 500 * time.Millisecond,
		Thresholds: InterestThresholds{
			Franchise: 7,
			Training:  5,
			Products:  6,
			Stores:    8,
		},
		NavigateRadiusKm: 5,
		NearbyRadiusKm:   20,
		NearbyLimit:      5,
		BusinessHours:    content.Hours{Open: 10, Close: 22},
		EveningHours:     content.Hours{Open: 18, Close: 22},
		UrgentContactTTL: 24 * time.Hour,
		MaxNextActions:   5,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StrategyTimeout <= 0 {
		return fmt.Errorf("strategy_timeout must be positive, got %v", c.StrategyTimeout)
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("max_items must be non-negative, got %d", c.MaxItems)
	}

	for name, v := range map[string]int{
		"franchise": c.Thresholds.Franchise,
		"training":  c.Thresholds.Training,
		"products":  c.Thresholds.Products,
		"stores":    c.Thresholds.Stores,
	} {
		if v < 0 || v > 10 {
			return fmt.Errorf("thresholds.%s must be in [0, 10], got %d", name, v)
		}
	}

	if c.NavigateRadiusKm <= 0 {
		return fmt.Errorf("navigate_radius_km must be positive, got %f", c.NavigateRadiusKm)
	}
	if c.NearbyRadiusKm < c.NavigateRadiusKm {
		return fmt.Errorf("nearby_radius_km must be >= navigate_radius_km, got %f < %f", c.NearbyRadiusKm, c.NavigateRadiusKm)
	}
	if c.NearbyLimit < 1 {
		return fmt.Errorf("nearby_limit must be positive, got %d", c.NearbyLimit)
	}
	if c.BusinessHours.Open == c.BusinessHours.Close {
		return fmt.Errorf("business_hours must not be empty, got %s", c.BusinessHours)
	}
	if c.EveningHours.Open == c.EveningHours.Close {
		return fmt.Errorf("evening_hours must not be empty, got %s", c.EveningHours)
	}
	if c.UrgentContactTTL <= 0 {
		return fmt.Errorf("urgent_contact_ttl must be positive, got %v", c.UrgentContactTTL)
	}
	if c.MaxNextActions < 1 || c.MaxNextActions > 5 {
		return fmt.Errorf("max_next_actions must be in [1, 5], got %d", c.MaxNextActions)
	}
	return nil
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - nested structs contain only value types
	out := *c
	return &out
}
