// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package resonance

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/resonance/internal/content"
)

// Config contains the tunable constants of the scorer.
type Config struct {
	// Weights defines the relative contribution of each component.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights Weights `json:"weights" koanf:"weights"`

	// DistanceBands map store distance onto a location score. Bands are
	// checked in order; the first band whose MaxKm exceeds the distance wins.
	DistanceBands []DistanceBand `json:"distance_bands" koanf:"distance_bands"`

	// FarScore applies when the distance exceeds every band.
	FarScore float64 `json:"far_score" koanf:"far_score"`

	// BusinessHours is used for stores that do not publish their own hours.
	BusinessHours content.Hours `json:"business_hours" koanf:"business_hours"`

	// EveningHours is the window that earns the generic evening boost.
	EveningHours content.Hours `json:"evening_hours" koanf:"evening_hours"`

	// TrainingHorizon is how far ahead a training session counts as upcoming.
	TrainingHorizon time.Duration `json:"training_horizon" koanf:"training_horizon"`

	// BehaviorBaseline is the behavior component of a visitor with no
	// recorded activity.
	BehaviorBaseline float64 `json:"behavior_baseline" koanf:"behavior_baseline"`
}

// Weights defines the relative contribution of each component.
type Weights struct {
	Interest float64 `json:"interest" koanf:"interest"`
	Location float64 `json:"location" koanf:"location"`
	Behavior float64 `json:"behavior" koanf:"behavior"`
	Temporal float64 `json:"temporal" koanf:"temporal"`
	Journey  float64 `json:"journey" koanf:"journey"`
}

// DistanceBand assigns Score to distances strictly below MaxKm.
type DistanceBand struct {
	MaxKm float64 `json:"max_km" koanf:"max_km"`
	Score float64 `json:"score" koanf:"score"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
// Weights that already sum to 1.0 are returned unchanged.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Normalize() Weights {
	sum := w.Interest + w.Location + w.Behavior + w.Temporal + w.Journey

	if sum == 0 {
		const equalWeight = 1.0 / 5.0
		return Weights{equalWeight, equalWeight, equalWeight, equalWeight, equalWeight}
	}
	if math.Abs(sum-1) < 1e-9 {
		return w
	}

	return Weights{
		Interest: w.Interest / sum,
		Location: w.Location / sum,
		Behavior: w.Behavior / sum,
		Temporal: w.Temporal / sum,
		Journey:  w.Journey / sum,
	}
}

// DefaultConfig returns the stock weights and thresholds.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Interest: 0.35,
			Location: 0.20,
			Behavior: 0.20,
			Temporal: 0.10,
			Journey:  0.15,
		},
		DistanceBands: []DistanceBand{
			{MaxKm: 1, Score: 1.0},
			{MaxKm: 3, Score: 0.8},
			{MaxKm: 5, Score: 0.6},
			{MaxKm: 10, Score: 0.4},
			{MaxKm: 20, Score: 0.2},
		},
		FarScore:         0.1,
		BusinessHours:    content.Hours{Open: 10, Close: 22},
		EveningHours:     content.Hours{Open: 18, Close: 22},
		TrainingHorizon:  30 * 24 * time.Hour,
		BehaviorBaseline: 0.2,
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"interest": w.Interest, "location": w.Location, "behavior": w.Behavior,
		"temporal": w.Temporal, "journey": w.Journey,
	} {
		if v < 0 {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, v)
		}
	}

	if len(c.DistanceBands) == 0 {
		return fmt.Errorf("distance_bands must not be empty")
	}
	prevKm, prevScore := 0.0, math.Inf(1)
	for i, b := range c.DistanceBands {
		if b.MaxKm <= prevKm {
			return fmt.Errorf("distance_bands[%d].max_km must increase, got %f after %f", i, b.MaxKm, prevKm)
		}
		if b.Score < 0 || b.Score > 1 {
			return fmt.Errorf("distance_bands[%d].score must be in [0, 1], got %f", i, b.Score)
		}
		if b.Score > prevScore {
			return fmt.Errorf("distance_bands[%d].score must not increase with distance, got %f after %f", i, b.Score, prevScore)
		}
		prevKm, prevScore = b.MaxKm, b.Score
	}
	if c.FarScore < 0 || c.FarScore > prevScore {
		return fmt.Errorf("far_score must be in [0, %f], got %f", prevScore, c.FarScore)
	}

	if err := validateHours("business_hours", c.BusinessHours); err != nil {
		return err
	}
	if err := validateHours("evening_hours", c.EveningHours); err != nil {
		return err
	}

	if c.TrainingHorizon <= 0 {
		return fmt.Errorf("training_horizon must be positive, got %v", c.TrainingHorizon)
	}
	if c.BehaviorBaseline < 0 || c.BehaviorBaseline > 1 {
		return fmt.Errorf("behavior_baseline must be in [0, 1], got %f", c.BehaviorBaseline)
	}
	return nil
}

func validateHours(name string, h content.Hours) error {
	if h.Open < 0 || h.Open > 23 || h.Close < 0 || h.Close > 24 {
		return fmt.Errorf("%s must be within 0-24, got %s", name, h)
	}
	if h.Open == h.Close {
		return fmt.Errorf("%s must not be empty, got %s", name, h)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.DistanceBands = append([]DistanceBand(nil), c.DistanceBands...)
	return &out
}
