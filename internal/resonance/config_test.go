// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package resonance

import (
	"math"
	"testing"

	"github.com/tomtom215/resonance/internal/content"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative weight", func(c *Config) { c.Weights.Temporal = -1 }},
		{"no bands", func(c *Config) { c.DistanceBands = nil }},
		{"bands out of order", func(c *Config) { c.DistanceBands[1].MaxKm = 0.5 }},
		{"band score above one", func(c *Config) { c.DistanceBands[0].Score = 1.5 }},
		{"band score increasing", func(c *Config) { c.DistanceBands[2].Score = 0.9 }},
		{"far score above last band", func(c *Config) { c.FarScore = 0.5 }},
		{"empty business hours", func(c *Config) { c.BusinessHours = content.Hours{Open: 10, Close: 10} }},
		{"evening out of range", func(c *Config) { c.EveningHours = content.Hours{Open: 18, Close: 25} }},
		{"zero training horizon", func(c *Config) { c.TrainingHorizon = 0 }},
		{"baseline above one", func(c *Config) { c.BehaviorBaseline = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestWeights_Normalize(t *testing.T) {
	t.Parallel()

	w := Weights{Interest: 2, Location: 1, Behavior: 1, Temporal: 0, Journey: 0}.Normalize()
	if math.Abs(w.Interest-0.5) > 1e-9 || math.Abs(w.Location-0.25) > 1e-9 {
		t.Errorf("Normalize() = %+v", w)
	}

	zero := Weights{}.Normalize()
	if math.Abs(zero.Journey-0.2) > 1e-9 {
		t.Errorf("Normalize() of zero weights = %+v, want equal weights", zero)
	}

	def := DefaultConfig().Weights
	if def.Normalize() != def {
		t.Error("Normalize() should leave unit-sum weights unchanged")
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	cp := orig.Clone()
	cp.DistanceBands[0].Score = 0.1
	if orig.DistanceBands[0].Score != 1.0 {
		t.Error("Clone shares distance bands with original")
	}
}
