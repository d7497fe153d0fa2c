// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package behavior

import "testing"

func TestPageCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page string
		want string
		ok   bool
	}{
		{"/franchise", "franchise", true},
		{"/training", "training", true},
		{"/products", "products", true},
		{"/stores", "stores", true},
		{"/about", "about", true},
		{"/stores/wuhua?ref=map", "stores", true},
		{"/Products/", "products", true},
		{"/", "", false},
		{"", "", false},
		{"/careers", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			t.Parallel()
			got, ok := PageCategory(tt.page)
			if got != tt.want || ok != tt.ok {
				t.Errorf("PageCategory(%q) = %q, %v, want %q, %v", tt.page, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.InterestDepth = 120 },
		func(c *Config) { c.DefaultInterestLevel = 11 },
		func(c *Config) { c.ScrollRatePerSecond = 0 },
		func(c *Config) { c.ScrollBurst = 0 },
		func(c *Config) { c.IdleTTL = 0 },
	}
	for i, mutate := range bad {
		c := DefaultConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: Validate() = nil", i)
		}
	}
}
