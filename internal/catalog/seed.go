// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/validation"
)

//go:embed seed.json
var defaultSeed []byte

// Seed is the on-disk catalog format.
type Seed struct {
	Content []content.Item `json:"content" validate:"dive"`
	Stores  []content.Item `json:"stores" validate:"dive"`
}

// DefaultSeed returns the embedded catalog.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed file. An empty path returns the embedded seed.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes and validates seed JSON.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if err := validation.ValidateStruct(&seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	seen := make(map[string]struct{}, len(seed.Content)+len(seed.Stores))
	for _, it := range append(append([]content.Item{}, seed.Content...), seed.Stores...) {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSeed, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	for _, s := range seed.Stores {
		if s.Coordinates == nil {
			return nil, fmt.Errorf("%w: store %q has no coordinates", ErrInvalidSeed, s.ID)
		}
	}
	return &seed, nil
}
