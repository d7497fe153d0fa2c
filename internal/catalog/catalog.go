// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/content"
)

// Config selects the seed and tunes the circuit breakers.
type Config struct {
	// SeedPath is a JSON seed file. Empty uses the embedded catalog.
	SeedPath string        `koanf:"seed_path"`
	Breaker  BreakerConfig `koanf:"breaker"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{Breaker: DefaultBreakerConfig()}
}

// Catalog bundles the repositories built from one seed.
type Catalog struct {
	contents *MemoryContentRepository
	stores   *MemoryStoreRepository

	// Contents and Stores are the breaker-guarded views handed to the composer.
	Contents *ResilientContentRepository
	Stores   *ResilientStoreRepository
}

// New builds a catalog from seed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(seed *Seed, breaker BreakerConfig, logger zerolog.Logger) *Catalog {
	contents := NewMemoryContentRepository(seed.Content)
	stores := NewMemoryStoreRepository(seed.Stores)
	return &Catalog{
		contents: contents,
		stores:   stores,
		Contents: NewResilientContentRepository(contents, breaker, logger),
		Stores:   NewResilientStoreRepository(stores, breaker, logger),
	}
}

// Open loads the seed named by cfg and builds the catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Catalog, error) {
	seed, err := LoadSeed(cfg.SeedPath)
	if err != nil {
		return nil, err
	}
	c := New(seed, cfg.Breaker, logger)
	logger.Info().
		Int("content_items", c.contents.Len()).
		Int("stores", c.stores.Len()).
		Str("seed", seedName(cfg.SeedPath)).
		Msg("Catalog loaded")
	return c, nil
}

// Get finds an item by ID among content items first, then stores.
func (c *Catalog) Get(ctx context.Context, id string) (content.Item, error) {
	it, err := c.contents.Get(ctx, id)
	if err == nil {
		return it, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return content.Item{}, err
	}
	return c.stores.Get(ctx, id)
}

// Len returns the number of content items and stores.
func (c *Catalog) Len() (contents, stores int) {
	return c.contents.Len(), c.stores.Len()
}

func seedName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
