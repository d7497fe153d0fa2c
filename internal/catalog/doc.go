// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package catalog serves content and store lookups to the recommendation
composer and the HTTP API.

The in-memory repositories are built from a Seed, either the embedded
default (a Kunming tea house brand) or a JSON file given by configuration:

	seed, err := catalog.LoadSeed(path) // "" selects the embedded seed
	cat, err := catalog.New(seed)

Content items are indexed by their canonical category ("about", "products",
"franchise", "training", "news", "stores", "contact"), so
GetByType(ctx, "products") returns the first product-category item in seed
order. Stores are indexed spatially with geo.SpatialIndex.

ResilientContentRepository and ResilientStoreRepository wrap any repository
with a gobreaker circuit breaker. Failures and rejections surface as
ErrLookupFailure, which the composer treats as a failed strategy.
*/
package catalog
