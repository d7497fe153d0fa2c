// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import "errors"

var (
	// ErrNotFound is returned when no item has the requested ID.
	ErrNotFound = errors.New("catalog item not found")

	// ErrLookupFailure wraps any repository failure or circuit breaker rejection.
	ErrLookupFailure = errors.New("catalog lookup failed")

	// ErrInvalidSeed is returned for seed data that fails validation.
	ErrInvalidSeed = errors.New("invalid catalog seed")
)
