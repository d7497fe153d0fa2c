// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/resonance/internal/behavior"
	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/contextstore"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/resonance"
)

// VisitorStore is the context store as seen by the API.
type VisitorStore interface {
	contextstore.Store
	Delete(ctx context.Context, visitorID string) error
}

// Catalog resolves content IDs for resonance scoring.
type Catalog interface {
	Get(ctx context.Context, id string) (content.Item, error)
	Len() (contents, stores int)
}

// BreakerState reports a circuit breaker state ("closed", "half-open", "open").
type BreakerState interface {
	State() string
}

// Dependencies are the collaborators a Handler serves from.
type Dependencies struct {
	Store    VisitorStore
	Sessions *behavior.Manager
	Scorer   *resonance.Scorer
	Composer *recommend.Composer
	Catalog  Catalog

	// Breakers are reported by the readiness probe; any open breaker makes
	// the service not ready.
	Breakers map[string]BreakerState

	Clock   clock.Clock
	Version string
}

// Handler serves every API endpoint.
type Handler struct {
	store     VisitorStore
	sessions  *behavior.Manager
	scorer    *resonance.Scorer
	composer  *recommend.Composer
	catalog   Catalog
	breakers  map[string]BreakerState
	clock     clock.Clock
	version   string
	startTime time.Time
}

// NewHandler creates a Handler. Store, Sessions, Scorer, Composer and Catalog are required.
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: store", ErrMissingDependency)
	case deps.Sessions == nil:
		return nil, fmt.Errorf("%w: sessions", ErrMissingDependency)
	case deps.Scorer == nil:
		return nil, fmt.Errorf("%w: scorer", ErrMissingDependency)
	case deps.Composer == nil:
		return nil, fmt.Errorf("%w: composer", ErrMissingDependency)
	case deps.Catalog == nil:
		return nil, fmt.Errorf("%w: catalog", ErrMissingDependency)
	}

	clk := clock.OrReal(deps.Clock)
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		store:     deps.Store,
		sessions:  deps.Sessions,
		scorer:    deps.Scorer,
		composer:  deps.Composer,
		catalog:   deps.Catalog,
		breakers:  deps.Breakers,
		clock:     clk,
		version:   version,
		startTime: clk.Now(),
	}, nil
}
