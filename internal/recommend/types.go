// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

// DisplayPosition hints where the presentation layer should place an item.
type DisplayPosition string

const (
	PositionHero    DisplayPosition = "hero"
	PositionSidebar DisplayPosition = "sidebar"
	PositionFooter  DisplayPosition = "footer"
	PositionModal   DisplayPosition = "modal"
)

// Item is one recommendation produced by a strategy.
type Item struct {
	// ContentType names what is being recommended (e.g. "contact_card").
	ContentType string `json:"content_type"`

	// Payload carries type-specific data. The "subtype" or "action" key
	// takes part in deduplication.
	Payload map[string]any `json:"payload"`

	// Priority orders the final list, highest first.
	Priority int `json:"priority"`

	// Reason is a human-readable explanation.
	Reason string `json:"reason"`

	DisplayPosition DisplayPosition `json:"display_position,omitempty"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`

	// Strategy is the name of the strategy that produced the item.
	Strategy string `json:"strategy"`
}

// Key returns the deduplication identity of the item.
func (it Item) Key() string {
	discriminator := ""
	if v, ok := it.Payload["subtype"].(string); ok && v != "" {
		discriminator = v
	} else if v, ok := it.Payload["action"].(string); ok {
		discriminator = v
	}
	return it.ContentType + ":" + discriminator
}

// Strategy produces recommendations from one perspective.
// Implementations must treat the visitor context as read-only.
type Strategy interface {
	Name() string
	Recommend(ctx context.Context, vc visitor.Context, now time.Time) ([]Item, error)
}

// ContentRepository answers content lookups by type.
type ContentRepository interface {
	// GetByType returns the canonical item of a type, or nil when none exists.
	GetByType(ctx context.Context, contentType string) (*content.Item, error)

	// GetRecommendationsFor returns candidate items of a type.
	GetRecommendationsFor(ctx context.Context, contentType string) ([]content.Item, error)
}

// StoreRepository answers store lookups by position or district.
type StoreRepository interface {
	GetNearby(ctx context.Context, at geo.Coordinate, opts content.NearbyOptions) ([]content.Nearby, error)
	GetByDistrict(ctx context.Context, district string) ([]content.Item, error)
}

// StrategyReport describes how one strategy fared during a request.
type StrategyReport struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Failed reports whether the strategy contributed nothing because of an error.
func (r StrategyReport) Failed() bool {
	return r.Error != ""
}

// Response is the composed recommendation list.
type Response struct {
	Items       []Item           `json:"items"`
	Strategies  []StrategyReport `json:"strategies"`
	Degraded    bool             `json:"degraded"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Top returns at most n items. Non-positive n returns every item.
func (r *Response) Top(n int) []Item {
	if n <= 0 || n >= len(r.Items) {
		return r.Items
	}
	return r.Items[:n]
}
