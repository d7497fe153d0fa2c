// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package models

import (
	"time"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/resonance"
	"github.com/tomtom215/resonance/internal/visitor"
)

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	Uptime         float64           `json:"uptime_seconds"`
	ActiveVisitors int               `json:"active_visitors"`
	ContentItems   int               `json:"content_items"`
	Stores         int               `json:"stores"`
	Breakers       map[string]string `json:"breakers"`
}

// VisitorCreated is returned when a new anonymous visitor ID is issued.
type VisitorCreated struct {
	VisitorID string          `json:"visitor_id"`
	Context   visitor.Context `json:"context"`
}

// EventAccepted echoes the snapshot after a behavior event was applied.
type EventAccepted struct {
	Type    string          `json:"type"`
	Context visitor.Context `json:"context"`
}

// RecommendationsResponse wraps the composer output for one visitor.
type RecommendationsResponse struct {
	VisitorID   string                     `json:"visitor_id"`
	Items       []recommend.Item           `json:"items"`
	Strategies  []recommend.StrategyReport `json:"strategies"`
	Degraded    bool                       `json:"degraded"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// NextActionsResponse lists suggested follow-up actions.
type NextActionsResponse struct {
	VisitorID string               `json:"visitor_id"`
	Journey   visitor.JourneyStage `json:"journey"`
	Actions   []string             `json:"actions"`
}

// ResonanceResponse is the score of one catalog item for one visitor.
type ResonanceResponse struct {
	VisitorID string           `json:"visitor_id"`
	Content   content.Item     `json:"content"`
	Result    resonance.Result `json:"result"`
}
