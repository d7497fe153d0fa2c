// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"fmt"
	"strings"

	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

// Behavior event types accepted by POST /visitors/{visitorID}/events.
const (
	EventVisitStart = "visit_start"
	EventPageEnter  = "page_enter"
	EventPageLeave  = "page_leave"
	EventScroll     = "scroll"
	EventClick      = "click"
	EventSearch     = "search"
)

// EventRequest is one behavior event reported by the site.
//
// Fields:
//   - Type: one of the Event* constants
//   - Page: site-relative path (page_enter, page_leave)
//   - Depth: scroll depth percentage 0-100 (scroll)
//   - Target: clicked element ID (click)
//   - Query: search text (search)
//   - Location: where the visitor is (visit_start, optional)
type EventRequest struct {
	Type     string           `json:"type" validate:"required,oneof=visit_start page_enter page_leave scroll click search"`
	Page     string           `json:"page" validate:"omitempty,pagepath"`
	Depth    *float64         `json:"depth" validate:"omitempty,gte=0,lte=100"`
	Target   string           `json:"target" validate:"max=256"`
	Query    string           `json:"query" validate:"max=256"`
	Location *LocationRequest `json:"location"`
}

// LocationRequest is the visitor location supplied with visit_start.
type LocationRequest struct {
	Lat      *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon      *float64 `json:"lon" validate:"omitempty,longitude"`
	District string   `json:"district" validate:"max=64"`
	City     string   `json:"city" validate:"max=64"`
}

// checkFields enforces the fields each event type needs.
func (e *EventRequest) checkFields() error {
	switch e.Type {
	case EventPageEnter, EventPageLeave:
		if e.Page == "" {
			return fmt.Errorf("page is required for %s", e.Type)
		}
	case EventScroll:
		if e.Depth == nil {
			return fmt.Errorf("depth is required for %s", e.Type)
		}
	case EventClick:
		if strings.TrimSpace(e.Target) == "" {
			return fmt.Errorf("target is required for %s", e.Type)
		}
	case EventSearch:
		if strings.TrimSpace(e.Query) == "" {
			return fmt.Errorf("query is required for %s", e.Type)
		}
	}
	if e.Location != nil && (e.Location.Lat == nil) != (e.Location.Lon == nil) {
		return fmt.Errorf("location.lat and location.lon must be given together")
	}
	return nil
}

// toLocation converts the request location, or returns nil when absent.
func (l *LocationRequest) toLocation() *visitor.Location {
	if l == nil {
		return nil
	}
	loc := &visitor.Location{District: l.District, City: l.City}
	if l.Lat != nil && l.Lon != nil {
		loc.Coordinates = &geo.Coordinate{Lat: *l.Lat, Lon: *l.Lon}
	}
	return loc
}

// RecommendationsRequest holds the query parameters of GET /recommendations.
type RecommendationsRequest struct {
	Limit int `json:"limit" validate:"gte=0,lte=50"`
}
