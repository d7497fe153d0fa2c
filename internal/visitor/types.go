// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package visitor models the per-visitor context snapshot consumed by the
// resonance scorer and recommendation composer.
//
// A Context is a plain value. Writers produce a new snapshot (see the
// contextstore reducer); readers never mutate what they are handed. The
// journey stage and engagement level are derived fields: they are only ever
// set by Derive, which recomputes them from the counters they depend on.
package visitor

import (
	"fmt"
	"time"

	"github.com/tomtom215/resonance/internal/geo"
)

// JourneyStage is an inferred marketing-funnel position.
type JourneyStage string

const (
	StageAwareness     JourneyStage = "awareness"
	StageInterest      JourneyStage = "interest"
	StageConsideration JourneyStage = "consideration"
	StageDecision      JourneyStage = "decision"
)

// Valid reports whether s is a known stage.
func (s JourneyStage) Valid() bool {
	switch s {
	case StageAwareness, StageInterest, StageConsideration, StageDecision:
		return true
	}
	return false
}

// ParseJourneyStage converts a string into a JourneyStage.
func ParseJourneyStage(v string) (JourneyStage, error) {
	s := JourneyStage(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown journey stage %q", v)
	}
	return s, nil
}

// EngagementLevel is a coarse activity-intensity classification.
type EngagementLevel string

const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// Valid reports whether l is a known level.
func (l EngagementLevel) Valid() bool {
	switch l {
	case EngagementLow, EngagementMedium, EngagementHigh:
		return true
	}
	return false
}

// ParseEngagementLevel converts a string into an EngagementLevel.
func ParseEngagementLevel(v string) (EngagementLevel, error) {
	l := EngagementLevel(v)
	if !l.Valid() {
		return "", fmt.Errorf("unknown engagement level %q", v)
	}
	return l, nil
}

// Location is where the visitor is, as precisely as it is known.
type Location struct {
	Coordinates *geo.Coordinate `json:"coordinates,omitempty" validate:"omitempty"`
	District    string          `json:"district,omitempty"`
	City        string          `json:"city,omitempty"`
}

// HasCoordinates reports whether l carries a usable point.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Coordinates != nil
}

// Interest is a category the visitor has shown affinity for.
type Interest struct {
	Category string   `json:"category" validate:"required"`
	Level    int      `json:"level" validate:"gte=0,lte=10"`
	Keywords []string `json:"keywords"`
}

// PageVisit is one closed page view.
type PageVisit struct {
	Page      string        `json:"page"`
	EnteredAt time.Time     `json:"entered_at"`
	Duration  time.Duration `json:"duration"`
}

// Behavior holds the running interaction counters.
type Behavior struct {
	TotalTimeSpentSeconds float64     `json:"total_time_spent_seconds"`
	SearchQueries         []string    `json:"search_queries"`
	ClickedElements       []string    `json:"clicked_elements"`
	PagesVisited          []string    `json:"pages_visited"`
	InteractionCount      int         `json:"interaction_count"`
	PageVisits            []PageVisit `json:"page_visits,omitempty"`
}

// Context is the per-visitor snapshot.
type Context struct {
	VisitorID       string          `json:"visitor_id"`
	VisitCount      int             `json:"visit_count"`
	PageViews       int             `json:"page_views"`
	Location        *Location       `json:"location,omitempty"`
	Interests       []Interest      `json:"interests"`
	Behavior        Behavior        `json:"behavior"`
	Journey         JourneyStage    `json:"journey"`
	EngagementLevel EngagementLevel `json:"engagement_level"`
	Resonance       float64         `json:"resonance"`
	LastSeen        time.Time       `json:"last_seen,omitempty"`
}

// New returns the empty context of a first-time visitor.
func New(visitorID string) Context {
	return Context{
		VisitorID:       visitorID,
		Interests:       []Interest{},
		Journey:         StageAwareness,
		EngagementLevel: EngagementLow,
	}
}

// Clone returns a deep copy so the result can be modified without touching c.
func (c Context) Clone() Context {
	out := c
	if c.Location != nil {
		loc := *c.Location
		if c.Location.Coordinates != nil {
			coord := *c.Location.Coordinates
			loc.Coordinates = &coord
		}
		out.Location = &loc
	}
	if c.Interests != nil {
		out.Interests = make([]Interest, len(c.Interests))
		for i, in := range c.Interests {
			in.Keywords = append([]string(nil), in.Keywords...)
			out.Interests[i] = in
		}
	}
	out.Behavior.SearchQueries = cloneStrings(c.Behavior.SearchQueries)
	out.Behavior.ClickedElements = cloneStrings(c.Behavior.ClickedElements)
	out.Behavior.PagesVisited = cloneStrings(c.Behavior.PagesVisited)
	if c.Behavior.PageVisits != nil {
		out.Behavior.PageVisits = append([]PageVisit(nil), c.Behavior.PageVisits...)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// PrimaryInterest returns the highest-level interest. Earlier entries win ties.
func (c Context) PrimaryInterest() (Interest, bool) {
	if len(c.Interests) == 0 {
		return Interest{}, false
	}
	best := c.Interests[0]
	for _, in := range c.Interests[1:] {
		if in.Level > best.Level {
			best = in
		}
	}
	return best, true
}

// HasInterest reports whether category is already recorded.
func (c Context) HasInterest(category string) bool {
	for _, in := range c.Interests {
		if in.Category == category {
			return true
		}
	}
	return false
}

// HasVisited reports whether page appears in the visited-pages log.
func (c Context) HasVisited(page string) bool {
	for _, p := range c.Behavior.PagesVisited {
		if p == page {
			return true
		}
	}
	return false
}
