// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package contextstore

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tomtom215/resonance/internal/visitor"
)

// EventType names a context mutation.
type EventType string

const (
	EventAddPageVisit     EventType = "ADD_PAGE_VISIT"
	EventUpdateInterests  EventType = "UPDATE_INTERESTS"
	EventUpdateEngagement EventType = "UPDATE_ENGAGEMENT"
	EventUpdateJourney    EventType = "UPDATE_JOURNEY"
	EventUpdateResonance  EventType = "UPDATE_RESONANCE"
	EventStartVisit       EventType = "START_VISIT"
	EventRecordPageView   EventType = "RECORD_PAGE_VIEW"
	EventRecordClick      EventType = "RECORD_CLICK"
	EventRecordSearch     EventType = "RECORD_SEARCH"
)

// EventTypes lists every known event type.
var EventTypes = []EventType{
	EventAddPageVisit, EventUpdateInterests, EventUpdateEngagement, EventUpdateJourney,
	EventUpdateResonance, EventStartVisit, EventRecordPageView, EventRecordClick, EventRecordSearch,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event is a single context mutation. Only the fields relevant to Type are set.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	VisitorID string    `json:"visitor_id"`
	At        time.Time `json:"at"`

	Page      string                  `json:"page,omitempty"`
	Duration  time.Duration           `json:"duration,omitempty"`
	Interests []visitor.Interest      `json:"interests,omitempty"`
	Level     visitor.EngagementLevel `json:"level,omitempty"`
	Stage     visitor.JourneyStage    `json:"stage,omitempty"`
	Delta     float64                 `json:"delta,omitempty"`
	Target    string                  `json:"target,omitempty"`
	Query     string                  `json:"query,omitempty"`
	Location  *visitor.Location       `json:"location,omitempty"`
}

// AddPageVisit records a closed page view.
func AddPageVisit(page string, enteredAt time.Time, duration time.Duration) Event {
	return Event{Type: EventAddPageVisit, Page: page, At: enteredAt.Add(duration), Duration: duration}
}

// UpdateInterests replaces the interest list.
func UpdateInterests(interests []visitor.Interest) Event {
	return Event{Type: EventUpdateInterests, Interests: interests}
}

// UpdateEngagement announces a recomputed engagement level.
func UpdateEngagement(level visitor.EngagementLevel) Event {
	return Event{Type: EventUpdateEngagement, Level: level}
}

// UpdateJourney announces a recomputed journey stage.
func UpdateJourney(stage visitor.JourneyStage) Event {
	return Event{Type: EventUpdateJourney, Stage: stage}
}

// UpdateResonance adjusts the cumulative affinity by delta.
func UpdateResonance(delta float64) Event {
	return Event{Type: EventUpdateResonance, Delta: delta}
}

// StartVisit opens a new visit, optionally updating the visitor's location.
func StartVisit(loc *visitor.Location) Event {
	return Event{Type: EventStartVisit, Location: loc}
}

// RecordPageView counts a page entry.
func RecordPageView(page string) Event {
	return Event{Type: EventRecordPageView, Page: page}
}

// RecordClick logs a clicked element.
func RecordClick(target string) Event {
	return Event{Type: EventRecordClick, Target: target}
}

// RecordSearch logs a search query.
func RecordSearch(query string) Event {
	return Event{Type: EventRecordSearch, Query: query}
}

// idGenerator produces monotonic ULIDs. It is safe for concurrent use.
type idGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDGenerator() *idGenerator {
	//nolint:gosec // event IDs need ordering, not unpredictability
	return &idGenerator{entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)}
}

func (g *idGenerator) next(at time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), g.entropy).String()
}
