// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package contextstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/resonance/internal/visitor"
)

// ErrUnknownEvent is returned by Reduce for an unrecognized event type.
var ErrUnknownEvent = errors.New("unknown event type")

// Reduce applies e to c and returns the new snapshot. c is not modified.
// The result always has its derived fields recomputed.
//
//nolint:gocritic // hugeParam: snapshots are passed by value for immutability
func Reduce(c visitor.Context, e Event) (visitor.Context, error) {
	next := c.Clone()

	switch e.Type {
	case EventStartVisit:
		next.VisitCount++
		if e.Location != nil {
			loc := *e.Location
			if e.Location.Coordinates != nil {
				coord := *e.Location.Coordinates
				loc.Coordinates = &coord
			}
			next.Location = &loc
		}

	case EventRecordPageView:
		next.PageViews++

	case EventAddPageVisit:
		if e.Duration < 0 {
			return c, fmt.Errorf("%s: negative duration %v", e.Type, e.Duration)
		}
		next.Behavior.PageVisits = append(next.Behavior.PageVisits, visitor.PageVisit{
			Page:      e.Page,
			EnteredAt: e.At.Add(-e.Duration),
			Duration:  e.Duration,
		})
		if !next.HasVisited(e.Page) {
			next.Behavior.PagesVisited = append(next.Behavior.PagesVisited, e.Page)
		}
		next.Behavior.TotalTimeSpentSeconds += e.Duration.Seconds()

	case EventUpdateInterests:
		next.Interests = make([]visitor.Interest, len(e.Interests))
		for i, in := range e.Interests {
			in.Keywords = append([]string{}, in.Keywords...)
			in.Level = min(max(in.Level, 0), 10)
			next.Interests[i] = in
		}

	case EventUpdateEngagement, EventUpdateJourney:
		// Derived fields; Derive below is authoritative.

	case EventUpdateResonance:
		next.Resonance = min(max(next.Resonance+e.Delta, 0), 1)

	case EventRecordClick:
		next.Behavior.ClickedElements = append(next.Behavior.ClickedElements, e.Target)
		next.Behavior.InteractionCount++

	case EventRecordSearch:
		q := strings.TrimSpace(e.Query)
		if q == "" {
			return c, fmt.Errorf("%s: empty query", e.Type)
		}
		next.Behavior.SearchQueries = append(next.Behavior.SearchQueries, q)

	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}

	if next.VisitorID == "" {
		next.VisitorID = e.VisitorID
	}
	if e.At.After(next.LastSeen) {
		next.LastSeen = e.At
	}
	return visitor.Derive(next), nil
}
