// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package visitor

// FranchisePage is the page whose visit signals serious purchase intent.
const FranchisePage = "/franchise"

// minMinutes guards the interaction-rate division for zero-length sessions.
const minMinutes = 1e-9

// InferJourney derives the funnel stage. Rules are checked top to bottom and
// the first match wins.
func InferJourney(c Context) JourneyStage {
	total := c.Behavior.TotalTimeSpentSeconds
	franchise := c.HasVisited(FranchisePage)

	switch {
	case c.VisitCount > 3 && total > 600 && franchise:
		return StageDecision
	case franchise || (len(c.Behavior.SearchQueries) > 0 && total > 300):
		return StageConsideration
	case c.PageViews > 3 || total > 180:
		return StageInterest
	default:
		return StageAwareness
	}
}

// ClassifyEngagement maps cumulative dwell time and interaction count onto a level.
func ClassifyEngagement(totalSeconds float64, interactions int) EngagementLevel {
	minutes := totalSeconds / 60
	rate := float64(interactions) / max(minutes, minMinutes)

	switch {
	case minutes > 2 && rate > 3:
		return EngagementHigh
	case minutes > 1 && rate > 1:
		return EngagementMedium
	default:
		return EngagementLow
	}
}

// Derive returns c with Journey and EngagementLevel recomputed from the
// underlying counters. It is the only place those fields are assigned.
func Derive(c Context) Context {
	c.Journey = InferJourney(c)
	c.EngagementLevel = ClassifyEngagement(c.Behavior.TotalTimeSpentSeconds, c.Behavior.InteractionCount)
	return c
}
