// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package resonance

import "github.com/tomtom215/resonance/internal/content"

// Strength is a coarse band over the score.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
	StrengthPerfect  Strength = "perfect"
)

// StrengthFor maps a score onto its band.
func StrengthFor(score float64) Strength {
	switch {
	case score >= 0.9:
		return StrengthPerfect
	case score >= 0.7:
		return StrengthStrong
	case score >= 0.4:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Components is the per-dimension breakdown of a score.
type Components struct {
	Interest float64 `json:"interest"`
	Location float64 `json:"location"`
	Behavior float64 `json:"behavior"`
	Temporal float64 `json:"temporal"`
	Journey  float64 `json:"journey"`
}

// Result is the outcome of scoring one item for one visitor.
type Result struct {
	ContentID  string       `json:"content_id,omitempty"`
	Kind       content.Kind `json:"kind,omitempty"`
	Score      float64      `json:"score"`
	Components Components   `json:"components"`
	Strength   Strength     `json:"strength"`
	Reasons    []string     `json:"reasons"`
	// DistanceKm is set when both visitor and item coordinates are known.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Scored pairs an item with its result, for ranked lists.
type Scored struct {
	Item   content.Item `json:"item"`
	Result Result       `json:"result"`
}

// Reason texts.
const (
	ReasonInterest = "Matches your interests"
	ReasonNearby   = "Close to where you are"
	ReasonBehavior = "Related to what you've been browsing"
	ReasonOpenNow  = "Open now"
	ReasonUpcoming = "Sessions starting soon"
	ReasonTimely   = "A good fit for this time"
	ReasonJourney  = "Fits where you are in your journey"
	ReasonFallback = "Recommended for you"
)
