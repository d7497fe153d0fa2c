// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/visitor"
)

// Next action labels.
const (
	ActionLearnBrand       = "Learn about our brand"
	ActionFindStore        = "Find a store near you"
	ActionBrowseProducts   = "Browse our products"
	ActionExploreTraining  = "Explore training programs"
	ActionDownloadMaterial = "Download franchise materials"
	ActionBookConsultation = "Book a consultation"
	ActionCallHotline      = "Call the hotline"
	ActionSubmitApp        = "Submit your franchise application"
	ActionRelatedContent   = "See more related content"
	ActionTalkToHuman      = "Talk to a human"
)

var stageActions = map[visitor.JourneyStage][]string{
	visitor.StageAwareness:     {ActionLearnBrand, ActionFindStore},
	visitor.StageInterest:      {ActionBrowseProducts, ActionExploreTraining},
	visitor.StageConsideration: {ActionDownloadMaterial, ActionBookConsultation},
	visitor.StageDecision:      {ActionCallHotline, ActionSubmitApp},
}

var interestActions = map[string]string{
	"about":     ActionLearnBrand,
	"stores":    ActionFindStore,
	"products":  ActionBrowseProducts,
	"training":  ActionExploreTraining,
	"franchise": ActionDownloadMaterial,
	"contact":   ActionTalkToHuman,
}

// NextActions returns up to MaxNextActions short imperative suggestions:
// journey-stage actions, then the primary interest's action, then a
// related-content action for searchers, then a human contact for repeat
// visitors. Exact duplicates are dropped.
//
//nolint:gocritic // hugeParam: snapshot passed by value for immutability
func (c *Composer) NextActions(vc visitor.Context) []string {
	return NextActions(vc, c.config.MaxNextActions)
}

// NextActions is the composer-independent form of Composer.NextActions.
//
//nolint:gocritic // hugeParam: snapshot passed by value for immutability
func NextActions(vc visitor.Context, limit int) []string {
	if limit <= 0 || limit > 5 {
		limit = 5
	}

	var candidates []string
	candidates = append(candidates, stageActions[visitor.InferJourney(vc)]...)
	if in, ok := vc.PrimaryInterest(); ok {
		if a, ok := interestActions[content.CanonicalCategory(in.Category)]; ok {
			candidates = append(candidates, a)
		}
	}
	if len(vc.Behavior.SearchQueries) > 0 {
		candidates = append(candidates, ActionRelatedContent)
	}
	if vc.VisitCount > 3 {
		candidates = append(candidates, ActionTalkToHuman)
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, limit)
	for _, a := range candidates {
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}
