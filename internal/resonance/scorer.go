// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package resonance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/visitor"
)

// Neutral component values.
const (
	neutralInterest       = 0.3
	neutralLocation       = 0.5
	unknownVisitorLoc     = 0.3
	districtMatchScore    = 0.8
	cityMatchScore        = 0.6
	noMatchLocationScore  = 0.3
	neutralJourney        = 0.5
	closedStoreScore      = 0.3
	upcomingTrainingScore = 0.9
	weekendScore          = 0.8
	eveningScore          = 0.7
	neutralTemporal       = 0.5
)

// Reason thresholds.
const (
	interestReasonMin   = 0.7
	locationReasonMin   = 0.8
	locationReasonSoft  = 0.5
	behaviorReasonMin   = 0.7
	temporalReasonMin   = 0.8
	journeyReasonMin    = 0.8
	searchMatchBoost    = 0.2
	relevantClickBoost  = 0.1
	categoryLevelFactor = 0.1
	keywordLevelFactor  = 0.05
)

// scorePrecision is the number of steps per unit kept in a combined score.
const scorePrecision = 1e4

// journeyTable scores each funnel stage against the journey content types.
var journeyTable = map[visitor.JourneyStage]map[string]float64{
	visitor.StageAwareness:     {"about": 1.0, "stores": 0.7, "products": 0.5, "franchise": 0.3, "training": 0.4},
	visitor.StageInterest:      {"about": 0.6, "stores": 0.9, "products": 0.8, "franchise": 0.5, "training": 0.7},
	visitor.StageConsideration: {"about": 0.4, "stores": 0.7, "products": 0.7, "franchise": 0.9, "training": 0.8},
	visitor.StageDecision:      {"about": 0.3, "stores": 0.8, "products": 0.6, "franchise": 1.0, "training": 0.7},
}

// Scorer computes resonance results. It is safe for concurrent use.
type Scorer struct {
	cfg     *Config
	weights Weights
	clock   clock.Clock
}

// NewScorer creates a scorer. A nil config uses DefaultConfig and a nil
// clock uses the wall clock.
func NewScorer(cfg *Config, clk clock.Clock) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.Clone()
	return &Scorer{
		cfg:     cfg,
		weights: cfg.Weights.Normalize(),
		clock:   clock.OrReal(clk),
	}
}

// Calculate scores item for the visitor at the current clock reading.
func (s *Scorer) Calculate(vc visitor.Context, item content.Item) Result {
	return s.CalculateAt(vc, item, s.clock.Now())
}

// CalculateAt scores item for the visitor as if evaluated at now.
func (s *Scorer) CalculateAt(vc visitor.Context, item content.Item, now time.Time) Result {
	kind := content.Classify(item)

	var distance *float64
	if vc.Location.HasCoordinates() && item.Coordinates != nil {
		d := geo.DistanceKm(*vc.Location.Coordinates, *item.Coordinates)
		distance = &d
	}

	comps := Components{
		Interest: s.interest(vc, item, kind),
		Location: s.location(vc, item, kind, distance),
		Behavior: s.behavior(vc, item, kind),
		Temporal: s.temporal(item, kind, now),
		Journey:  s.journey(vc, kind),
	}

	w := s.weights
	score := clamp01(roundScore(w.Interest*comps.Interest +
		w.Location*comps.Location +
		w.Behavior*comps.Behavior +
		w.Temporal*comps.Temporal +
		w.Journey*comps.Journey))

	res := Result{
		ContentID:  item.ID,
		Kind:       kind,
		Score:      score,
		Components: comps,
		Strength:   StrengthFor(score),
		Reasons:    s.reasons(comps, item, kind, distance),
		DistanceKm: distance,
	}
	metrics.RecordResonance(string(kind), string(res.Strength), score)
	return res
}

// ScoreBatch scores every item and returns them highest score first.
// Equal scores keep their input order.
func (s *Scorer) ScoreBatch(vc visitor.Context, items []content.Item) []Scored {
	now := s.clock.Now()
	out := make([]Scored, len(items))
	for i, it := range items {
		out[i] = Scored{Item: it, Result: s.CalculateAt(vc, it, now)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Score > out[j].Result.Score
	})
	return out
}

func (s *Scorer) interest(vc visitor.Context, item content.Item, kind content.Kind) float64 {
	if len(vc.Interests) == 0 {
		return neutralInterest
	}

	text := item.Text()
	var score float64
	for _, in := range vc.Interests {
		level := float64(in.Level)
		if content.CategoryMatches(in.Category, kind) {
			score += level * categoryLevelFactor
		}
		for _, kw := range in.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(text, kw) {
				score += level * keywordLevelFactor
			}
		}
	}
	return clamp01(score)
}

func (s *Scorer) location(vc visitor.Context, item content.Item, kind content.Kind, distance *float64) float64 {
	if !item.HasLocation() {
		return neutralLocation
	}
	loc := vc.Location
	if loc == nil || (loc.Coordinates == nil && loc.District == "" && loc.City == "") {
		return unknownVisitorLoc
	}

	if kind == content.KindStore && distance != nil {
		return s.distanceScore(*distance)
	}

	switch {
	case loc.District != "" && loc.District == item.District:
		return districtMatchScore
	case loc.City != "" && loc.City == item.City:
		return cityMatchScore
	default:
		return noMatchLocationScore
	}
}

func (s *Scorer) distanceScore(km float64) float64 {
	for _, band := range s.cfg.DistanceBands {
		if km < band.MaxKm {
			return band.Score
		}
	}
	return s.cfg.FarScore
}

func (s *Scorer) behavior(vc visitor.Context, item content.Item, kind content.Kind) float64 {
	score := s.cfg.BehaviorBaseline

	switch {
	case vc.PageViews > 10:
		score += 0.3
	case vc.PageViews > 5:
		score += 0.2
	case vc.PageViews > 2:
		score += 0.1
	}

	switch dwell := vc.Behavior.TotalTimeSpentSeconds; {
	case dwell > 600:
		score += 0.3
	case dwell > 300:
		score += 0.2
	case dwell > 60:
		score += 0.1
	}

	text := item.Text()
	for _, q := range vc.Behavior.SearchQueries {
		q = strings.ToLower(strings.TrimSpace(q))
		if q != "" && strings.Contains(text, q) {
			score += searchMatchBoost
		}
	}
	for _, target := range vc.Behavior.ClickedElements {
		if content.IsRelevantClick(target, kind) {
			score += relevantClickBoost
		}
	}
	return clamp01(score)
}

func (s *Scorer) temporal(item content.Item, kind content.Kind, now time.Time) float64 {
	switch kind {
	case content.KindStore:
		hours := s.cfg.BusinessHours
		if item.BusinessHours != nil {
			hours = *item.BusinessHours
		}
		if hours.Contains(now.Hour()) {
			return 1.0
		}
		return closedStoreScore
	case content.KindTraining:
		horizon := now.Add(s.cfg.TrainingHorizon)
		for _, session := range item.Sessions {
			if !session.Before(now) && !session.After(horizon) {
				return upcomingTrainingScore
			}
		}
	case content.KindProduct, content.KindArticle, content.KindContactAction,
		content.KindAbout, content.KindFranchise, content.KindUnknown:
	}

	switch {
	case isWeekend(now):
		return weekendScore
	case s.cfg.EveningHours.Contains(now.Hour()):
		return eveningScore
	default:
		return neutralTemporal
	}
}

func (s *Scorer) journey(vc visitor.Context, kind content.Kind) float64 {
	contentType, ok := content.JourneyType(kind)
	if !ok {
		return neutralJourney
	}
	if v, ok := journeyTable[visitor.InferJourney(vc)][contentType]; ok {
		return v
	}
	return neutralJourney
}

func (s *Scorer) reasons(c Components, item content.Item, kind content.Kind, distance *float64) []string {
	var reasons []string

	if c.Interest > interestReasonMin {
		reasons = append(reasons, ReasonInterest)
	}
	if c.Location > locationReasonMin || (c.Location > locationReasonSoft && item.HasLocation()) {
		if distance != nil {
			reasons = append(reasons, ReasonNearby+" ("+geo.FormatKm(*distance)+")")
		} else {
			reasons = append(reasons, ReasonNearby)
		}
	}
	if c.Behavior > behaviorReasonMin {
		reasons = append(reasons, ReasonBehavior)
	}
	if c.Temporal > temporalReasonMin {
		switch kind {
		case content.KindStore:
			reasons = append(reasons, ReasonOpenNow)
		case content.KindTraining:
			reasons = append(reasons, ReasonUpcoming)
		default:
			reasons = append(reasons, ReasonTimely)
		}
	}
	if c.Journey > journeyReasonMin {
		reasons = append(reasons, ReasonJourney)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonFallback)
	}
	return reasons
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// roundScore keeps four decimal places of a weighted sum.
func roundScore(v float64) float64 {
	return math.Round(v*scorePrecision) / scorePrecision
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
