// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

// Strategy names, in execution order.
const (
	StrategyJourney    = "journey"
	StrategyInterest   = "interest"
	StrategyEngagement = "engagement"
	StrategyLocation   = "location"
	StrategyTemporal   = "temporal"
)

// Content types emitted by the strategies.
const (
	TypeCompanyOverview      = "company_overview"
	TypeStoreLocator         = "store_locator"
	TypeStoreNetwork         = "store_network"
	TypeProductShowcase      = "product_showcase"
	TypeTrainingProgram      = "training_program"
	TypeFranchiseInfo        = "franchise_info"
	TypeSuccessStories       = "success_stories"
	TypeFranchiseApplication = "franchise_application"
	TypeContactCard          = "contact_card"
	TypeStoreList            = "store_list"
	TypeIntroContent         = "intro_content"
	TypeNews                 = "news"
	TypeFAQ                  = "faq"
	TypeProductDeepDive      = "product_deep_dive"
	TypeDownloadResource     = "download_resource"
	TypeLiveChat             = "live_chat"
	TypeStoreNavigation      = "store_navigation"
	TypeStorePromo           = "store_promo"
	TypeNearbyStore          = "nearby_store"
	TypeDistrictSummary      = "district_summary"
	TypeBusinessHoursBanner  = "business_hours_banner"
	TypeWeekendSpecial       = "weekend_special"
	TypeEveningActivity      = "evening_activity"
)

// maxCandidates caps the repository items attached to a single payload.
const maxCandidates = 3

// professionalKeywords select the advanced training track.
var professionalKeywords = []string{"职业", "professional"}

func subtype(s string) map[string]any {
	return map[string]any{"subtype": s}
}

func action(s string) map[string]any {
	return map[string]any{"action": s}
}

func firstN(items []content.Item, n int) []content.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// JourneyStrategy emits stage-specific picks.
type JourneyStrategy struct {
	contents ContentRepository
	ttl      time.Duration
}

// NewJourneyStrategy creates the journey strategy.
func NewJourneyStrategy(contents ContentRepository, cfg *Config) *JourneyStrategy {
	return &JourneyStrategy{contents: contents, ttl: cfg.UrgentContactTTL}
}

func (s *JourneyStrategy) Name() string { return StrategyJourney }

func (s *JourneyStrategy) Recommend(ctx context.Context, vc visitor.Context, now time.Time) ([]Item, error) {
	switch visitor.InferJourney(vc) {
	case visitor.StageAwareness:
		overview := subtype("overview")
		if err := attachByType(ctx, s.contents, overview, "about"); err != nil {
			return nil, err
		}
		return []Item{
			{ContentType: TypeCompanyOverview, Payload: overview, Priority: 10, DisplayPosition: PositionHero,
				Reason: "Get to know who we are"},
			{ContentType: TypeStoreLocator, Payload: subtype("teaser"), Priority: 8,
				Reason: "See if there is a store near you"},
		}, nil

	case visitor.StageInterest:
		products := subtype("featured")
		if err := attachCandidates(ctx, s.contents, products, "products"); err != nil {
			return nil, err
		}
		return []Item{
			{ContentType: TypeProductShowcase, Payload: products, Priority: 9, DisplayPosition: PositionHero,
				Reason: "Our most popular products"},
			{ContentType: TypeTrainingProgram, Payload: subtype("overview"), Priority: 7, DisplayPosition: PositionSidebar,
				Reason: "Learn the craft with our training programs"},
			{ContentType: TypeStoreLocator, Payload: subtype("teaser"), Priority: 6,
				Reason: "Visit a store to try them in person"},
		}, nil

	case visitor.StageConsideration:
		franchise := subtype("overview")
		if err := attachByType(ctx, s.contents, franchise, "franchise"); err != nil {
			return nil, err
		}
		return []Item{
			{ContentType: TypeFranchiseInfo, Payload: franchise, Priority: 9, DisplayPosition: PositionHero,
				Reason: "Everything you need to evaluate a franchise"},
			{ContentType: TypeSuccessStories, Payload: subtype("case_studies"), Priority: 8, DisplayPosition: PositionSidebar,
				Reason: "Hear from existing franchise owners"},
			{ContentType: TypeContactCard, Payload: action("consult"), Priority: 7, DisplayPosition: PositionSidebar,
				Reason: "Questions? Book a free consultation"},
		}, nil

	case visitor.StageDecision:
		expires := now.Add(s.ttl)
		return []Item{
			{ContentType: TypeContactCard, Payload: action("urgent_contact"), Priority: 10, DisplayPosition: PositionModal,
				ExpiresAt: &expires, Reason: "Talk to our franchise team today"},
			{ContentType: TypeFranchiseApplication, Payload: action("apply"), Priority: 9, DisplayPosition: PositionHero,
				Reason: "Ready to start? Submit your application"},
		}, nil
	}
	return nil, nil
}

// InterestStrategy emits targeted items for strong interests.
type InterestStrategy struct {
	contents   ContentRepository
	thresholds InterestThresholds
}

// NewInterestStrategy creates the interest strategy.
func NewInterestStrategy(contents ContentRepository, cfg *Config) *InterestStrategy {
	return &InterestStrategy{contents: contents, thresholds: cfg.Thresholds}
}

func (s *InterestStrategy) Name() string { return StrategyInterest }

func (s *InterestStrategy) Recommend(ctx context.Context, vc visitor.Context, _ time.Time) ([]Item, error) {
	var items []Item
	for _, in := range vc.Interests {
		switch content.CanonicalCategory(in.Category) {
		case "franchise":
			if in.Level < s.thresholds.Franchise {
				continue
			}
			payload := subtype("investment")
			if err := attachByType(ctx, s.contents, payload, "franchise"); err != nil {
				return nil, err
			}
			items = append(items, Item{ContentType: TypeFranchiseInfo, Payload: payload, Priority: 8,
				DisplayPosition: PositionSidebar, Reason: "Investment details for the franchise you've been exploring"})

		case "training":
			if in.Level < s.thresholds.Training {
				continue
			}
			track, reason, priority := "basic", "Training programs matched to your interest", 7
			if hasAnyKeyword(in.Keywords, professionalKeywords) {
				track, reason, priority = "advanced", "Advanced training for professionals", 8
			}
			payload := subtype(track)
			if err := attachCandidates(ctx, s.contents, payload, "training"); err != nil {
				return nil, err
			}
			items = append(items, Item{ContentType: TypeTrainingProgram, Payload: payload, Priority: priority,
				DisplayPosition: PositionSidebar, Reason: reason})

		case "products":
			if in.Level < s.thresholds.Products {
				continue
			}
			payload := subtype("recommended")
			if err := attachCandidates(ctx, s.contents, payload, "products"); err != nil {
				return nil, err
			}
			items = append(items, Item{ContentType: TypeProductShowcase, Payload: payload, Priority: 7,
				Reason: "Products picked for your interests"})

		case "stores":
			if in.Level < s.thresholds.Stores {
				continue
			}
			items = append(items, Item{ContentType: TypeStoreList, Payload: subtype("all"), Priority: 7,
				Reason: "Browse all of our stores"})
		}
	}
	return items, nil
}

func hasAnyKeyword(keywords, wanted []string) bool {
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, w := range wanted {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}
	return false
}

// EngagementStrategy sizes content depth to the visitor's engagement.
type EngagementStrategy struct {
	contents ContentRepository
}

// NewEngagementStrategy creates the engagement strategy.
func NewEngagementStrategy(contents ContentRepository) *EngagementStrategy {
	return &EngagementStrategy{contents: contents}
}

func (s *EngagementStrategy) Name() string { return StrategyEngagement }

func (s *EngagementStrategy) Recommend(ctx context.Context, vc visitor.Context, _ time.Time) ([]Item, error) {
	level := visitor.ClassifyEngagement(vc.Behavior.TotalTimeSpentSeconds, vc.Behavior.InteractionCount)

	switch level {
	case visitor.EngagementLow:
		return []Item{
			{ContentType: TypeIntroContent, Payload: subtype("brand_story"), Priority: 5, DisplayPosition: PositionSidebar,
				Reason: "A quick introduction to our brand"},
		}, nil

	case visitor.EngagementMedium:
		news := subtype("latest")
		if err := attachCandidates(ctx, s.contents, news, "news"); err != nil {
			return nil, err
		}
		return []Item{
			{ContentType: TypeNews, Payload: news, Priority: 5, DisplayPosition: PositionSidebar,
				Reason: "What's new with us"},
			{ContentType: TypeFAQ, Payload: subtype("common"), Priority: 4, DisplayPosition: PositionFooter,
				Reason: "Answers to common questions"},
		}, nil

	case visitor.EngagementHigh:
		deep := subtype("details")
		if err := attachCandidates(ctx, s.contents, deep, "products"); err != nil {
			return nil, err
		}
		return []Item{
			{ContentType: TypeProductDeepDive, Payload: deep, Priority: 7,
				Reason: "In-depth product information"},
			{ContentType: TypeDownloadResource, Payload: action("download_brochure"), Priority: 6, DisplayPosition: PositionSidebar,
				Reason: "Take our brochure with you"},
			{ContentType: TypeLiveChat, Payload: action("chat"), Priority: 6, DisplayPosition: PositionFooter,
				Reason: "Chat with us live"},
		}, nil
	}
	return nil, nil
}

// LocationStrategy recommends stores close to the visitor.
type LocationStrategy struct {
	stores         StoreRepository
	navigateRadius float64
	nearbyRadius   float64
	limit          int
}

// NewLocationStrategy creates the location strategy.
func NewLocationStrategy(stores StoreRepository, cfg *Config) *LocationStrategy {
	return &LocationStrategy{
		stores:         stores,
		navigateRadius: cfg.NavigateRadiusKm,
		nearbyRadius:   cfg.NearbyRadiusKm,
		limit:          cfg.NearbyLimit,
	}
}

func (s *LocationStrategy) Name() string { return StrategyLocation }

func (s *LocationStrategy) Recommend(ctx context.Context, vc visitor.Context, _ time.Time) ([]Item, error) {
	if !vc.Location.HasCoordinates() {
		return nil, nil
	}

	nearby, err := s.stores.GetNearby(ctx, *vc.Location.Coordinates, content.NearbyOptions{
		Limit:         s.limit,
		MaxDistanceKm: s.nearbyRadius,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby stores: %w", err)
	}

	var items []Item
	if len(nearby) > 0 {
		closest := nearby[0]
		name := closest.Item.DisplayName()
		distance := geo.RoundKm(closest.DistanceKm)

		switch {
		case closest.DistanceKm < s.navigateRadius:
			items = append(items,
				Item{ContentType: TypeStoreNavigation,
					Payload:  map[string]any{"action": "navigate", "store": closest.Item, "distance_km": distance},
					Priority: 9, DisplayPosition: PositionModal,
					Reason: fmt.Sprintf("%s is only %s away", name, geo.FormatKm(closest.DistanceKm))},
				Item{ContentType: TypeStorePromo,
					Payload:  map[string]any{"subtype": "nearby_offer", "store": closest.Item},
					Priority: 7, DisplayPosition: PositionSidebar,
					Reason: "An offer at your nearest store"},
			)
		case closest.DistanceKm < s.nearbyRadius:
			items = append(items, Item{ContentType: TypeNearbyStore,
				Payload:  map[string]any{"subtype": "nearest", "store": closest.Item, "distance_km": distance},
				Priority: 5, DisplayPosition: PositionSidebar,
				Reason: fmt.Sprintf("Nearest store: %s (%s)", name, geo.FormatKm(closest.DistanceKm))})
		}
	}

	if district := vc.Location.District; district != "" {
		inDistrict, err := s.stores.GetByDistrict(ctx, district)
		if err != nil {
			return nil, fmt.Errorf("district stores: %w", err)
		}
		if n := len(inDistrict); n > 0 {
			items = append(items, Item{ContentType: TypeDistrictSummary,
				Payload:  map[string]any{"subtype": district, "count": n, "stores": inDistrict},
				Priority: 4, DisplayPosition: PositionFooter,
				Reason: fmt.Sprintf("%d stores in %s", n, district)})
		}
	}
	return items, nil
}

// TemporalStrategy reacts to the time of day and week.
type TemporalStrategy struct {
	business content.Hours
	evening  content.Hours
}

// NewTemporalStrategy creates the temporal strategy.
func NewTemporalStrategy(cfg *Config) *TemporalStrategy {
	return &TemporalStrategy{business: cfg.BusinessHours, evening: cfg.EveningHours}
}

func (s *TemporalStrategy) Name() string { return StrategyTemporal }

func (s *TemporalStrategy) Recommend(_ context.Context, _ visitor.Context, now time.Time) ([]Item, error) {
	var items []Item
	hour := now.Hour()

	if s.business.Contains(hour) {
		items = append(items, Item{ContentType: TypeBusinessHoursBanner, Payload: subtype("open_now"), Priority: 3,
			DisplayPosition: PositionFooter, Reason: "Our stores are open now (" + s.business.String() + ")"})
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		items = append(items, Item{ContentType: TypeWeekendSpecial, Payload: subtype("weekend"), Priority: 6,
			DisplayPosition: PositionHero, Reason: "This weekend's specials"})
	}
	if s.evening.Contains(hour) {
		items = append(items, Item{ContentType: TypeEveningActivity, Payload: subtype("evening"), Priority: 5,
			DisplayPosition: PositionSidebar, Reason: "Tonight's in-store activities"})
	}
	return items, nil
}

// attachByType stores the canonical item of contentType in payload["content"].
func attachByType(ctx context.Context, repo ContentRepository, payload map[string]any, contentType string) error {
	item, err := repo.GetByType(ctx, contentType)
	if err != nil {
		return fmt.Errorf("content %q: %w", contentType, err)
	}
	if item != nil {
		payload["content"] = *item
	}
	return nil
}

// attachCandidates stores up to maxCandidates items of contentType in payload["items"].
func attachCandidates(ctx context.Context, repo ContentRepository, payload map[string]any, contentType string) error {
	items, err := repo.GetRecommendationsFor(ctx, contentType)
	if err != nil {
		return fmt.Errorf("recommendations for %q: %w", contentType, err)
	}
	if len(items) > 0 {
		payload["items"] = firstN(items, maxCandidates)
	}
	return nil
}
