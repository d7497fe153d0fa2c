// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

func keys(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func assertKeys(t *testing.T, items []Item, want ...string) {
	t.Helper()
	got := keys(items)
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestJourneyStrategy(t *testing.T) {
	t.Parallel()

	decision := visitor.New("v")
	decision.VisitCount = 5
	decision.Behavior.TotalTimeSpentSeconds = 700
	decision.Behavior.PagesVisited = []string{"/", "/franchise"}

	consideration := visitor.New("v")
	consideration.Behavior.PagesVisited = []string{"/franchise"}

	interest := visitor.New("v")
	interest.PageViews = 4

	tests := []struct {
		name string
		vc   visitor.Context
		want []string
	}{
		{"awareness", visitor.New("v"), []string{"company_overview:overview", "store_locator:teaser"}},
		{"interest", interest, []string{"product_showcase:featured", "training_program:overview", "store_locator:teaser"}},
		{"consideration", consideration, []string{"franchise_info:overview", "success_stories:case_studies", "contact_card:consult"}},
		{"decision", decision, []string{"contact_card:urgent_contact", "franchise_application:apply"}},
	}

	s := NewJourneyStrategy(testContents(), DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items, err := s.Recommend(context.Background(), tt.vc, tuesdayMorning)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			assertKeys(t, items, tt.want...)
		})
	}
}

func TestJourneyStrategy_DecisionContactCard(t *testing.T) {
	t.Parallel()

	vc := visitor.New("v")
	vc.VisitCount = 5
	vc.Behavior.TotalTimeSpentSeconds = 700
	vc.Behavior.PagesVisited = []string{"/", "/franchise"}

	items, err := NewJourneyStrategy(testContents(), DefaultConfig()).Recommend(context.Background(), vc, tuesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	card := items[0]
	if card.Priority != 10 || card.DisplayPosition != PositionModal {
		t.Errorf("contact card = %+v, want priority 10 modal", card)
	}
	if card.ExpiresAt == nil || !card.ExpiresAt.Equal(tuesdayMorning.Add(24*time.Hour)) {
		t.Errorf("ExpiresAt = %v, want now+24h", card.ExpiresAt)
	}
	if items[1].Priority != 9 {
		t.Errorf("application priority = %d, want 9", items[1].Priority)
	}
}

func TestJourneyStrategy_AttachesContentAndPropagatesErrors(t *testing.T) {
	t.Parallel()

	items, err := NewJourneyStrategy(testContents(), DefaultConfig()).Recommend(context.Background(), visitor.New("v"), tuesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := items[0].Payload["content"].(content.Item); !ok || got.ID != "about" {
		t.Errorf("payload content = %v, want about item", items[0].Payload["content"])
	}

	failing := &mockContentRepository{err: errLookup}
	if _, err := NewJourneyStrategy(failing, DefaultConfig()).Recommend(context.Background(), visitor.New("v"), tuesdayMorning); !errors.Is(err, errLookup) {
		t.Errorf("Recommend() error = %v, want errLookup", err)
	}
}

func TestInterestStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		interests []visitor.Interest
		want      []string
	}{
		{"below every threshold", []visitor.Interest{
			{Category: "franchise", Level: 6}, {Category: "training", Level: 4},
			{Category: "products", Level: 5}, {Category: "stores", Level: 7},
		}, nil},
		{"at every threshold", []visitor.Interest{
			{Category: "franchise", Level: 7}, {Category: "training", Level: 5},
			{Category: "products", Level: 6}, {Category: "stores", Level: 8},
		}, []string{"franchise_info:investment", "training_program:basic", "product_showcase:recommended", "store_list:all"}},
		{"professional keyword picks advanced training", []visitor.Interest{
			{Category: "培训", Level: 5, Keywords: []string{"职业资格"}},
		}, []string{"training_program:advanced"}},
		{"english professional keyword", []visitor.Interest{
			{Category: "training", Level: 9, Keywords: []string{"Professional"}},
		}, []string{"training_program:advanced"}},
		{"chinese franchise alias", []visitor.Interest{{Category: "加盟", Level: 8}}, []string{"franchise_info:investment"}},
		{"unknown category", []visitor.Interest{{Category: "gardening", Level: 10}}, nil},
	}

	s := NewInterestStrategy(testContents(), DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vc := visitor.New("v")
			vc.Interests = tt.interests
			items, err := s.Recommend(context.Background(), vc, tuesdayMorning)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			assertKeys(t, items, tt.want...)
		})
	}
}

func TestInterestStrategy_CapsCandidates(t *testing.T) {
	t.Parallel()

	vc := visitor.New("v")
	vc.Interests = []visitor.Interest{{Category: "products", Level: 10}}
	items, err := NewInterestStrategy(testContents(), DefaultConfig()).Recommend(context.Background(), vc, tuesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := items[0].Payload["items"].([]content.Item)
	if !ok || len(got) != maxCandidates {
		t.Errorf("payload items = %v, want %d candidates", items[0].Payload["items"], maxCandidates)
	}
}

func TestEngagementStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		seconds      float64
		interactions int
		want         []string
	}{
		{"low", 10, 0, []string{"intro_content:brand_story"}},
		{"medium", 90, 2, []string{"news:latest", "faq:common"}},
		{"high", 150, 10, []string{"product_deep_dive:details", "download_resource:download_brochure", "live_chat:chat"}},
	}

	s := NewEngagementStrategy(testContents())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vc := visitor.New("v")
			vc.Behavior.TotalTimeSpentSeconds = tt.seconds
			vc.Behavior.InteractionCount = tt.interactions
			items, err := s.Recommend(context.Background(), vc, tuesdayMorning)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			assertKeys(t, items, tt.want...)
		})
	}
}

func TestLocationStrategy(t *testing.T) {
	t.Parallel()

	origin := &geo.Coordinate{Lon: 102.71, Lat: 25.04}
	repo := &mockStoreRepository{stores: []content.Item{
		store("near", 102.718, 25.04, "五华区"), // ~0.8km
		store("other", 102.75, 25.04, "五华区"), // ~4km
	}}
	farRepo := &mockStoreRepository{stores: []content.Item{
		store("far", 102.81, 25.04, "官渡区"), // ~10km
	}}

	tests := []struct {
		name string
		repo *mockStoreRepository
		loc  *visitor.Location
		want []string
	}{
		{"no location", repo, nil, nil},
		{"district only without coordinates", repo, &visitor.Location{District: "五华区"}, nil},
		{"close store", repo, &visitor.Location{Coordinates: origin}, []string{"store_navigation:navigate", "store_promo:nearby_offer"}},
		{"close store with district", repo, &visitor.Location{Coordinates: origin, District: "五华区"},
			[]string{"store_navigation:navigate", "store_promo:nearby_offer", "district_summary:五华区"}},
		{"store within twenty km", farRepo, &visitor.Location{Coordinates: origin}, []string{"nearby_store:nearest"}},
		{"empty district", farRepo, &visitor.Location{Coordinates: origin, District: "五华区"}, []string{"nearby_store:nearest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vc := visitor.New("v")
			vc.Location = tt.loc
			items, err := NewLocationStrategy(tt.repo, DefaultConfig()).Recommend(context.Background(), vc, tuesdayMorning)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			assertKeys(t, items, tt.want...)
		})
	}
}

func TestLocationStrategy_Details(t *testing.T) {
	t.Parallel()

	repo := &mockStoreRepository{stores: []content.Item{
		store("near", 102.718, 25.04, "五华区"),
		store("other", 102.75, 25.04, "五华区"),
	}}
	vc := visitor.New("v")
	vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04}, District: "五华区"}

	items, err := NewLocationStrategy(repo, DefaultConfig()).Recommend(context.Background(), vc, tuesdayMorning)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Priority != 9 || items[0].DisplayPosition != PositionModal {
		t.Errorf("navigate item = %+v, want priority 9 modal", items[0])
	}
	if d := items[0].Payload["distance_km"]; d != 0.8 {
		t.Errorf("distance_km = %v, want 0.8", d)
	}
	if n := items[2].Payload["count"]; n != 2 {
		t.Errorf("district count = %v, want 2", n)
	}
}

func TestLocationStrategy_Errors(t *testing.T) {
	t.Parallel()

	vc := visitor.New("v")
	vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04}, District: "五华区"}

	if _, err := NewLocationStrategy(&mockStoreRepository{nearbyErr: errLookup}, DefaultConfig()).
		Recommend(context.Background(), vc, tuesdayMorning); !errors.Is(err, errLookup) {
		t.Errorf("nearby error = %v, want errLookup", err)
	}
	if _, err := NewLocationStrategy(&mockStoreRepository{districtErr: errLookup}, DefaultConfig()).
		Recommend(context.Background(), vc, tuesdayMorning); !errors.Is(err, errLookup) {
		t.Errorf("district error = %v, want errLookup", err)
	}
}

func TestTemporalStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		at   time.Time
		want []string
	}{
		{"weekday morning", tuesdayMorning, []string{"business_hours_banner:open_now"}},
		{"saturday evening", saturdayNight, []string{"business_hours_banner:open_now", "weekend_special:weekend", "evening_activity:evening"}},
		{"weekday late night", time.Date(2026, 10, 20, 23, 0, 0, 0, time.UTC), nil},
		{"sunday early", time.Date(2026, 10, 25, 8, 0, 0, 0, time.UTC), []string{"weekend_special:weekend"}},
	}

	s := NewTemporalStrategy(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items, err := s.Recommend(context.Background(), visitor.New("v"), tt.at)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			assertKeys(t, items, tt.want...)
		})
	}
}
