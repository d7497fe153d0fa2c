// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

var (
	tuesdayMorning = time.Date(2026, 10, 20, 11, 0, 0, 0, time.UTC)
	saturdayNight  = time.Date(2026, 10, 24, 19, 0, 0, 0, time.UTC)
	errLookup      = errors.New("lookup failed")
)

func fastConfig() *Config {
	cfg := DefaultConfig()
	cfg.StrategyTimeout = 50 * time.Millisecond
	return cfg
}

func TestComposer_FallbackWhenAllStrategiesFail(t *testing.T) {
	t.Parallel()

	c := NewComposerWithStrategies(fastConfig(), clock.NewFixed(tuesdayMorning), testLogger(),
		&mockStrategy{name: StrategyJourney, err: errLookup},
		&mockStrategy{name: StrategyInterest, err: errLookup},
		&mockStrategy{name: StrategyEngagement, panic: true},
		&mockStrategy{name: StrategyLocation, block: true},
		&mockStrategy{name: StrategyTemporal, err: errLookup},
	)

	resp := c.Recommend(context.Background(), visitor.New("v1"))

	if !resp.Degraded {
		t.Error("Degraded = false, want true")
	}
	if len(resp.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(resp.Items))
	}
	wantTypes := []string{TypeCompanyOverview, TypeStoreNetwork, TypeContactCard}
	wantPriorities := []int{10, 8, 6}
	for i := range wantTypes {
		if resp.Items[i].ContentType != wantTypes[i] || resp.Items[i].Priority != wantPriorities[i] {
			t.Errorf("Items[%d] = %s/%d, want %s/%d", i,
				resp.Items[i].ContentType, resp.Items[i].Priority, wantTypes[i], wantPriorities[i])
		}
	}
	for _, r := range resp.Strategies {
		if !r.Failed() {
			t.Errorf("strategy %s report not failed", r.Name)
		}
	}
	if !strings.Contains(resp.Strategies[2].Error, ErrStrategyPanic.Error()) {
		t.Errorf("panic strategy error = %q, want it to mention %q", resp.Strategies[2].Error, ErrStrategyPanic)
	}
}

func TestComposer_PartialFailureIsolated(t *testing.T) {
	t.Parallel()

	c := NewComposerWithStrategies(fastConfig(), clock.NewFixed(tuesdayMorning), testLogger(),
		&mockStrategy{name: "broken", err: errLookup},
		&mockStrategy{name: "slow", block: true},
		&mockStrategy{name: "ok", items: []Item{{ContentType: "a", Payload: subtype("x"), Priority: 1}}},
	)

	resp := c.Recommend(context.Background(), visitor.New("v1"))

	if resp.Degraded {
		t.Error("Degraded = true, want false")
	}
	if len(resp.Items) != 1 || resp.Items[0].ContentType != "a" || resp.Items[0].Strategy != "ok" {
		t.Errorf("Items = %+v, want only the ok strategy's item", resp.Items)
	}
	if !resp.Strategies[0].Failed() || !resp.Strategies[1].Failed() || resp.Strategies[2].Failed() {
		t.Errorf("Strategies = %+v", resp.Strategies)
	}
}

func TestComposer_DedupFirstWinsAndStableSort(t *testing.T) {
	t.Parallel()

	first := &mockStrategy{name: "first", items: []Item{
		{ContentType: "contact_card", Payload: action("call"), Priority: 5, Reason: "from first"},
		{ContentType: "banner", Payload: subtype("a"), Priority: 3},
	}}
	second := &mockStrategy{name: "second", items: []Item{
		{ContentType: "contact_card", Payload: action("call"), Priority: 9, Reason: "from second"},
		{ContentType: "promo", Payload: subtype("b"), Priority: 5},
		{ContentType: "banner", Payload: subtype("c"), Priority: 3},
	}}

	c := NewComposerWithStrategies(fastConfig(), clock.NewFixed(tuesdayMorning), testLogger(), first, second)
	resp := c.Recommend(context.Background(), visitor.New("v1"))

	want := []string{"contact_card:call", "promo:b", "banner:a", "banner:c"}
	if len(resp.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d", len(resp.Items), len(want))
	}
	for i, key := range want {
		if resp.Items[i].Key() != key {
			t.Errorf("Items[%d].Key() = %q, want %q", i, resp.Items[i].Key(), key)
		}
	}
	if resp.Items[0].Reason != "from first" || resp.Items[0].Priority != 5 {
		t.Errorf("duplicate resolution kept %+v, want first strategy's item", resp.Items[0])
	}
}

func TestComposer_Idempotent(t *testing.T) {
	t.Parallel()

	stores := &mockStoreRepository{stores: []content.Item{
		store("wuhua", 102.718, 25.04, "五华区"),
		store("panlong", 102.75, 25.08, "盘龙区"),
	}}
	c := NewComposer(DefaultConfig(), testContents(), stores, clock.NewFixed(saturdayNight), testLogger())

	vc := visitor.New("v1")
	vc.VisitCount = 2
	vc.PageViews = 6
	vc.Behavior.TotalTimeSpentSeconds = 400
	vc.Behavior.SearchQueries = []string{"加盟"}
	vc.Interests = []visitor.Interest{{Category: "training", Level: 6, Keywords: []string{"职业技能"}}}
	vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04}, District: "五华区"}

	first := c.Recommend(context.Background(), vc)
	second := c.Recommend(context.Background(), vc)

	if len(first.Items) == 0 {
		t.Fatal("expected recommendations")
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Errorf("Recommend not idempotent:\n%+v\n%+v", first.Items, second.Items)
	}
	for i := 1; i < len(first.Items); i++ {
		if first.Items[i].Priority > first.Items[i-1].Priority {
			t.Errorf("Items not sorted by priority at %d", i)
		}
	}
}

func TestComposer_MaxItems(t *testing.T) {
	t.Parallel()

	cfg := fastConfig()
	cfg.MaxItems = 2
	c := NewComposerWithStrategies(cfg, clock.NewFixed(tuesdayMorning), testLogger(),
		&mockStrategy{name: "s", items: []Item{
			{ContentType: "a", Priority: 1}, {ContentType: "b", Priority: 2}, {ContentType: "c", Priority: 3},
		}},
	)
	resp := c.Recommend(context.Background(), visitor.New("v"))
	if len(resp.Items) != 2 || resp.Items[0].ContentType != "c" {
		t.Errorf("Items = %+v, want top 2", resp.Items)
	}
	if got := resp.Top(1); len(got) != 1 {
		t.Errorf("Top(1) len = %d", len(got))
	}
}

func TestComposer_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	c := NewComposer(DefaultConfig(), testContents(), &mockStoreRepository{}, clock.NewFixed(tuesdayMorning), testLogger())
	vc := visitor.New("v1")
	vc.Interests = []visitor.Interest{{Category: "franchise", Level: 9}}
	before := vc.Clone()

	c.Recommend(context.Background(), vc)

	if !reflect.DeepEqual(vc, before) {
		t.Error("Recommend mutated the visitor context")
	}
}

func TestComposer_Strategies(t *testing.T) {
	t.Parallel()

	c := NewComposer(nil, testContents(), &mockStoreRepository{}, nil, testLogger())
	want := []string{StrategyJourney, StrategyInterest, StrategyEngagement, StrategyLocation, StrategyTemporal}
	if got := c.Strategies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strategies() = %v, want %v", got, want)
	}
}

func TestItem_Key(t *testing.T) {
	t.Parallel()

	tests := []struct {
		item Item
		want string
	}{
		{Item{ContentType: "a", Payload: subtype("x")}, "a:x"},
		{Item{ContentType: "a", Payload: action("y")}, "a:y"},
		{Item{ContentType: "a", Payload: map[string]any{"subtype": "x", "action": "y"}}, "a:x"},
		{Item{ContentType: "a"}, "a:"},
	}
	for _, tt := range tests {
		if got := tt.item.Key(); got != tt.want {
			t.Errorf("Key() = %q, want %q", got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.StrategyTimeout = 0 }},
		{"negative max items", func(c *Config) { c.MaxItems = -1 }},
		{"threshold above ten", func(c *Config) { c.Thresholds.Stores = 11 }},
		{"nearby below navigate", func(c *Config) { c.NearbyRadiusKm = 1 }},
		{"zero nearby limit", func(c *Config) { c.NearbyLimit = 0 }},
		{"too many next actions", func(c *Config) { c.MaxNextActions = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
