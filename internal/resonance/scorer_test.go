// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package resonance

import (
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

// tuesdayMorning is 11:00 on Tuesday 2026-10-20.
var tuesdayMorning = time.Date(2026, 10, 20, 11, 0, 0, 0, time.UTC)

func newTestScorer(t *testing.T, at time.Time) *Scorer {
	t.Helper()
	return NewScorer(DefaultConfig(), clock.NewFixed(at))
}

func kunmingStore(lon, lat float64) content.Item {
	return content.Item{
		ID:            "store-wuhua",
		Name:          "五华旗舰店",
		Coordinates:   &geo.Coordinate{Lon: lon, Lat: lat},
		Address:       "五华区东风西路 1 号",
		District:      "五华区",
		City:          "昆明",
		BusinessHours: &content.Hours{Open: 9, Close: 22},
	}
}

func TestCalculate_EndToEndStoreScenario(t *testing.T) {
	t.Parallel()

	if tuesdayMorning.Weekday() != time.Tuesday {
		t.Fatalf("fixture is %s, want Tuesday", tuesdayMorning.Weekday())
	}

	vc := visitor.New("v1")
	vc.VisitCount = 1
	vc.Location = &visitor.Location{
		Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04},
		District:    "五华区",
	}

	item := kunmingStore(102.718, 25.04) // ~0.8km east
	res := newTestScorer(t, tuesdayMorning).Calculate(vc, item)

	if res.DistanceKm == nil || geo.RoundKm(*res.DistanceKm) != 0.8 {
		t.Fatalf("DistanceKm = %v, want 0.8", res.DistanceKm)
	}
	if res.Components.Location != 1.0 {
		t.Errorf("Location = %v, want 1.0", res.Components.Location)
	}
	if res.Components.Temporal != 1.0 {
		t.Errorf("Temporal = %v, want 1.0", res.Components.Temporal)
	}
	if res.Score < 0.55 {
		t.Errorf("Score = %v, want >= 0.55", res.Score)
	}
	if res.Strength != StrengthModerate && res.Strength != StrengthStrong {
		t.Errorf("Strength = %q, want moderate or strong", res.Strength)
	}
	if len(res.Reasons) == 0 || !strings.Contains(res.Reasons[0], "0.8km") {
		t.Errorf("Reasons = %v, want a distance reason first", res.Reasons)
	}
}

func TestCalculate_EmptyContextNeutralDefaults(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	empty := visitor.New("new")

	items := []content.Item{
		{ID: "about", Kind: content.KindAbout, Title: "Our story"},
		{ID: "article", Title: "News", Description: "Body"},
		{ID: "blank"},
		{ID: "training", Duration: "2 days", Level: "basic"},
		{ID: "product", Brand: "Acme", Price: 10},
	}

	for _, it := range items {
		res := s.Calculate(empty, it)
		if res.Components.Location != 0.5 {
			t.Errorf("%s: Location = %v, want 0.5 for item without location", it.ID, res.Components.Location)
		}
		if res.Components.Interest != 0.3 {
			t.Errorf("%s: Interest = %v, want 0.3 with no interests", it.ID, res.Components.Interest)
		}
		kind := content.Classify(it)
		want := 0.5
		if jt, ok := content.JourneyType(kind); ok {
			want = journeyTable[visitor.StageAwareness][jt]
		}
		if res.Components.Journey != want {
			t.Errorf("%s: Journey = %v, want %v", it.ID, res.Components.Journey, want)
		}
		if math.IsNaN(res.Score) {
			t.Errorf("%s: Score is NaN", it.ID)
		}
	}
}

func TestCalculate_LocationMonotonicInDistance(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	vc := visitor.New("v1")
	vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04}}

	prev := math.Inf(1)
	prevKm := -1.0
	for step := 0; step <= 300; step++ {
		item := kunmingStore(102.71+float64(step)*0.001, 25.04)
		res := s.Calculate(vc, item)
		if *res.DistanceKm <= prevKm {
			t.Fatalf("fixture distances must increase")
		}
		if res.Components.Location > prev {
			t.Fatalf("Location rose from %v to %v at %.2fkm", prev, res.Components.Location, *res.DistanceKm)
		}
		prev, prevKm = res.Components.Location, *res.DistanceKm
	}
	if prev != 0.1 {
		t.Errorf("Location at %.1fkm = %v, want far score 0.1", prevKm, prev)
	}
}

func TestCalculate_LocationBranches(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	article := content.Item{ID: "evt", Title: "Opening", Description: "Event", District: "五华区", City: "昆明"}

	tests := []struct {
		name string
		loc  *visitor.Location
		item content.Item
		want float64
	}{
		{"visitor without location", nil, article, 0.3},
		{"district match", &visitor.Location{District: "五华区"}, article, 0.8},
		{"city match", &visitor.Location{District: "盘龙区", City: "昆明"}, article, 0.6},
		{"no match", &visitor.Location{City: "大理"}, article, 0.3},
		{"store without visitor coords falls back to district", &visitor.Location{District: "五华区"}, kunmingStore(102.8, 25.1), 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vc := visitor.New("v")
			vc.Location = tt.loc
			if got := s.Calculate(vc, tt.item).Components.Location; got != tt.want {
				t.Errorf("Location = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculate_Temporal(t *testing.T) {
	t.Parallel()

	saturdayNoon := time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC)
	tuesdayEvening := time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC)
	tuesdayLate := time.Date(2026, 10, 20, 23, 0, 0, 0, time.UTC)

	storeDefaultHours := kunmingStore(102.71, 25.04)
	storeDefaultHours.BusinessHours = nil
	training := content.Item{
		ID: "t1", Duration: "3 days", Level: "advanced",
		Sessions: []time.Time{tuesdayMorning.Add(10 * 24 * time.Hour)},
	}
	staleTraining := training
	staleTraining.Sessions = []time.Time{tuesdayMorning.Add(-24 * time.Hour)}
	product := content.Item{ID: "p1", Brand: "Acme"}

	tests := []struct {
		name string
		at   time.Time
		item content.Item
		want float64
	}{
		{"store open", tuesdayMorning, storeDefaultHours, 1.0},
		{"store closed", tuesdayLate, storeDefaultHours, 0.3},
		{"store own hours open at nine", time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC), kunmingStore(102.71, 25.04), 1.0},
		{"default hours closed at nine", time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC), storeDefaultHours, 0.3},
		{"training upcoming", tuesdayMorning, training, 0.9},
		{"training past falls back to generic", tuesdayMorning, staleTraining, 0.5},
		{"weekend product", saturdayNoon, product, 0.8},
		{"evening product", tuesdayEvening, product, 0.7},
		{"weekday morning product", tuesdayMorning, product, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestScorer(t, tt.at)
			if got := s.Calculate(visitor.New("v"), tt.item).Components.Temporal; got != tt.want {
				t.Errorf("Temporal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculate_InterestAndBehavior(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	item := content.Item{
		ID: "adv", Kind: content.KindTraining, Name: "Professional styling course",
		Duration: "5 days", Level: "advanced",
	}

	vc := visitor.New("v")
	vc.Interests = []visitor.Interest{{Category: "training", Level: 6, Keywords: []string{"Professional"}}}
	vc.PageViews = 11
	vc.Behavior.TotalTimeSpentSeconds = 700
	vc.Behavior.SearchQueries = []string{"styling"}
	vc.Behavior.ClickedElements = []string{"course-card", "footer"}

	res := s.Calculate(vc, item)

	// 6*0.1 category + 6*0.05 keyword
	if math.Abs(res.Components.Interest-0.9) > 1e-9 {
		t.Errorf("Interest = %v, want 0.9", res.Components.Interest)
	}
	if res.Components.Behavior != 1.0 {
		t.Errorf("Behavior = %v, want clamped 1.0", res.Components.Behavior)
	}
	if res.Reasons[0] != ReasonInterest || res.Reasons[1] != ReasonBehavior {
		t.Errorf("Reasons = %v, want interest then behavior first", res.Reasons)
	}
}

func TestCalculate_JourneyUsesDerivedStage(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	vc := visitor.New("v")
	vc.VisitCount = 5
	vc.Behavior.TotalTimeSpentSeconds = 700
	vc.Behavior.PagesVisited = []string{"/", "/franchise"}
	vc.Journey = visitor.StageAwareness // stale; must be ignored

	res := s.Calculate(vc, content.Item{ID: "f", Kind: content.KindFranchise})
	if res.Components.Journey != 1.0 {
		t.Errorf("Journey = %v, want 1.0 for decision x franchise", res.Components.Journey)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	vc := visitor.New("v")
	vc.Interests = []visitor.Interest{{Category: "stores", Level: 7, Keywords: []string{"旗舰"}}}
	vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{Lon: 102.70, Lat: 25.03}}
	item := kunmingStore(102.718, 25.04)

	first := s.Calculate(vc, item)
	second := s.Calculate(vc, item)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Calculate not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestCalculate_BoundedAndReasonsNonEmpty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	s := newTestScorer(t, tuesdayMorning)
	categories := []string{"stores", "franchise", "training", "products", "about", "加盟", "unknown"}

	for i := 0; i < 500; i++ {
		vc := visitor.New("v")
		vc.VisitCount = rng.Intn(10)
		vc.PageViews = rng.Intn(30)
		vc.Behavior.TotalTimeSpentSeconds = rng.Float64() * 3000
		for j := rng.Intn(4); j > 0; j-- {
			vc.Interests = append(vc.Interests, visitor.Interest{
				Category: categories[rng.Intn(len(categories))],
				Level:    rng.Intn(11),
				Keywords: []string{"store", "pro"},
			})
			vc.Behavior.SearchQueries = append(vc.Behavior.SearchQueries, "store")
			vc.Behavior.ClickedElements = append(vc.Behavior.ClickedElements, "store-map")
		}
		if rng.Intn(2) == 0 {
			vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{
				Lon: 102.5 + rng.Float64(), Lat: 24.5 + rng.Float64(),
			}}
		}

		item := kunmingStore(102.5+rng.Float64(), 24.5+rng.Float64())
		item.Kind = content.Kinds[rng.Intn(len(content.Kinds))]

		res := s.Calculate(vc, item)
		if res.Score < 0 || res.Score > 1 || math.IsNaN(res.Score) {
			t.Fatalf("iteration %d: Score = %v out of [0,1]", i, res.Score)
		}
		for name, v := range map[string]float64{
			"interest": res.Components.Interest, "location": res.Components.Location,
			"behavior": res.Components.Behavior, "temporal": res.Components.Temporal,
			"journey": res.Components.Journey,
		} {
			if v < 0 || v > 1 {
				t.Fatalf("iteration %d: %s component = %v out of [0,1]", i, name, v)
			}
		}
		if len(res.Reasons) == 0 {
			t.Fatalf("iteration %d: Reasons empty", i)
		}
	}
}

func TestCalculate_FallbackReason(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	res := s.Calculate(visitor.New("v"), content.Item{ID: "blank"})
	if len(res.Reasons) != 1 || res.Reasons[0] != ReasonFallback {
		t.Errorf("Reasons = %v, want [%q]", res.Reasons, ReasonFallback)
	}
	if res.Strength != StrengthWeak {
		t.Errorf("Strength = %q, want weak", res.Strength)
	}
}

func TestScoreBatch(t *testing.T) {
	t.Parallel()

	s := newTestScorer(t, tuesdayMorning)
	vc := visitor.New("v")
	vc.Location = &visitor.Location{Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04}}

	far := kunmingStore(102.95, 25.04)
	far.ID = "far"
	near := kunmingStore(102.712, 25.04)
	near.ID = "near"

	ranked := s.ScoreBatch(vc, []content.Item{far, near})
	if len(ranked) != 2 || ranked[0].Item.ID != "near" {
		t.Errorf("ScoreBatch order = %v, want near first", []string{ranked[0].Item.ID, ranked[1].Item.ID})
	}
}

func TestStrengthFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Strength
	}{
		{1, StrengthPerfect},
		{0.9, StrengthPerfect},
		{0.89, StrengthStrong},
		{0.7, StrengthStrong},
		{0.4, StrengthModerate},
		{0.39, StrengthWeak},
		{0, StrengthWeak},
	}
	for _, tt := range tests {
		if got := StrengthFor(tt.score); got != tt.want {
			t.Errorf("StrengthFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRoundScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{0.3*0.3 + 0.2*1 + 0.2*0.2 + 0.15*1 + 0.15*0.7, 0.585},
		{0.54999999999999993, 0.55},
		{0.12344, 0.1234},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundScore(tt.in); got != tt.want {
			t.Errorf("roundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
