// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/visitor"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockContentRepository implements ContentRepository for testing.
type mockContentRepository struct {
	byType     map[string]content.Item
	candidates map[string][]content.Item
	err        error
	calls      atomic.Int32
}

func (m *mockContentRepository) GetByType(_ context.Context, contentType string) (*content.Item, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if it, ok := m.byType[contentType]; ok {
		return &it, nil
	}
	return nil, nil
}

func (m *mockContentRepository) GetRecommendationsFor(_ context.Context, contentType string) ([]content.Item, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates[contentType], nil
}

// mockStoreRepository implements StoreRepository for testing.
type mockStoreRepository struct {
	stores      []content.Item
	nearbyErr   error
	districtErr error
}

func (m *mockStoreRepository) GetNearby(_ context.Context, at geo.Coordinate, opts content.NearbyOptions) ([]content.Nearby, error) {
	if m.nearbyErr != nil {
		return nil, m.nearbyErr
	}
	var out []content.Nearby
	for _, s := range m.stores {
		d := geo.DistanceKm(at, *s.Coordinates)
		if opts.MaxDistanceKm > 0 && d > opts.MaxDistanceKm {
			continue
		}
		out = append(out, content.Nearby{Item: s, DistanceKm: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *mockStoreRepository) GetByDistrict(_ context.Context, district string) ([]content.Item, error) {
	if m.districtErr != nil {
		return nil, m.districtErr
	}
	var out []content.Item
	for _, s := range m.stores {
		if s.District == district {
			out = append(out, s)
		}
	}
	return out, nil
}

// mockStrategy implements Strategy for testing.
type mockStrategy struct {
	name  string
	items []Item
	err   error
	panic bool
	block bool
}

func (m *mockStrategy) Name() string { return m.name }

func (m *mockStrategy) Recommend(ctx context.Context, _ visitor.Context, _ time.Time) ([]Item, error) {
	if m.panic {
		panic("boom")
	}
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.items, m.err
}

func store(id string, lon, lat float64, district string) content.Item {
	return content.Item{
		ID:          id,
		Name:        id,
		Coordinates: &geo.Coordinate{Lon: lon, Lat: lat},
		Address:     district + " 1 号",
		District:    district,
		City:        "昆明",
	}
}

func testContents() *mockContentRepository {
	return &mockContentRepository{
		byType: map[string]content.Item{
			"about":     {ID: "about", Kind: content.KindAbout, Title: "About us"},
			"franchise": {ID: "franchise", Kind: content.KindFranchise, Title: "Franchise"},
		},
		candidates: map[string][]content.Item{
			"products": {{ID: "p1", Brand: "A"}, {ID: "p2", Brand: "A"}, {ID: "p3", Brand: "A"}, {ID: "p4", Brand: "A"}},
			"training": {{ID: "t1", Duration: "2d", Level: "basic"}},
			"news":     {{ID: "n1", Title: "News", Description: "Body"}},
		},
	}
}
