// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
)

// MemoryContentRepository serves content items from memory, grouped by
// canonical category. It is safe for concurrent use.
type MemoryContentRepository struct {
	mu     sync.RWMutex
	byType map[string][]content.Item
	byID   map[string]content.Item
}

// NewMemoryContentRepository indexes items in the given order.
func NewMemoryContentRepository(items []content.Item) *MemoryContentRepository {
	r := &MemoryContentRepository{
		byType: make(map[string][]content.Item),
		byID:   make(map[string]content.Item, len(items)),
	}
	for _, it := range items {
		r.Put(it)
	}
	return r
}

// Put adds or replaces an item.
func (r *MemoryContentRepository) Put(it content.Item) {
	key := typeKey(it)

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[it.ID]; ok {
		oldKey := typeKey(old)
		bucket := r.byType[oldKey]
		for i := range bucket {
			if bucket[i].ID == it.ID {
				r.byType[oldKey] = append(bucket[:i:i], bucket[i+1:]...)
				break
			}
		}
	}
	r.byID[it.ID] = it
	r.byType[key] = append(r.byType[key], it)
}

// GetByType returns the first item of contentType, or nil when there is none.
func (r *MemoryContentRepository) GetByType(_ context.Context, contentType string) (*content.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.byType[content.CanonicalCategory(contentType)]
	if len(bucket) == 0 {
		return nil, nil
	}
	it := bucket[0]
	return &it, nil
}

// GetRecommendationsFor returns every item of contentType in insertion order.
func (r *MemoryContentRepository) GetRecommendationsFor(_ context.Context, contentType string) ([]content.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.byType[content.CanonicalCategory(contentType)]
	out := make([]content.Item, len(bucket))
	copy(out, bucket)
	return out, nil
}

// Get returns the item with id.
func (r *MemoryContentRepository) Get(_ context.Context, id string) (content.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.byID[id]
	if !ok {
		return content.Item{}, ErrNotFound
	}
	return it, nil
}

// Len returns the number of items.
func (r *MemoryContentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// typeKey picks the bucket an item is served from: its category when set,
// otherwise its kind.
func typeKey(it content.Item) string {
	if strings.TrimSpace(it.Category) != "" {
		return content.CanonicalCategory(it.Category)
	}
	if k, ok := content.JourneyType(content.Classify(it)); ok {
		return k
	}
	return string(content.Classify(it))
}

// MemoryStoreRepository serves physical stores from a spatial index.
type MemoryStoreRepository struct {
	mu         sync.RWMutex
	index      *geo.SpatialIndex
	byID       map[string]content.Item
	byDistrict map[string][]string
}

// NewMemoryStoreRepository indexes stores. Items without coordinates are
// still reachable by district and ID but never returned by GetNearby.
func NewMemoryStoreRepository(stores []content.Item) *MemoryStoreRepository {
	r := &MemoryStoreRepository{
		index:      geo.NewSpatialIndex(0),
		byID:       make(map[string]content.Item, len(stores)),
		byDistrict: make(map[string][]string),
	}
	for _, s := range stores {
		r.Put(s)
	}
	return r
}

// Put adds or replaces a store.
func (r *MemoryStoreRepository) Put(store content.Item) {
	if store.Kind == content.KindUnknown {
		store.Kind = content.KindStore
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[store.ID]; ok {
		r.removeDistrictLocked(old)
		r.index.Remove(store.ID)
	}
	r.byID[store.ID] = store
	if store.District != "" {
		r.byDistrict[store.District] = append(r.byDistrict[store.District], store.ID)
	}
	if store.Coordinates != nil {
		r.index.Insert(store.ID, *store.Coordinates, nil)
	}
}

func (r *MemoryStoreRepository) removeDistrictLocked(store content.Item) {
	ids := r.byDistrict[store.District]
	for i, id := range ids {
		if id == store.ID {
			r.byDistrict[store.District] = append(ids[:i:i], ids[i+1:]...)
			return
		}
	}
}

// GetNearby returns stores around at, closest first. A zero MaxDistanceKm
// searches every store; a zero Limit returns every match.
func (r *MemoryStoreRepository) GetNearby(_ context.Context, at geo.Coordinate, opts content.NearbyOptions) ([]content.Nearby, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []content.Nearby
	if opts.MaxDistanceKm > 0 {
		for _, hit := range r.index.Nearby(at, opts.MaxDistanceKm) {
			out = append(out, content.Nearby{Item: r.byID[hit.ID], DistanceKm: hit.DistanceKm})
		}
	} else {
		for _, s := range r.byID {
			if s.Coordinates == nil {
				continue
			}
			out = append(out, content.Nearby{Item: s, DistanceKm: geo.DistanceKm(at, *s.Coordinates)})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].DistanceKm != out[j].DistanceKm {
				return out[i].DistanceKm < out[j].DistanceKm
			}
			return out[i].Item.ID < out[j].Item.ID
		})
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// GetByDistrict returns the stores of a district in insertion order.
func (r *MemoryStoreRepository) GetByDistrict(_ context.Context, district string) ([]content.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byDistrict[district]
	out := make([]content.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// Get returns the store with id.
func (r *MemoryStoreRepository) Get(_ context.Context, id string) (content.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return content.Item{}, ErrNotFound
	}
	return s, nil
}

// Len returns the number of stores.
func (r *MemoryStoreRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
