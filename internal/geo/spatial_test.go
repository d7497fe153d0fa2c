// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package geo

import (
	"fmt"
	"sync"
	"testing"
)

func TestSpatialIndex_InsertRemove(t *testing.T) {
	t.Parallel()

	idx := NewSpatialIndex(5)
	idx.Insert("wuhua", Coordinate{Lon: 102.7047, Lat: 25.0430}, "五华区")
	idx.Insert("panlong", Coordinate{Lon: 102.7200, Lat: 25.0700}, "盘龙区")

	if idx.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", idx.Size())
	}

	// Re-inserting replaces rather than duplicates
	idx.Insert("wuhua", Coordinate{Lon: 102.7100, Lat: 25.0410}, "五华区")
	if idx.Size() != 2 {
		t.Errorf("Size() after update = %d, want 2", idx.Size())
	}

	if !idx.Remove("wuhua") {
		t.Error("Remove('wuhua') = false, want true")
	}
	if idx.Remove("wuhua") {
		t.Error("second Remove('wuhua') = true, want false")
	}
	if idx.Size() != 1 {
		t.Errorf("Size() after remove = %d, want 1", idx.Size())
	}
}

func TestSpatialIndex_Nearby(t *testing.T) {
	t.Parallel()

	idx := NewSpatialIndex(2)
	origin := Coordinate{Lon: 102.71, Lat: 25.04}

	idx.Insert("far", Coordinate{Lon: 102.85, Lat: 25.04}, nil)   // ~14km
	idx.Insert("near", Coordinate{Lon: 102.718, Lat: 25.04}, nil) // ~0.8km
	idx.Insert("mid", Coordinate{Lon: 102.74, Lat: 25.04}, nil)   // ~3km
	idx.Insert("beijing", Coordinate{Lon: 116.40, Lat: 39.90}, nil)

	hits := idx.Nearby(origin, 20)
	if len(hits) != 3 {
		t.Fatalf("Nearby() returned %d hits, want 3", len(hits))
	}

	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if hits[i].ID != id {
			t.Errorf("hits[%d].ID = %q, want %q", i, hits[i].ID, id)
		}
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].DistanceKm < hits[i-1].DistanceKm {
			t.Errorf("hits not sorted by distance at %d", i)
		}
	}

	if hits := idx.Nearby(origin, 1); len(hits) != 1 || hits[0].ID != "near" {
		t.Errorf("Nearby(1km) = %+v, want only 'near'", hits)
	}
}

func TestSpatialIndex_NearbyTiesByID(t *testing.T) {
	t.Parallel()

	idx := NewSpatialIndex(10)
	c := Coordinate{Lon: 102.72, Lat: 25.05}
	idx.Insert("b", c, nil)
	idx.Insert("a", c, nil)

	hits := idx.Nearby(Coordinate{Lon: 102.71, Lat: 25.04}, 10)
	if len(hits) != 2 || hits[0].ID != "a" || hits[1].ID != "b" {
		t.Errorf("Nearby() ties = %+v, want a before b", hits)
	}
}

func TestSpatialIndex_Concurrent(t *testing.T) {
	t.Parallel()

	idx := NewSpatialIndex(10)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := fmt.Sprintf("s%d-%d", n, j)
				idx.Insert(id, Coordinate{Lon: 102.7 + float64(j)*0.001, Lat: 25.0}, nil)
				idx.Nearby(Coordinate{Lon: 102.7, Lat: 25.0}, 5)
			}
		}(i)
	}
	wg.Wait()

	if idx.Size() != 500 {
		t.Errorf("Size() = %d, want 500", idx.Size())
	}
}
