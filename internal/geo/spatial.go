// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package geo

import (
	"math"
	"sort"
	"sync"
)

// kmPerDegree is the approximate length of one degree of latitude.
const kmPerDegree = 111.0

// SpatialIndex divides geographic space into square cells for fast proximity queries.
// Radius queries only check cells overlapping the search box, so lookups are O(k)
// in the number of nearby entries rather than O(n) over the whole catalog.
//
// SpatialIndex is safe for concurrent use.
type SpatialIndex struct {
	mu       sync.RWMutex
	cells    map[cellKey][]*indexEntry
	entries  map[string]*indexEntry
	cellSize float64 // degrees
}

type cellKey struct {
	X, Y int
}

type indexEntry struct {
	id    string
	coord Coordinate
	data  any
	cell  cellKey
}

// Hit is a single radius-query result.
type Hit struct {
	ID         string
	Coordinate Coordinate
	DistanceKm float64
	Data       any
}

// NewSpatialIndex creates an index with cells of roughly cellSizeKm on each side.
// Non-positive sizes default to 10km, which suits city-scale store lookups.
func NewSpatialIndex(cellSizeKm float64) *SpatialIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = 10
	}
	return &SpatialIndex{
		cells:    make(map[cellKey][]*indexEntry),
		entries:  make(map[string]*indexEntry),
		cellSize: cellSizeKm / kmPerDegree,
	}
}

func (s *SpatialIndex) keyFor(c Coordinate) cellKey {
	lon := c.Lon
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return cellKey{
		X: int(math.Floor(lon / s.cellSize)),
		Y: int(math.Floor(c.Lat / s.cellSize)),
	}
}

// Insert adds or replaces the entry stored under id.
func (s *SpatialIndex) Insert(id string, c Coordinate, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[id]; ok {
		s.removeFromCellLocked(existing)
	}

	e := &indexEntry{id: id, coord: c, data: data, cell: s.keyFor(c)}
	s.cells[e.cell] = append(s.cells[e.cell], e)
	s.entries[id] = e
}

// Remove deletes the entry stored under id. It reports whether an entry existed.
func (s *SpatialIndex) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return false
	}
	s.removeFromCellLocked(e)
	delete(s.entries, id)
	return true
}

// removeFromCellLocked removes e from its cell. Caller must hold mu.
func (s *SpatialIndex) removeFromCellLocked(e *indexEntry) {
	bucket := s.cells[e.cell]
	for i, candidate := range bucket {
		if candidate.id == e.id {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.cells, e.cell)
		return
	}
	s.cells[e.cell] = bucket
}

// Nearby returns every entry within radiusKm of c, closest first.
// Entries at equal distance are ordered by ID so results are deterministic.
func (s *SpatialIndex) Nearby(c Coordinate, radiusKm float64) []Hit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	span := int(math.Ceil(radiusKm/kmPerDegree/s.cellSize)) + 1
	// Longitude degrees shrink toward the poles; widen the X span accordingly.
	spanX := span
	if cosLat := math.Cos(c.Lat * math.Pi / 180); cosLat > 0.01 {
		spanX = int(math.Ceil(float64(span)/cosLat)) + 1
	}
	center := s.keyFor(c)

	var hits []Hit
	for dx := -spanX; dx <= spanX; dx++ {
		for dy := -span; dy <= span; dy++ {
			for _, e := range s.cells[cellKey{X: center.X + dx, Y: center.Y + dy}] {
				d := DistanceKm(c, e.coord)
				if d <= radiusKm {
					hits = append(hits, Hit{ID: e.id, Coordinate: e.coord, DistanceKm: d, Data: e.data})
				}
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].DistanceKm != hits[j].DistanceKm {
			return hits[i].DistanceKm < hits[j].DistanceKm
		}
		return hits[i].ID < hits[j].ID
	})
	return hits
}

// Size returns the number of indexed entries.
func (s *SpatialIndex) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
