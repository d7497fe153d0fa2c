// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package content

// NearbyOptions bounds a proximity lookup. Zero values mean unbounded.
type NearbyOptions struct {
	Limit         int     `json:"limit"`
	MaxDistanceKm float64 `json:"max_distance_km"`
}

// Nearby is an item paired with its distance from the query point.
type Nearby struct {
	Item       Item    `json:"item"`
	DistanceKm float64 `json:"distance_km"`
}
