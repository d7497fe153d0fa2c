// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package geo provides great-circle distance and proximity lookups.
//
// Distances are computed with the Haversine formula on a sphere of radius
// 6371 km. Callers compare thresholds against the full-precision value and
// only round for display:
//
//	km := geo.DistanceKm(visitor, store)
//	if km < 5 {
//	    label := geo.FormatKm(km) // "0.8km"
//	}
//
// SpatialIndex buckets coordinates into a hash grid so radius queries only
// inspect nearby cells instead of every known point.
package geo
