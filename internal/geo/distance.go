// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package geo

import (
	"math"
	"strconv"
)

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS84 point. Field order follows GeoJSON (longitude first).
type Coordinate struct {
	Lon float64 `json:"lon" koanf:"lon" validate:"gte=-180,lte=180"`
	Lat float64 `json:"lat" koanf:"lat" validate:"gte=-90,lte=90"`
}

// DistanceKm returns the great-circle distance between a and b in kilometers.
// The result is not rounded; use RoundKm for display.
func DistanceKm(a, b Coordinate) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RoundKm rounds a distance to one decimal place.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// FormatKm renders a distance for humans, e.g. "0.8km".
func FormatKm(km float64) string {
	return strconv.FormatFloat(RoundKm(km), 'f', 1, 64) + "km"
}
