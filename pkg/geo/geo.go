// Package geo answers "which points lie within N miles" queries.
package geo

import (
	"context"
	"math"
)

// EarthRadiusMiles is the mean radius used for distance maths.
const EarthRadiusMiles = 3963.0

// Index keeps point locations keyed by id.
type Index interface {
	Upsert(ctx context.Context, id string, lat, lng float64) error
	Remove(ctx context.Context, id string) error
	Within(ctx context.Context, lat, lng, miles float64) ([]string, error)
}

// HaversineMiles is the great-circle distance between two points in miles.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// ValidCoords reports whether lat/lng are inside their legal ranges.
func ValidCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
