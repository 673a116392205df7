package geo

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
// Range validation is the caller's responsibility; NaN propagates.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the great-circle distance between two coordinates
// in meters, using the haversine formula.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// FormatDistance renders a distance in meters as a human-readable
// string: "999m" below one kilometer, "1.24km" at or above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.2fkm", meters/1000)
}

// CheckGeofence reports whether the user coordinate lies within
// radiusMeters of center, along with the measured distance. It never
// fails; rejecting an attempt based on the result is the caller's call.
func CheckGeofence(user, center Coordinate, radiusMeters float64) (bool, float64) {
	distance := Distance(user, center)
	return distance <= radiusMeters, distance
}
