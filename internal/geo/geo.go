// Package geo resolves a customer coordinate against the fulfillment
// network: great-circle distances, the nearest point, and the distance-tiered
// delivery policy.
package geo

import (
	"errors"
	"math"
)

// ErrNoPoints indicates that the fulfillment point list was empty. Callers
// must confirm at least one point exists before asking for the nearest one.
var ErrNoPoints = errors.New("no fulfillment points provided")

// Coordinate is a WGS84 longitude/latitude pair.
type Coordinate struct {
	Lon float64
	Lat float64
}

// FulfillmentPoint is a physical location able to hand off or deliver an
// order. The commerce backend is the source of truth; this package only
// reads it.
type FulfillmentPoint struct {
	ID        string
	Position  Coordinate
	Address   string
	CourierID int64
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance between two
// coordinates in kilometers.
func DistanceKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Nearest returns the fulfillment point closest to origin together with its
// distance in kilometers. Ties resolve to the first occurrence in the input
// order. Returns ErrNoPoints when points is empty.
func Nearest(origin Coordinate, points []FulfillmentPoint) (FulfillmentPoint, float64, error) {
	if len(points) == 0 {
		return FulfillmentPoint{}, 0, ErrNoPoints
	}

	best := points[0]
	bestDistance := DistanceKm(origin, points[0].Position)

	for _, point := range points[1:] {
		d := DistanceKm(origin, point.Position)
		if d < bestDistance {
			best = point
			bestDistance = d
		}
	}

	return best, bestDistance, nil
}
