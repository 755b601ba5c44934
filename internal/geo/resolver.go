// README: Pluggable coordinate resolution plus pure distance helpers.
package geo

import (
	"context"
	"math"

	"medtransit/internal/types"
)

// Resolver turns free-text location descriptions (street addresses, driver
// home bases) into coordinates. ok is false when the text cannot be resolved;
// callers must treat that as "distance unknown", not as an error.
type Resolver interface {
	Resolve(ctx context.Context, text string) (p types.Point, ok bool, err error)
}

const earthRadiusMiles = 3958.8

// MilesBetween returns the great-circle distance in statute miles between two
// points specified in decimal degrees.
func MilesBetween(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
