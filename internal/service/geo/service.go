// internal/service/geo/service.go

package geo

import (
	"math"

	"github.com/onyxdragun/yardsalefndr/internal/domain/geo"
)

const earthRadiusKm = 6371.0

// Distance calculates the great-circle distance between two points in kilometers
// using the haversine formula. Inputs are not range checked.
func Distance(a, b geo.Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// WithinRadius checks if p is within radiusKm of center
func WithinRadius(center, p geo.Point, radiusKm float64) bool {
	return Distance(center, p) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
