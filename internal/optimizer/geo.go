package optimizer

import (
	"math"

	"github.com/spesa/search-service/internal/types"
)

// EarthRadiusKm is the mean Earth radius of the spherical approximation.
const EarthRadiusKm = 6371.0

// HaversineKm calculates the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusKm * c
}

// DistanceFrom returns the distance between the caller and the store of a match.
func DistanceFrom(pos types.Position, m types.ProductMatch) float64 {
	return HaversineKm(pos.Latitude, pos.Longitude, m.Localization.Lat, m.Localization.Lon)
}

// WithDistances attaches the distance from pos to every match.
func WithDistances(pos types.Position, matches []types.ProductMatch) []types.ProductMatch {
	out := make([]types.ProductMatch, len(matches))
	for i, m := range matches {
		out[i] = m.WithDistance(DistanceFrom(pos, m))
	}
	return out
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
