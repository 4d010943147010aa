package services

import (
	"location-lookup/internal/domain"
	"math"
)

const earthRadiusMeters = 6371000.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance computes the great-circle distance in meters between two points
// given in degrees, using the haversine formula on a spherical Earth.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Rounding can push a slightly outside [0,1] for identical or antipodal points.
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// DistanceBetween is Distance for Coordinates.
func DistanceBetween(a, b domain.Coordinates) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}
