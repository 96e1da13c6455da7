// Package geo provides the distance math used by the fleet search.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// kmPerDegreeLat is the approximate north-south span of one degree of latitude.
const kmPerDegreeLat = 111.0

// DistanceKm returns the great-circle distance in kilometers between
// two points given in decimal degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// ValidCoordinates reports whether lat/lon fall in the WGS84 ranges.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// BoundingBox is a coarse rectangular pre-filter around a center point,
// used to narrow candidates before exact distance computation.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// NewBoundingBox returns the box of roughly radiusKm around the center.
// The longitude delta widens by 1/cos(lat) to correct for meridian
// convergence; near the poles the box degenerates to the full
// longitude range.
func NewBoundingBox(lat, lon, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegreeLat
	lonDelta := 180.0
	if cos := math.Cos(lat * math.Pi / 180); cos > 1e-6 {
		lonDelta = radiusKm / (kmPerDegreeLat * cos)
	}
	return BoundingBox{
		MinLat: math.Max(lat-latDelta, -90),
		MaxLat: math.Min(lat+latDelta, 90),
		MinLon: math.Max(lon-lonDelta, -180),
		MaxLon: math.Min(lon+lonDelta, 180),
	}
}
