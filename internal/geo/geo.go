package geo

import "math"

const (
	// earthRadiusM is the mean Earth radius used for great-circle distances.
	earthRadiusM = 6371000.0

	// metersPerDegreeLat approximates one degree of latitude.
	metersPerDegreeLat = 111320.0
)

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(a, b Point) float64 {
	toRad := math.Pi / 180
	dLat := (b.Lat - a.Lat) * toRad
	dLng := (b.Lng - a.Lng) * toRad
	lat1 := a.Lat * toRad
	lat2 := b.Lat * toRad

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DegreesLatToMeters converts a latitude span in degrees to meters.
func DegreesLatToMeters(deg float64) float64 {
	return deg * metersPerDegreeLat
}

// DegreesLngToMeters converts a longitude offset in degrees to meters at the
// given latitude. The sign of the offset is preserved.
func DegreesLngToMeters(deg, atLat float64) float64 {
	return deg * metersPerDegreeLat * math.Cos(atLat*math.Pi/180)
}
