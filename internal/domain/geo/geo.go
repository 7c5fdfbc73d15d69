package geo

import "math"

// EarthRadiusKm is the Earth radius used to convert a kilometer search radius
// into the store's angular radius. Must match the store's own constant or
// boundary listings flip between included and excluded.
const EarthRadiusKm = 6378.1

// HaversineKm returns the great-circle distance in kilometers between two
// points specified by latitude and longitude in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// WithinKm reports whether the two points are at most radiusKm apart.
// The boundary is inclusive.
func WithinKm(lat1, lon1, lat2, lon2, radiusKm float64) bool {
	return HaversineKm(lat1, lon1, lat2, lon2) <= radiusKm
}

// ValidLatitude reports whether lat is in [-90, 90].
func ValidLatitude(lat float64) bool { return lat >= -90 && lat <= 90 }

// ValidLongitude reports whether lon is in [-180, 180].
func ValidLongitude(lon float64) bool { return lon >= -180 && lon <= 180 }
