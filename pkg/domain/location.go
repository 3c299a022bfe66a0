package domain

import (
	"math"

	"discounts/pkg/serrors"
)

// Service-area bounding box. The application serves a single country, so
// coordinates outside these bounds are rejected at construction time instead
// of being filtered out at query time.
const (
	MinLatitude  = -55.0
	MaxLatitude  = -21.0
	MinLongitude = -73.6
	MaxLongitude = -53.6
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Location is an immutable pair of geographic coordinates in decimal degrees.
// A non-zero Location can only be obtained through NewLocation, which
// guarantees the coordinates are finite, globally valid and inside the
// service-area bounding box.
type Location struct {
	latitude  float64
	longitude float64
}

// NewLocation validates the coordinate pair and returns a Location. Failures
// carry the serrors.ErrInvalidLocation kind.
func NewLocation(latitude, longitude float64) (Location, error) {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) ||
		math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Location{}, serrors.With(serrors.ErrInvalidLocation,
			"latitude and longitude must be finite numbers")
	}
	if latitude < -90 || latitude > 90 {
		return Location{}, serrors.With(serrors.ErrInvalidLocation,
			"latitude %v outside [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Location{}, serrors.With(serrors.ErrInvalidLocation,
			"longitude %v outside [-180, 180]", longitude)
	}
	if latitude < MinLatitude || latitude > MaxLatitude ||
		longitude < MinLongitude || longitude > MaxLongitude {
		return Location{}, serrors.With(serrors.ErrInvalidLocation,
			"coordinates (%v, %v) outside the service area", latitude, longitude)
	}

	return Location{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() float64 { return l.latitude }

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() float64 { return l.longitude }

// DistanceTo returns the great-circle distance to other in kilometers,
// computed with the haversine formula. The result is non-negative,
// symmetric, and zero only for coordinate-identical locations.
func (l Location) DistanceTo(other Location) float64 {
	lat1 := toRadians(l.latitude)
	lat2 := toRadians(other.latitude)
	deltaLat := toRadians(other.latitude - l.latitude)
	deltaLon := toRadians(other.longitude - l.longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 { return degrees * math.Pi / 180 }
