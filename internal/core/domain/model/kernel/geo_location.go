package kernel

import (
	"errors"
	"fmt"
	"math"

	"ecofleet/internal/pkg/errs"
	"ecofleet/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrGeoLocationIsNotConstructed is returned when a zero GeoLocation is used.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"geo location must be created via NewGeoLocation constructor")

// GeoLocation is an immutable WGS84 point. It is used for a vehicle's current
// position and for order pickup and dropoff points.
//
// Example:
//
//	depot, err := kernel.NewGeoLocation(52.5200, 13.4050)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(depot) // GeoLocation(52.520000,13.405000)
type GeoLocation struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoLocation validates both coordinates and returns the point. All
// violations are reported together.
func NewGeoLocation(latitude, longitude float64) (GeoLocation, error) {
	loc := GeoLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return GeoLocation{}, err
	}

	return loc, nil
}

// Validate reports whether the point was built by NewGeoLocation.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

func (l GeoLocation) Latitude() float64 {
	return l.latitude
}

func (l GeoLocation) Longitude() float64 {
	return l.longitude
}

func (l GeoLocation) String() string {
	return fmt.Sprintf("GeoLocation(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares coordinates. Both points must be constructed.
func (l GeoLocation) IsEqual(other GeoLocation) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle distance between two points using the
// haversine formula.
func (l GeoLocation) DistanceKm(other GeoLocation) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.latitude)
	lat2 := toRadians(other.latitude)
	dLat := lat2 - lat1
	dLng := toRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

func (l *GeoLocation) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

func (l *GeoLocation) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
