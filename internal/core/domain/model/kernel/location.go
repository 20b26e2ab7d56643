package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"

	"github.com/twpayne/go-geom"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0

	// DefaultCountry is applied when an address omits its country.
	DefaultCountry = "Germany"

	// wgs84SRID tags every point as longitude/latitude.
	wgs84SRID         = 4326
	earthRadiusKm     = 6371.0088
	degreesToRadiansF = math.Pi / 180
)

var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewLocationWithAddress constructors")

// Address is the postal part of a location.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// NewAddress validates street, city and postal code and defaults the country.
func NewAddress(street, city, postalCode, country string) (Address, error) {
	addr := Address{
		Street:     strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
	}

	var errList []error
	if addr.Street == "" {
		errList = append(errList, errs.NewValueIsRequiredError("street"))
	}
	if addr.City == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	if addr.PostalCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("postalCode"))
	}
	if err := errors.Join(errList...); err != nil {
		return Address{}, err
	}

	if addr.Country == "" {
		addr.Country = DefaultCountry
	}
	return addr, nil
}

// IsZero reports whether no address was attached.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Location is a WGS84 point (longitude, latitude) with an optional address.
// The point is held as a go-geom XY point so it can be handed to geometry
// encoders unchanged.
type Location struct { //nolint:recvcheck //using for validation
	point   *geom.Point
	address Address
	guard   guard.ConstructorGuard
}

// NewLocation builds a location without an address.
func NewLocation(longitude, latitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(validateLongitude(longitude), validateLatitude(latitude)); err != nil {
		return Location{}, err
	}

	loc.point = geom.NewPointFlat(geom.XY, []float64{longitude, latitude}).SetSRID(wgs84SRID)
	return loc, nil
}

// NewLocationWithAddress builds a location carrying a postal address.
func NewLocationWithAddress(longitude, latitude float64, address Address) (Location, error) {
	loc, err := NewLocation(longitude, latitude)
	if err != nil {
		return Location{}, err
	}
	loc.address = address
	return loc, nil
}

// Validate fails for zero-value locations.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Longitude() float64 {
	if l.point == nil {
		return 0
	}
	return l.point.X()
}

func (l Location) Latitude() float64 {
	if l.point == nil {
		return 0
	}
	return l.point.Y()
}

func (l Location) Address() Address {
	return l.address
}

// Point returns a copy of the underlying geometry.
func (l Location) Point() *geom.Point {
	if l.point == nil {
		return nil
	}
	return l.point.Clone()
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.Longitude(), l.Latitude())
}

// IsEqual compares coordinates and address.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.Longitude() == other.Longitude() &&
		l.Latitude() == other.Latitude() &&
		l.address == other.address, nil
}

// DistanceKm is the great-circle (haversine) distance between two locations.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := l.Latitude() * degreesToRadiansF
	lat2 := other.Latitude() * degreesToRadiansF
	dLat := (other.Latitude() - l.Latitude()) * degreesToRadiansF
	dLon := (other.Longitude() - l.Longitude()) * degreesToRadiansF

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

func validateLongitude(v float64) error {
	if math.IsNaN(v) || v < MinLongitude || v > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", v, MinLongitude, MaxLongitude)
	}
	return nil
}

func validateLatitude(v float64) error {
	if math.IsNaN(v) || v < MinLatitude || v > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", v, MinLatitude, MaxLatitude)
	}
	return nil
}
