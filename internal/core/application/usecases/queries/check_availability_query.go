package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
)

type ResourceType int

const (
	UnknownResource ResourceType = iota
	VehicleResource
	DriverResource
)

func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vehicle", "vehicles":
		return VehicleResource, nil
	case "driver", "drivers":
		return DriverResource, nil
	}
	return UnknownResource, errs.NewValueIsInvalidErrorWithCause("resourceType",
		fmt.Errorf("%q is neither vehicle nor driver", s))
}

func (r ResourceType) String() string {
	switch r {
	case VehicleResource:
		return "vehicle"
	case DriverResource:
		return "driver"
	default:
		return "unknown"
	}
}

// CheckAvailabilityQuery asks whether a vehicle or driver is free in a
// window. The answer is advisory; only trip creation holds the lock that
// makes it binding.
type CheckAvailabilityQuery struct {
	resourceType ResourceType
	resourceID   kernel.UUID
	window       kernel.Window

	guard guard.ConstructorGuard
}

func NewCheckAvailabilityQuery(
	resourceType ResourceType,
	resourceID kernel.UUID,
	start, end time.Time,
) (CheckAvailabilityQuery, error) {
	var typeErr error
	if resourceType != VehicleResource && resourceType != DriverResource {
		typeErr = errs.NewValueIsInvalidError("resourceType")
	}
	window, windowErr := kernel.NewWindow(start, end)
	if err := errors.Join(typeErr, resourceID.Validate(), windowErr); err != nil {
		return CheckAvailabilityQuery{}, err
	}

	return CheckAvailabilityQuery{
		resourceType: resourceType,
		resourceID:   resourceID,
		window:       window,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

func (q CheckAvailabilityQuery) ResourceType() ResourceType {
	return q.resourceType
}

func (q CheckAvailabilityQuery) ResourceID() kernel.UUID {
	return q.resourceID
}

func (q CheckAvailabilityQuery) Window() kernel.Window {
	return q.window
}

type CheckAvailabilityResponse struct {
	Available bool `json:"available"`
	// ConflictingTrips lists the trips that overlap the window.
	ConflictingTrips []string `json:"conflictingTrips"`
}
