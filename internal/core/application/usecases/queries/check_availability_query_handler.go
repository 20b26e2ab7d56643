package queries

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/services"
)

// ActiveTripLister is the read side of ports.TripRepository that the
// availability check needs.
type ActiveTripLister interface {
	ListActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*trip.Trip, error)
	ListActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*trip.Trip, error)
}

type CheckAvailabilityQueryHandler struct {
	trips   ActiveTripLister
	checker services.AvailabilityChecker
}

func NewCheckAvailabilityQueryHandler(trips ActiveTripLister, checker services.AvailabilityChecker) CheckAvailabilityQueryHandler {
	return CheckAvailabilityQueryHandler{trips: trips, checker: checker}
}

func (h CheckAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAvailabilityQuery,
) (CheckAvailabilityResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckAvailabilityResponse{}, err
	}

	var (
		active []*trip.Trip
		err    error
	)
	if query.ResourceType() == VehicleResource {
		active, err = h.trips.ListActiveByVehicle(ctx, query.ResourceID())
	} else {
		active, err = h.trips.ListActiveByDriver(ctx, query.ResourceID())
	}
	if err != nil {
		return CheckAvailabilityResponse{}, err
	}

	overlapping, err := h.checker.Overlapping(query.Window(), active)
	if err != nil {
		return CheckAvailabilityResponse{}, err
	}

	ids := make([]string, 0, len(overlapping))
	for _, t := range overlapping {
		ids = append(ids, t.ID().String())
	}
	return CheckAvailabilityResponse{Available: len(ids) == 0, ConflictingTrips: ids}, nil
}
