package commands

import (
	"context"
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/services"
	"fleet/internal/pkg/errs"
)

// CreateTripCommandHandler plans a new trip inside one transaction:
//
//  1. lock the vehicle row, then the driver row
//  2. require vehicle, driver, villages and products to exist and be active
//  3. optionally refuse double bookings of the vehicle or driver
//  4. insert the trip
//
// Holding both row locks across the availability check and the insert makes
// check-and-create atomic per vehicle and per driver. The lock order is
// fixed (vehicle first) so two creations cannot deadlock on each other.
type CreateTripCommandHandler struct {
	uowFactory          PlanningUoWFactory
	checker             services.AvailabilityChecker
	enforceAvailability bool
}

func NewCreateTripCommandHandler(uowFactory PlanningUoWFactory, enforceAvailability bool) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory:          uowFactory,
		checker:             services.NewAvailabilityChecker(),
		enforceAvailability: enforceAvailability,
	}
}

func (h CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Shape validation needs no storage, so it runs before the transaction.
	newTrip, err := buildTrip(cmd, time.Now())
	if err != nil {
		return err
	}
	window, err := newTrip.PlannedWindow()
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicle, err := uow.VehicleRepository().GetForUpdate(ctx, cmd.VehicleID())
	if err = asInvalidReference("vehicle", cmd.VehicleID(), err, vehicle != nil && vehicle.IsActive()); err != nil {
		return err
	}

	driver, err := uow.DriverRepository().GetForUpdate(ctx, cmd.DriverID())
	if err = asInvalidReference("driver", cmd.DriverID(), err, driver != nil && driver.IsActive()); err != nil {
		return err
	}

	if err = h.checkDestinationReferences(ctx, uow, newTrip); err != nil {
		return err
	}

	if h.enforceAvailability {
		if err = h.checkAvailability(ctx, uow, newTrip, window); err != nil {
			return err
		}
	}

	if err = uow.TripRepository().Add(ctx, newTrip); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateTripCommandHandler) checkDestinationReferences(ctx context.Context, uow PlanningUoW, t *trip.Trip) error {
	villagesSeen := make(map[kernel.UUID]struct{})
	productsSeen := make(map[kernel.UUID]struct{})

	for _, d := range t.Destinations() {
		if _, ok := villagesSeen[d.VillageID()]; !ok {
			villagesSeen[d.VillageID()] = struct{}{}
			v, err := uow.VillageRepository().Get(ctx, d.VillageID())
			if err = asInvalidReference("village", d.VillageID(), err, v != nil && v.IsActive()); err != nil {
				return err
			}
		}

		for _, line := range d.Products() {
			if _, ok := productsSeen[line.ProductID()]; ok {
				continue
			}
			productsSeen[line.ProductID()] = struct{}{}
			p, err := uow.ProductRepository().Get(ctx, line.ProductID())
			if err = asInvalidReference("product", line.ProductID(), err, p != nil && p.IsActive()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h CreateTripCommandHandler) checkAvailability(
	ctx context.Context,
	uow PlanningUoW,
	t *trip.Trip,
	window kernel.Window,
) error {
	vehicleTrips, err := uow.TripRepository().ListActiveByVehicle(ctx, t.VehicleID())
	if err != nil {
		return err
	}
	if err = h.checker.EnsureAvailable("vehicle", t.VehicleID(), window, vehicleTrips); err != nil {
		return err
	}

	driverTrips, err := uow.TripRepository().ListActiveByDriver(ctx, t.DriverID())
	if err != nil {
		return err
	}
	return h.checker.EnsureAvailable("driver", t.DriverID(), window, driverTrips)
}

func buildTrip(cmd CreateTripCommand, now time.Time) (*trip.Trip, error) {
	plans := cmd.Destinations()
	destinations := make([]*trip.Destination, 0, len(plans))
	var errList []error
	for _, plan := range plans {
		d, err := trip.NewDestination(kernel.NewUUID(), plan.Location, plan.VillageID, plan.Products, plan.EstimatedArrival)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		destinations = append(destinations, d)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return trip.NewTrip(cmd.TripID(), cmd.VehicleID(), cmd.DriverID(), cmd.StartLocation(),
		destinations, cmd.ScheduledStart(), cmd.Notes(), now)
}

// asInvalidReference turns a missing or inactive referenced record into
// InvalidReference. Storage failures pass through unchanged.
func asInvalidReference(name string, id kernel.UUID, err error, active bool) error {
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInvalidReferenceErrorWithCause(name, id, err)
		}
		return err
	}
	if !active {
		return errs.NewInvalidReferenceError(name, id)
	}
	return nil
}
