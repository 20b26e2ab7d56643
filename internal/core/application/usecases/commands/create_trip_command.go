package commands

import (
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// DestinationPlan is one requested stop of a new trip.
type DestinationPlan struct {
	Location         kernel.Location
	VillageID        kernel.UUID
	Products         []trip.ProductLine
	EstimatedArrival time.Time
}

// CreateTripCommand requests a new SCHEDULED trip. The caller chooses the
// trip id so it can read the trip back after the command succeeds.
//
// Example:
//
//	line, _ := trip.NewProductLine(productID, 20)
//	cmd, err := NewCreateTripCommand(kernel.NewUUID(), vehicleID, driverID, depot,
//	    []DestinationPlan{{Location: stop, VillageID: villageID, Products: []trip.ProductLine{line},
//	        EstimatedArrival: start.Add(time.Hour)}},
//	    start, "")
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID         kernel.UUID
	vehicleID      kernel.UUID
	driverID       kernel.UUID
	startLocation  kernel.Location
	destinations   []DestinationPlan
	scheduledStart time.Time
	notes          string

	guard guard.ConstructorGuard
}

func NewCreateTripCommand(
	tripID kernel.UUID,
	vehicleID kernel.UUID,
	driverID kernel.UUID,
	startLocation kernel.Location,
	destinations []DestinationPlan,
	scheduledStart time.Time,
	notes string,
) (CreateTripCommand, error) {
	cmd := CreateTripCommand{
		startLocation:  startLocation,
		scheduledStart: scheduledStart,
		notes:          notes,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setVehicleID(vehicleID),
		cmd.setDriverID(driverID),
		cmd.setDestinations(destinations),
	); err != nil {
		return CreateTripCommand{}, err
	}

	return cmd, nil
}

func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

func (c CreateTripCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c CreateTripCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c CreateTripCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateTripCommand) StartLocation() kernel.Location {
	return c.startLocation
}

func (c CreateTripCommand) Destinations() []DestinationPlan {
	out := make([]DestinationPlan, len(c.destinations))
	copy(out, c.destinations)
	return out
}

func (c CreateTripCommand) ScheduledStart() time.Time {
	return c.scheduledStart
}

func (c CreateTripCommand) Notes() string {
	return c.notes
}

func (c *CreateTripCommand) setTripID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tripID = id
	return nil
}

func (c *CreateTripCommand) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicle", err)
	}
	c.vehicleID = id
	return nil
}

func (c *CreateTripCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver", err)
	}
	c.driverID = id
	return nil
}

func (c *CreateTripCommand) setDestinations(destinations []DestinationPlan) error {
	if len(destinations) == 0 {
		return errs.NewValueIsRequiredError("destinations")
	}
	c.destinations = make([]DestinationPlan, len(destinations))
	copy(c.destinations, destinations)
	return nil
}
