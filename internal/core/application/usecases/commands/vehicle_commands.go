package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	ErrCreateVehicleCommandIsNotConstructed = errors.New(
		"CreateVehicleCommand must be created via NewCreateVehicleCommand constructor",
	)
	ErrUpdateVehicleCommandIsNotConstructed = errors.New(
		"UpdateVehicleCommand must be created via NewUpdateVehicleCommand constructor",
	)
)

type CreateVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID          kernel.UUID
	registrationNumber string
	model              string
	capacity           vehicle.Capacity

	guard guard.ConstructorGuard
}

func NewCreateVehicleCommand(
	vehicleID kernel.UUID,
	registrationNumber string,
	model string,
	capacity vehicle.Capacity,
) (CreateVehicleCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return CreateVehicleCommand{}, err
	}
	return CreateVehicleCommand{
		vehicleID:          vehicleID,
		registrationNumber: registrationNumber,
		model:              model,
		capacity:           capacity,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrCreateVehicleCommandIsNotConstructed)
}

func (c CreateVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c CreateVehicleCommand) RegistrationNumber() string {
	return c.registrationNumber
}

func (c CreateVehicleCommand) Model() string {
	return c.model
}

func (c CreateVehicleCommand) Capacity() vehicle.Capacity {
	return c.capacity
}

// VehicleChanges lists the fields an update may touch. Nil means unchanged.
// The registration number is fixed once the vehicle exists.
type VehicleChanges struct {
	Model           *string
	Capacity        *vehicle.Capacity
	Status          *vehicle.Status
	CurrentLocation *kernel.Location
	Maintenance     *vehicle.MaintenanceSchedule
	Notes           *string
	IsActive        *bool
}

type UpdateVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	changes   VehicleChanges

	guard guard.ConstructorGuard
}

func NewUpdateVehicleCommand(vehicleID kernel.UUID, changes VehicleChanges) (UpdateVehicleCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return UpdateVehicleCommand{}, err
	}
	if changes == (VehicleChanges{}) {
		return UpdateVehicleCommand{}, errs.NewValueIsRequiredError("changes")
	}
	return UpdateVehicleCommand{
		vehicleID: vehicleID,
		changes:   changes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleCommandIsNotConstructed)
}

func (c UpdateVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c UpdateVehicleCommand) Changes() VehicleChanges {
	return c.changes
}
