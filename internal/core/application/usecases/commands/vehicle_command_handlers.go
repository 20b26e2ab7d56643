package commands

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/vehicle"
)

// CreateVehicleCommandHandler adds a vehicle. A registration number that is
// already taken surfaces as Conflict from the repository.
type CreateVehicleCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateVehicleCommandHandler(uowFactory UoWFactory) CreateVehicleCommandHandler {
	return CreateVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateVehicleCommandHandler) Handle(ctx context.Context, cmd CreateVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	v, err := vehicle.NewVehicle(cmd.VehicleID(), cmd.RegistrationNumber(), cmd.Model(), cmd.Capacity())
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

	if err = uow.VehicleRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateVehicleCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateVehicleCommandHandler(uowFactory UoWFactory) UpdateVehicleCommandHandler {
	return UpdateVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateVehicleCommandHandler) Handle(ctx context.Context, cmd UpdateVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = applyVehicleChanges(v, cmd.Changes()); err != nil {
		return err
	}

	if err = uow.VehicleRepository().Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyVehicleChanges(v *vehicle.Vehicle, c VehicleChanges) error {
	var errList []error
	if c.Model != nil {
		errList = append(errList, v.SetModel(*c.Model))
	}
	if c.Capacity != nil {
		errList = append(errList, v.SetCapacity(*c.Capacity))
	}
	if c.Status != nil {
		errList = append(errList, v.ChangeStatus(*c.Status))
	}
	if c.CurrentLocation != nil {
		errList = append(errList, v.MoveTo(*c.CurrentLocation))
	}
	if c.Maintenance != nil {
		errList = append(errList, v.ScheduleMaintenance(*c.Maintenance))
	}
	if c.Notes != nil {
		v.SetNotes(*c.Notes)
	}
	if c.IsActive != nil {
		v.SetActive(*c.IsActive)
	}
	return errors.Join(errList...)
}
