package commands

import (
	"context"
)

// RestoreEntityCommandHandler clears the deletion marker. References that
// were cleared when the record was deleted stay cleared. Restoring a record
// that is not deleted is NotFound.
type RestoreEntityCommandHandler struct {
	uowFactory UoWFactory
}

func NewRestoreEntityCommandHandler(uowFactory UoWFactory) RestoreEntityCommandHandler {
	return RestoreEntityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RestoreEntityCommandHandler) Handle(ctx context.Context, cmd RestoreEntityCommand) error {
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

	var err error
	switch cmd.EntityType() {
	case RegionEntity:
		err = restoreRegion(ctx, uow, cmd)
	case VillageEntity:
		err = restoreVillage(ctx, uow, cmd)
	case VehicleEntity:
		err = restoreVehicle(ctx, uow, cmd)
	case DriverEntity:
		err = restoreDriver(ctx, uow, cmd)
	default:
		err = cmd.EntityType().Validate()
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func restoreRegion(ctx context.Context, uow UoW, cmd RestoreEntityCommand) error {
	r, err := uow.RegionRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return err
	}
	if err = r.Restore(); err != nil {
		return err
	}
	return uow.RegionRepository().Update(ctx, r)
}

func restoreVillage(ctx context.Context, uow UoW, cmd RestoreEntityCommand) error {
	v, err := uow.VillageRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return err
	}
	if err = v.Restore(); err != nil {
		return err
	}
	return uow.VillageRepository().Update(ctx, v)
}

func restoreVehicle(ctx context.Context, uow UoW, cmd RestoreEntityCommand) error {
	v, err := uow.VehicleRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return err
	}
	if err = v.Restore(); err != nil {
		return err
	}
	return uow.VehicleRepository().Update(ctx, v)
}

func restoreDriver(ctx context.Context, uow UoW, cmd RestoreEntityCommand) error {
	d, err := uow.DriverRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return err
	}
	if err = d.Restore(); err != nil {
		return err
	}
	return uow.DriverRepository().Update(ctx, d)
}
