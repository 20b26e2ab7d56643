package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/services"
)

// SoftDeleteEntityCommandHandler marks a region, village, vehicle or driver
// deleted and clears the references other records hold to it, all in one
// transaction. Deleting a record that is already deleted changes nothing.
type SoftDeleteEntityCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.ReferenceCoordinator
}

func NewSoftDeleteEntityCommandHandler(uowFactory UoWFactory) SoftDeleteEntityCommandHandler {
	return SoftDeleteEntityCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewReferenceCoordinator(),
	}
}

func (h SoftDeleteEntityCommandHandler) Handle(ctx context.Context, cmd SoftDeleteEntityCommand) error {
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

	var (
		changed bool
		err     error
	)
	now := time.Now()
	switch cmd.EntityType() {
	case RegionEntity:
		changed, err = h.deleteRegion(ctx, uow, cmd, now)
	case VillageEntity:
		changed, err = h.deleteVillage(ctx, uow, cmd, now)
	case VehicleEntity:
		changed, err = h.deleteVehicle(ctx, uow, cmd, now)
	case DriverEntity:
		changed, err = h.deleteDriver(ctx, uow, cmd, now)
	default:
		return cmd.EntityType().Validate()
	}
	if err != nil || !changed {
		return err
	}

	return uow.Commit(ctx)
}

func (h SoftDeleteEntityCommandHandler) deleteRegion(
	ctx context.Context,
	uow UoW,
	cmd SoftDeleteEntityCommand,
	now time.Time,
) (bool, error) {
	r, err := uow.RegionRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return false, err
	}
	if !r.SoftDelete(now) {
		return false, nil
	}

	villages, err := uow.VillageRepository().ListByRegion(ctx, r.ID())
	if err != nil {
		return false, err
	}
	drivers, err := uow.DriverRepository().ListByRegion(ctx, r.ID())
	if err != nil {
		return false, err
	}

	if err = h.saveDetachments(ctx, uow, h.coordinator.RegionDeleted(r.ID(), villages, drivers)); err != nil {
		return false, err
	}
	return true, uow.RegionRepository().Update(ctx, r)
}

func (h SoftDeleteEntityCommandHandler) deleteVillage(
	ctx context.Context,
	uow UoW,
	cmd SoftDeleteEntityCommand,
	now time.Time,
) (bool, error) {
	v, err := uow.VillageRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return false, err
	}
	if !v.SoftDelete(now) {
		return false, nil
	}

	drivers, err := uow.DriverRepository().ListByVillage(ctx, v.ID())
	if err != nil {
		return false, err
	}

	if err = h.saveDetachments(ctx, uow, h.coordinator.VillageDeleted(v.ID(), drivers)); err != nil {
		return false, err
	}
	return true, uow.VillageRepository().Update(ctx, v)
}

func (h SoftDeleteEntityCommandHandler) deleteVehicle(
	ctx context.Context,
	uow UoW,
	cmd SoftDeleteEntityCommand,
	now time.Time,
) (bool, error) {
	v, err := uow.VehicleRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return false, err
	}
	if v.IsDeleted() {
		return false, nil
	}

	drivers, err := uow.DriverRepository().ListByVehicle(ctx, v.ID())
	if err != nil {
		return false, err
	}

	// The on-duty check runs before the flag is set so a refused deletion
	// leaves the vehicle untouched.
	detachments, err := h.coordinator.VehicleDeleted(v.ID(), drivers)
	if err != nil {
		return false, err
	}
	v.SoftDelete(now)

	if err = h.saveDetachments(ctx, uow, detachments); err != nil {
		return false, err
	}
	return true, uow.VehicleRepository().Update(ctx, v)
}

func (h SoftDeleteEntityCommandHandler) deleteDriver(
	ctx context.Context,
	uow UoW,
	cmd SoftDeleteEntityCommand,
	now time.Time,
) (bool, error) {
	d, err := uow.DriverRepository().GetIncludingDeleted(ctx, cmd.ID())
	if err != nil {
		return false, err
	}
	if !d.SoftDelete(now) {
		return false, nil
	}
	return true, uow.DriverRepository().Update(ctx, d)
}

func (h SoftDeleteEntityCommandHandler) saveDetachments(ctx context.Context, uow UoW, d services.Detachments) error {
	for _, v := range d.Villages {
		if err := uow.VillageRepository().Update(ctx, v); err != nil {
			return err
		}
	}
	for _, dr := range d.Drivers {
		if err := uow.DriverRepository().Update(ctx, dr); err != nil {
			return err
		}
	}
	return nil
}
