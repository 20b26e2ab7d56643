package commands

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/village"
)

type CreateVillageCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateVillageCommandHandler(uowFactory UoWFactory) CreateVillageCommandHandler {
	return CreateVillageCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateVillageCommandHandler) Handle(ctx context.Context, cmd CreateVillageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	v, err := village.NewVillage(cmd.VillageID(), cmd.Name(), cmd.RegionID(), cmd.Inhabitants(), cmd.Coordinates())
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

	if err = ensureRegionExists(ctx, uow, cmd.RegionID()); err != nil {
		return err
	}

	if err = uow.VillageRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateVillageCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateVillageCommandHandler(uowFactory UoWFactory) UpdateVillageCommandHandler {
	return UpdateVillageCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateVillageCommandHandler) Handle(ctx context.Context, cmd UpdateVillageCommand) error {
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

	v, err := uow.VillageRepository().Get(ctx, cmd.VillageID())
	if err != nil {
		return err
	}

	changes := cmd.Changes()
	if changes.RegionID != nil {
		if err = ensureRegionExists(ctx, uow, *changes.RegionID); err != nil {
			return err
		}
	}

	if err = applyVillageChanges(v, changes); err != nil {
		return err
	}

	if err = uow.VillageRepository().Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyVillageChanges(v *village.Village, c VillageChanges) error {
	var errList []error
	if c.Name != nil {
		errList = append(errList, v.Rename(*c.Name))
	}
	if c.RegionID != nil {
		errList = append(errList, v.AssignRegion(*c.RegionID))
	}
	if c.Inhabitants != nil {
		errList = append(errList, v.SetInhabitants(*c.Inhabitants))
	}
	if c.Coordinates != nil {
		errList = append(errList, v.MoveTo(*c.Coordinates))
	}
	if c.IsActive != nil {
		v.SetActive(*c.IsActive)
	}
	return errors.Join(errList...)
}

// A soft-deleted region cannot be referenced.
func ensureRegionExists(ctx context.Context, uow UoW, id kernel.UUID) error {
	_, err := uow.RegionRepository().Get(ctx, id)
	return asInvalidReference("region", id, err, true)
}
