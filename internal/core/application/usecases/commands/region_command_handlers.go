package commands

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/region"
)

type CreateRegionCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateRegionCommandHandler(uowFactory UoWFactory) CreateRegionCommandHandler {
	return CreateRegionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateRegionCommandHandler) Handle(ctx context.Context, cmd CreateRegionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := region.NewRegion(cmd.RegionID(), cmd.Name(), cmd.BaseAddress(), cmd.Center(), cmd.RadiusKm())
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

	if err = uow.RegionRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateRegionCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateRegionCommandHandler(uowFactory UoWFactory) UpdateRegionCommandHandler {
	return UpdateRegionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateRegionCommandHandler) Handle(ctx context.Context, cmd UpdateRegionCommand) error {
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

	r, err := uow.RegionRepository().Get(ctx, cmd.RegionID())
	if err != nil {
		return err
	}

	if err = applyRegionChanges(r, cmd.Changes()); err != nil {
		return err
	}

	if err = uow.RegionRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyRegionChanges(r *region.Region, c RegionChanges) error {
	var errList []error
	if c.Name != nil {
		errList = append(errList, r.Rename(*c.Name))
	}
	if c.BaseAddress != nil {
		errList = append(errList, r.SetBaseAddress(*c.BaseAddress))
	}
	if c.Center != nil {
		errList = append(errList, r.MoveCenter(*c.Center))
	}
	if c.RadiusKm != nil {
		errList = append(errList, r.SetRadius(*c.RadiusKm))
	}
	if c.IsActive != nil {
		r.SetActive(*c.IsActive)
	}
	return errors.Join(errList...)
}
