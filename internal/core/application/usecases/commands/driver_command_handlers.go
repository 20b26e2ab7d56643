package commands

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/pkg/errs"
)

// CreateDriverCommandHandler adds a driver. A user can be a driver only
// once, soft-deleted drivers included.
type CreateDriverCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateDriverCommandHandler(uowFactory UoWFactory) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := driver.NewDriver(cmd.DriverID(), cmd.UserID(), cmd.Name(),
		cmd.LicenseNumber(), cmd.LicenseExpiry(), cmd.References())
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

	exists, err := uow.DriverRepository().ExistsByUserID(ctx, cmd.UserID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewConflictError("driver", cmd.UserID(), "user is already registered as a driver")
	}

	if err = ensureDriverReferencesExist(ctx, uow, d.References()); err != nil {
		return err
	}

	if err = uow.DriverRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateDriverCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateDriverCommandHandler(uowFactory UoWFactory) UpdateDriverCommandHandler {
	return UpdateDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateDriverCommandHandler) Handle(ctx context.Context, cmd UpdateDriverCommand) error {
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

	d, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	changes := cmd.Changes()
	if err = ensureDriverReferencesExist(ctx, uow, driver.References{
		VehicleID: changes.VehicleID,
		VillageID: changes.VillageID,
		RegionID:  changes.RegionID,
	}); err != nil {
		return err
	}

	if err = applyDriverChanges(d, changes); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyDriverChanges(d *driver.Driver, c DriverChanges) error {
	var errList []error
	if c.Name != nil {
		errList = append(errList, d.Rename(*c.Name))
	}
	if c.License != nil {
		errList = append(errList, d.RenewLicense(c.License.Number, c.License.Expiry))
	}
	if c.Status != nil {
		errList = append(errList, d.ChangeStatus(*c.Status))
	}
	if c.VehicleID != nil {
		errList = append(errList, d.AssignVehicle(*c.VehicleID))
	}
	if c.VillageID != nil {
		errList = append(errList, d.AssignVillage(*c.VillageID))
	}
	if c.RegionID != nil {
		errList = append(errList, d.AssignRegion(*c.RegionID))
	}
	if c.IsActive != nil {
		d.SetActive(*c.IsActive)
	}
	return errors.Join(errList...)
}

// ensureDriverReferencesExist checks the non-nil references only.
func ensureDriverReferencesExist(ctx context.Context, uow UoW, refs driver.References) error {
	if refs.VehicleID != nil {
		_, err := uow.VehicleRepository().Get(ctx, *refs.VehicleID)
		if err = asInvalidReference("vehicle", *refs.VehicleID, err, true); err != nil {
			return err
		}
	}
	if refs.VillageID != nil {
		_, err := uow.VillageRepository().Get(ctx, *refs.VillageID)
		if err = asInvalidReference("village", *refs.VillageID, err, true); err != nil {
			return err
		}
	}
	if refs.RegionID != nil {
		return ensureRegionExists(ctx, uow, *refs.RegionID)
	}
	return nil
}
