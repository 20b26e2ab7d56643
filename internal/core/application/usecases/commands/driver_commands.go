package commands

import (
	"errors"
	"time"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrUpdateDriverCommandIsNotConstructed = errors.New(
		"UpdateDriverCommand must be created via NewUpdateDriverCommand constructor",
	)
)

type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID      kernel.UUID
	userID        kernel.UUID
	name          string
	licenseNumber string
	licenseExpiry time.Time
	refs          driver.References

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(
	driverID kernel.UUID,
	userID kernel.UUID,
	name string,
	licenseNumber string,
	licenseExpiry time.Time,
	refs driver.References,
) (CreateDriverCommand, error) {
	var userErr error
	if err := userID.Validate(); err != nil {
		userErr = errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	if err := errors.Join(driverID.Validate(), userErr); err != nil {
		return CreateDriverCommand{}, err
	}
	return CreateDriverCommand{
		driverID:      driverID,
		userID:        userID,
		name:          name,
		licenseNumber: licenseNumber,
		licenseExpiry: licenseExpiry,
		refs:          refs,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDriverCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) LicenseNumber() string {
	return c.licenseNumber
}

func (c CreateDriverCommand) LicenseExpiry() time.Time {
	return c.licenseExpiry
}

func (c CreateDriverCommand) References() driver.References {
	return c.refs
}

// DriverLicense replaces number and expiry together.
type DriverLicense struct {
	Number string
	Expiry time.Time
}

// DriverChanges lists the fields an update may touch. Nil means unchanged.
// References can be (re)assigned here; clearing them is left to the
// deletion of the referenced record.
type DriverChanges struct {
	Name      *string
	License   *DriverLicense
	Status    *driver.Status
	VehicleID *kernel.UUID
	VillageID *kernel.UUID
	RegionID  *kernel.UUID
	IsActive  *bool
}

type UpdateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	changes  DriverChanges

	guard guard.ConstructorGuard
}

func NewUpdateDriverCommand(driverID kernel.UUID, changes DriverChanges) (UpdateDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return UpdateDriverCommand{}, err
	}
	if changes == (DriverChanges{}) {
		return UpdateDriverCommand{}, errs.NewValueIsRequiredError("changes")
	}
	return UpdateDriverCommand{
		driverID: driverID,
		changes:  changes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverCommandIsNotConstructed)
}

func (c UpdateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateDriverCommand) Changes() DriverChanges {
	return c.changes
}
