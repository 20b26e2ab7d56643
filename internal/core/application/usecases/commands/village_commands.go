package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	ErrCreateVillageCommandIsNotConstructed = errors.New(
		"CreateVillageCommand must be created via NewCreateVillageCommand constructor",
	)
	ErrUpdateVillageCommandIsNotConstructed = errors.New(
		"UpdateVillageCommand must be created via NewUpdateVillageCommand constructor",
	)
)

type CreateVillageCommand struct { //nolint:recvcheck //using for validation
	villageID   kernel.UUID
	name        string
	regionID    kernel.UUID
	inhabitants int
	coordinates kernel.Location

	guard guard.ConstructorGuard
}

func NewCreateVillageCommand(
	villageID kernel.UUID,
	name string,
	regionID kernel.UUID,
	inhabitants int,
	coordinates kernel.Location,
) (CreateVillageCommand, error) {
	var regionErr error
	if err := regionID.Validate(); err != nil {
		regionErr = errs.NewValueIsRequiredErrorWithCause("region", err)
	}
	if err := errors.Join(villageID.Validate(), regionErr); err != nil {
		return CreateVillageCommand{}, err
	}
	return CreateVillageCommand{
		villageID:   villageID,
		name:        name,
		regionID:    regionID,
		inhabitants: inhabitants,
		coordinates: coordinates,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVillageCommand) Validate() error {
	return c.guard.Validate(ErrCreateVillageCommandIsNotConstructed)
}

func (c CreateVillageCommand) VillageID() kernel.UUID {
	return c.villageID
}

func (c CreateVillageCommand) Name() string {
	return c.name
}

func (c CreateVillageCommand) RegionID() kernel.UUID {
	return c.regionID
}

func (c CreateVillageCommand) Inhabitants() int {
	return c.inhabitants
}

func (c CreateVillageCommand) Coordinates() kernel.Location {
	return c.coordinates
}

// VillageChanges lists the fields an update may touch. Nil means unchanged.
type VillageChanges struct {
	Name        *string
	RegionID    *kernel.UUID
	Inhabitants *int
	Coordinates *kernel.Location
	IsActive    *bool
}

type UpdateVillageCommand struct { //nolint:recvcheck //using for validation
	villageID kernel.UUID
	changes   VillageChanges

	guard guard.ConstructorGuard
}

func NewUpdateVillageCommand(villageID kernel.UUID, changes VillageChanges) (UpdateVillageCommand, error) {
	if err := villageID.Validate(); err != nil {
		return UpdateVillageCommand{}, err
	}
	if changes == (VillageChanges{}) {
		return UpdateVillageCommand{}, errs.NewValueIsRequiredError("changes")
	}
	return UpdateVillageCommand{
		villageID: villageID,
		changes:   changes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateVillageCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVillageCommandIsNotConstructed)
}

func (c UpdateVillageCommand) VillageID() kernel.UUID {
	return c.villageID
}

func (c UpdateVillageCommand) Changes() VillageChanges {
	return c.changes
}
