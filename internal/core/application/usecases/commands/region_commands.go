package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	ErrCreateRegionCommandIsNotConstructed = errors.New(
		"CreateRegionCommand must be created via NewCreateRegionCommand constructor",
	)
	ErrUpdateRegionCommandIsNotConstructed = errors.New(
		"UpdateRegionCommand must be created via NewUpdateRegionCommand constructor",
	)
)

type CreateRegionCommand struct { //nolint:recvcheck //using for validation
	regionID    kernel.UUID
	name        string
	baseAddress kernel.Address
	center      kernel.Location
	radiusKm    float64

	guard guard.ConstructorGuard
}

func NewCreateRegionCommand(
	regionID kernel.UUID,
	name string,
	baseAddress kernel.Address,
	center kernel.Location,
	radiusKm float64,
) (CreateRegionCommand, error) {
	if err := regionID.Validate(); err != nil {
		return CreateRegionCommand{}, err
	}
	return CreateRegionCommand{
		regionID:    regionID,
		name:        name,
		baseAddress: baseAddress,
		center:      center,
		radiusKm:    radiusKm,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRegionCommand) Validate() error {
	return c.guard.Validate(ErrCreateRegionCommandIsNotConstructed)
}

func (c CreateRegionCommand) RegionID() kernel.UUID {
	return c.regionID
}

func (c CreateRegionCommand) Name() string {
	return c.name
}

func (c CreateRegionCommand) BaseAddress() kernel.Address {
	return c.baseAddress
}

func (c CreateRegionCommand) Center() kernel.Location {
	return c.center
}

func (c CreateRegionCommand) RadiusKm() float64 {
	return c.radiusKm
}

// RegionChanges lists the fields an update may touch. Nil means unchanged.
type RegionChanges struct {
	Name        *string
	BaseAddress *kernel.Address
	Center      *kernel.Location
	RadiusKm    *float64
	IsActive    *bool
}

type UpdateRegionCommand struct { //nolint:recvcheck //using for validation
	regionID kernel.UUID
	changes  RegionChanges

	guard guard.ConstructorGuard
}

func NewUpdateRegionCommand(regionID kernel.UUID, changes RegionChanges) (UpdateRegionCommand, error) {
	if err := regionID.Validate(); err != nil {
		return UpdateRegionCommand{}, err
	}
	if changes == (RegionChanges{}) {
		return UpdateRegionCommand{}, errs.NewValueIsRequiredError("changes")
	}
	return UpdateRegionCommand{
		regionID: regionID,
		changes:  changes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRegionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRegionCommandIsNotConstructed)
}

func (c UpdateRegionCommand) RegionID() kernel.UUID {
	return c.regionID
}

func (c UpdateRegionCommand) Changes() RegionChanges {
	return c.changes
}
