// Package region holds the Region aggregate: a named delivery area with a
// base address, a center point and a radius in kilometres.
package region

import (
	"errors"
	"math"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrRegionIsNotConstructed = errors.New("region must be created via NewRegion or RestoreRegion")

type Region struct {
	id          kernel.UUID
	name        string
	baseAddress kernel.Address
	center      kernel.Location
	radiusKm    float64
	isActive    bool
	deletion    kernel.SoftDelete

	guard guard.ConstructorGuard
}

// NewRegion creates an active, non-deleted region.
func NewRegion(id kernel.UUID, name string, baseAddress kernel.Address, center kernel.Location, radiusKm float64) (*Region, error) {
	return RestoreRegion(id, name, baseAddress, center, radiusKm, true, nil)
}

func RestoreRegion(
	id kernel.UUID,
	name string,
	baseAddress kernel.Address,
	center kernel.Location,
	radiusKm float64,
	isActive bool,
	deletedAt *time.Time,
) (*Region, error) {
	r := &Region{
		isActive: isActive,
		deletion: kernel.RestoreSoftDelete(deletedAt),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.Rename(name),
		r.SetBaseAddress(baseAddress),
		r.MoveCenter(center),
		r.SetRadius(radiusKm),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Region) Validate() error {
	if r == nil {
		return ErrRegionIsNotConstructed
	}
	return r.guard.Validate(ErrRegionIsNotConstructed)
}

func (r *Region) ID() kernel.UUID {
	return r.id
}

func (r *Region) Name() string {
	return r.name
}

func (r *Region) BaseAddress() kernel.Address {
	return r.baseAddress
}

func (r *Region) Center() kernel.Location {
	return r.center
}

func (r *Region) RadiusKm() float64 {
	return r.radiusKm
}

func (r *Region) IsActive() bool {
	return r.isActive
}

func (r *Region) IsDeleted() bool {
	return r.deletion.IsDeleted()
}

func (r *Region) DeletedAt() *time.Time {
	return r.deletion.DeletedAt()
}

func (r *Region) SetActive(active bool) {
	r.isActive = active
}

func (r *Region) SoftDelete(now time.Time) bool {
	return r.deletion.MarkDeleted(now)
}

// Restore undoes a soft delete. A live region is reported as not found.
func (r *Region) Restore() error {
	if err := r.deletion.Restore(); err != nil {
		return errs.NewObjectNotFoundErrorWithCause("region", r.id, err)
	}
	return nil
}

func (r *Region) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Region) SetBaseAddress(address kernel.Address) error {
	if address.IsZero() {
		return errs.NewValueIsRequiredError("baseAddress")
	}
	r.baseAddress = address
	return nil
}

func (r *Region) MoveCenter(center kernel.Location) error {
	if err := center.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("coordinates", err)
	}
	r.center = center
	return nil
}

func (r *Region) SetRadius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return errs.NewValueIsOutOfRangeError("radius", radiusKm, 0, "unbounded")
	}
	r.radiusKm = radiusKm
	return nil
}

// Covers reports whether loc lies within the region radius.
func (r *Region) Covers(loc kernel.Location) (bool, error) {
	d, err := r.center.DistanceKm(loc)
	if err != nil {
		return false, err
	}
	return d <= r.radiusKm, nil
}

func (r *Region) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}
