// Package village holds the Village aggregate. A village points at its
// region by id; the reference is cleared, not cascaded, when the region
// is soft-deleted.
package village

import (
	"errors"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrVillageIsNotConstructed = errors.New("village must be created via NewVillage or RestoreVillage")

type Village struct {
	id          kernel.UUID
	name        string
	regionID    *kernel.UUID
	inhabitants int
	coordinates kernel.Location
	isActive    bool
	deletion    kernel.SoftDelete

	guard guard.ConstructorGuard
}

// NewVillage creates an active village. A new village must belong to a region.
func NewVillage(id kernel.UUID, name string, regionID kernel.UUID, inhabitants int, coordinates kernel.Location) (*Village, error) {
	if err := regionID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("region", err)
	}
	return RestoreVillage(id, name, &regionID, inhabitants, coordinates, true, nil)
}

// RestoreVillage accepts a nil region, which is what a region deletion leaves behind.
func RestoreVillage(
	id kernel.UUID,
	name string,
	regionID *kernel.UUID,
	inhabitants int,
	coordinates kernel.Location,
	isActive bool,
	deletedAt *time.Time,
) (*Village, error) {
	v := &Village{
		isActive: isActive,
		deletion: kernel.RestoreSoftDelete(deletedAt),
		guard:    guard.NewConstructorGuard(),
	}

	var regionErr error
	if regionID != nil {
		regionErr = v.AssignRegion(*regionID)
	}

	if err := errors.Join(
		v.setID(id),
		v.Rename(name),
		regionErr,
		v.SetInhabitants(inhabitants),
		v.MoveTo(coordinates),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Village) Validate() error {
	if v == nil {
		return ErrVillageIsNotConstructed
	}
	return v.guard.Validate(ErrVillageIsNotConstructed)
}

func (v *Village) ID() kernel.UUID {
	return v.id
}

func (v *Village) Name() string {
	return v.name
}

// RegionID is nil once the owning region was deleted.
func (v *Village) RegionID() *kernel.UUID {
	if v.regionID == nil {
		return nil
	}
	id := *v.regionID
	return &id
}

func (v *Village) Inhabitants() int {
	return v.inhabitants
}

func (v *Village) Coordinates() kernel.Location {
	return v.coordinates
}

func (v *Village) IsActive() bool {
	return v.isActive
}

func (v *Village) IsDeleted() bool {
	return v.deletion.IsDeleted()
}

func (v *Village) DeletedAt() *time.Time {
	return v.deletion.DeletedAt()
}

func (v *Village) SetActive(active bool) {
	v.isActive = active
}

func (v *Village) SoftDelete(now time.Time) bool {
	return v.deletion.MarkDeleted(now)
}

func (v *Village) Restore() error {
	if err := v.deletion.Restore(); err != nil {
		return errs.NewObjectNotFoundErrorWithCause("village", v.id, err)
	}
	return nil
}

func (v *Village) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

func (v *Village) SetInhabitants(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("inhabitants", n, 0, "unbounded")
	}
	v.inhabitants = n
	return nil
}

func (v *Village) MoveTo(coordinates kernel.Location) error {
	if err := coordinates.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("coordinates", err)
	}
	v.coordinates = coordinates
	return nil
}

func (v *Village) AssignRegion(regionID kernel.UUID) error {
	if err := regionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("region", err)
	}
	v.regionID = &regionID
	return nil
}

// DetachRegion clears the region reference. It reports whether a reference
// to regionID was actually held.
func (v *Village) DetachRegion(regionID kernel.UUID) bool {
	if !regionID.RefersTo(v.regionID) {
		return false
	}
	v.regionID = nil
	return true
}

func (v *Village) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}
