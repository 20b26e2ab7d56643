// Package driver holds the Driver aggregate. A driver is linked 1:1 to a
// user identity and may hold optional references to a vehicle, a village
// and a region; each reference is cleared when its target is soft-deleted.
package driver

import (
	"errors"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrDriverIsNotConstructed = errors.New("driver must be created via NewDriver or RestoreDriver")

type Driver struct {
	id            kernel.UUID
	userID        kernel.UUID
	name          string
	licenseNumber string
	licenseExpiry time.Time
	vehicleID     *kernel.UUID
	villageID     *kernel.UUID
	regionID      *kernel.UUID
	status        Status
	isActive      bool
	deletion      kernel.SoftDelete

	guard guard.ConstructorGuard
}

// References groups the optional links a driver holds.
type References struct {
	VehicleID *kernel.UUID
	VillageID *kernel.UUID
	RegionID  *kernel.UUID
}

// NewDriver creates an AVAILABLE, active driver.
func NewDriver(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	licenseNumber string,
	licenseExpiry time.Time,
	refs References,
) (*Driver, error) {
	return RestoreDriver(id, userID, name, licenseNumber, licenseExpiry, refs, Available, true, nil)
}

func RestoreDriver(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	licenseNumber string,
	licenseExpiry time.Time,
	refs References,
	status Status,
	isActive bool,
	deletedAt *time.Time,
) (*Driver, error) {
	d := &Driver{
		vehicleID: copyID(refs.VehicleID),
		villageID: copyID(refs.VillageID),
		regionID:  copyID(refs.RegionID),
		isActive:  isActive,
		deletion:  kernel.RestoreSoftDelete(deletedAt),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.Rename(name),
		d.RenewLicense(licenseNumber, licenseExpiry),
		d.ChangeStatus(status),
		validateRef("vehicle", refs.VehicleID),
		validateRef("village", refs.VillageID),
		validateRef("region", refs.RegionID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) UserID() kernel.UUID {
	return d.userID
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) LicenseNumber() string {
	return d.licenseNumber
}

func (d *Driver) LicenseExpiry() time.Time {
	return d.licenseExpiry
}

func (d *Driver) VehicleID() *kernel.UUID {
	return copyID(d.vehicleID)
}

func (d *Driver) VillageID() *kernel.UUID {
	return copyID(d.villageID)
}

func (d *Driver) RegionID() *kernel.UUID {
	return copyID(d.regionID)
}

func (d *Driver) References() References {
	return References{
		VehicleID: d.VehicleID(),
		VillageID: d.VillageID(),
		RegionID:  d.RegionID(),
	}
}

func (d *Driver) Status() Status {
	return d.status
}

func (d *Driver) IsOnDuty() bool {
	return d.status == OnDuty
}

func (d *Driver) IsActive() bool {
	return d.isActive
}

func (d *Driver) IsDeleted() bool {
	return d.deletion.IsDeleted()
}

func (d *Driver) DeletedAt() *time.Time {
	return d.deletion.DeletedAt()
}

// HasValidLicense reports whether the license is still valid at the given time.
func (d *Driver) HasValidLicense(at time.Time) bool {
	return d.licenseExpiry.After(at)
}

func (d *Driver) SetActive(active bool) {
	d.isActive = active
}

func (d *Driver) SoftDelete(now time.Time) bool {
	return d.deletion.MarkDeleted(now)
}

func (d *Driver) Restore() error {
	if err := d.deletion.Restore(); err != nil {
		return errs.NewObjectNotFoundErrorWithCause("driver", d.id, err)
	}
	return nil
}

func (d *Driver) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

// RenewLicense replaces license number and expiry. The number is stored upper-cased.
func (d *Driver) RenewLicense(number string, expiry time.Time) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	var errList []error
	if number == "" {
		errList = append(errList, errs.NewValueIsRequiredError("licenseNumber"))
	}
	if expiry.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("licenseExpiry"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	d.licenseNumber = number
	d.licenseExpiry = expiry.UTC()
	return nil
}

func (d *Driver) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) AssignVehicle(id kernel.UUID) error {
	if err := validateRef("vehicle", &id); err != nil {
		return err
	}
	d.vehicleID = &id
	return nil
}

func (d *Driver) AssignVillage(id kernel.UUID) error {
	if err := validateRef("village", &id); err != nil {
		return err
	}
	d.villageID = &id
	return nil
}

func (d *Driver) AssignRegion(id kernel.UUID) error {
	if err := validateRef("region", &id); err != nil {
		return err
	}
	d.regionID = &id
	return nil
}

// DetachVehicle clears the vehicle reference if it points at id and
// reports whether it did.
func (d *Driver) DetachVehicle(id kernel.UUID) bool {
	return detach(&d.vehicleID, id)
}

func (d *Driver) DetachVillage(id kernel.UUID) bool {
	return detach(&d.villageID, id)
}

func (d *Driver) DetachRegion(id kernel.UUID) bool {
	return detach(&d.regionID, id)
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	d.userID = id
	return nil
}

func detach(ref **kernel.UUID, id kernel.UUID) bool {
	if !id.RefersTo(*ref) {
		return false
	}
	*ref = nil
	return true
}

func validateRef(name string, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
