// Package vehicle holds the Vehicle aggregate together with its capacity
// and maintenance schedule value objects.
package vehicle

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrVehicleIsNotConstructed = errors.New("vehicle must be created via NewVehicle or RestoreVehicle")

// Capacity is the load limit of a vehicle. Both figures are non-negative.
type Capacity struct {
	Weight float64
	Volume float64
}

func (c Capacity) Validate() error {
	var errList []error
	if math.IsNaN(c.Weight) || c.Weight < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("capacity.weight", c.Weight, 0, "unbounded"))
	}
	if math.IsNaN(c.Volume) || c.Volume < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("capacity.volume", c.Volume, 0, "unbounded"))
	}
	return errors.Join(errList...)
}

// MaintenanceSchedule tracks service dates. The zero value means "not scheduled".
type MaintenanceSchedule struct {
	LastService       time.Time
	NextService       time.Time
	ServiceIntervalKm int
}

func (m MaintenanceSchedule) IsZero() bool {
	return m.LastService.IsZero() && m.NextService.IsZero() && m.ServiceIntervalKm == 0
}

func (m MaintenanceSchedule) Validate() error {
	if m.IsZero() {
		return nil
	}
	var errList []error
	if m.LastService.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("maintenanceSchedule.lastService"))
	}
	if m.NextService.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("maintenanceSchedule.nextService"))
	}
	if !m.LastService.IsZero() && m.NextService.Before(m.LastService) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("maintenanceSchedule.nextService",
			fmt.Errorf("next service %s is before last service %s",
				m.NextService.Format(time.DateOnly), m.LastService.Format(time.DateOnly))))
	}
	if m.ServiceIntervalKm < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError(
			"maintenanceSchedule.serviceIntervalKm", m.ServiceIntervalKm, 0, "unbounded"))
	}
	return errors.Join(errList...)
}

// IsDue reports whether the next service date has been reached.
func (m MaintenanceSchedule) IsDue(at time.Time) bool {
	return !m.IsZero() && !at.Before(m.NextService)
}

type Vehicle struct {
	id                  kernel.UUID
	registrationNumber  string
	model               string
	capacity            Capacity
	status              Status
	currentLocation     *kernel.Location
	maintenanceSchedule MaintenanceSchedule
	notes               string
	isActive            bool
	deletion            kernel.SoftDelete

	guard guard.ConstructorGuard
}

// NewVehicle creates an AVAILABLE, active vehicle. The registration number
// is trimmed and upper-cased.
func NewVehicle(id kernel.UUID, registrationNumber, model string, capacity Capacity) (*Vehicle, error) {
	return RestoreVehicle(id, registrationNumber, model, capacity, Available, nil, MaintenanceSchedule{}, "", true, nil)
}

func RestoreVehicle(
	id kernel.UUID,
	registrationNumber string,
	model string,
	capacity Capacity,
	status Status,
	currentLocation *kernel.Location,
	maintenance MaintenanceSchedule,
	notes string,
	isActive bool,
	deletedAt *time.Time,
) (*Vehicle, error) {
	v := &Vehicle{
		isActive: isActive,
		deletion: kernel.RestoreSoftDelete(deletedAt),
		guard:    guard.NewConstructorGuard(),
	}
	v.SetNotes(notes)

	var locErr error
	if currentLocation != nil {
		locErr = v.MoveTo(*currentLocation)
	}

	if err := errors.Join(
		v.setID(id),
		v.setRegistrationNumber(registrationNumber),
		v.SetModel(model),
		v.SetCapacity(capacity),
		v.ChangeStatus(status),
		locErr,
		v.ScheduleMaintenance(maintenance),
	); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) RegistrationNumber() string {
	return v.registrationNumber
}

func (v *Vehicle) Model() string {
	return v.model
}

func (v *Vehicle) Capacity() Capacity {
	return v.capacity
}

func (v *Vehicle) Status() Status {
	return v.status
}

// CurrentLocation is nil until the vehicle reports a position.
func (v *Vehicle) CurrentLocation() *kernel.Location {
	if v.currentLocation == nil {
		return nil
	}
	loc := *v.currentLocation
	return &loc
}

func (v *Vehicle) MaintenanceSchedule() MaintenanceSchedule {
	return v.maintenanceSchedule
}

func (v *Vehicle) Notes() string {
	return v.notes
}

func (v *Vehicle) IsActive() bool {
	return v.isActive
}

func (v *Vehicle) IsDeleted() bool {
	return v.deletion.IsDeleted()
}

func (v *Vehicle) DeletedAt() *time.Time {
	return v.deletion.DeletedAt()
}

func (v *Vehicle) SetActive(active bool) {
	v.isActive = active
}

func (v *Vehicle) SetNotes(notes string) {
	v.notes = strings.TrimSpace(notes)
}

func (v *Vehicle) SoftDelete(now time.Time) bool {
	return v.deletion.MarkDeleted(now)
}

func (v *Vehicle) Restore() error {
	if err := v.deletion.Restore(); err != nil {
		return errs.NewObjectNotFoundErrorWithCause("vehicle", v.id, err)
	}
	return nil
}

func (v *Vehicle) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return errs.NewValueIsRequiredError("model")
	}
	v.model = model
	return nil
}

func (v *Vehicle) SetCapacity(capacity Capacity) error {
	if err := capacity.Validate(); err != nil {
		return err
	}
	v.capacity = capacity
	return nil
}

func (v *Vehicle) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}

func (v *Vehicle) MoveTo(loc kernel.Location) error {
	if err := loc.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("currentLocation", err)
	}
	v.currentLocation = &loc
	return nil
}

func (v *Vehicle) ScheduleMaintenance(schedule MaintenanceSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	schedule.LastService = schedule.LastService.UTC()
	schedule.NextService = schedule.NextService.UTC()
	v.maintenanceSchedule = schedule
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setRegistrationNumber(reg string) error {
	reg = strings.ToUpper(strings.TrimSpace(reg))
	if reg == "" {
		return errs.NewValueIsRequiredError("registrationNumber")
	}
	v.registrationNumber = reg
	return nil
}
