package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip was not created through
	// NewTrip or RestoreTrip.
	ErrTripIsNotConstructed = errors.New("trip must be created via NewTrip or RestoreTrip")

	// ErrTripIsFinished is the reason attached when destinations of a
	// COMPLETED or CANCELLED trip are touched.
	ErrTripIsFinished = errors.New("cannot update destinations of a finished trip")
)

// Trip is the aggregate root for a planned run of one vehicle and one
// driver through an ordered list of destinations.
//
// Trip follows these invariants:
//   - vehicle, driver and start location are always set
//   - destinations are non-empty, uniquely identified and kept in order
//   - every estimated arrival lies after the scheduled start
//   - actualStart and actualEnd are stamped at most once
//   - status and destination status only move along their tables
//
// version is the optimistic concurrency token. A persisted write succeeds
// only against the version the trip was loaded with.
type Trip struct {
	id             kernel.UUID
	vehicleID      kernel.UUID
	driverID       kernel.UUID
	status         Status
	scheduledStart time.Time
	actualStart    *time.Time
	actualEnd      *time.Time
	startLocation  kernel.Location
	notes          string
	destinations   []*Destination
	version        int64
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewTrip creates a SCHEDULED trip at version 1.
//
// Example:
//
//	dest, _ := trip.NewDestination(kernel.NewUUID(), loc, villageID, lines, start.Add(2*time.Hour))
//	t, err := trip.NewTrip(kernel.NewUUID(), vehicleID, driverID, startLoc,
//	    []*trip.Destination{dest}, start, "", time.Now())
func NewTrip(
	id kernel.UUID,
	vehicleID kernel.UUID,
	driverID kernel.UUID,
	startLocation kernel.Location,
	destinations []*Destination,
	scheduledStart time.Time,
	notes string,
	now time.Time,
) (*Trip, error) {
	return RestoreTrip(
		id, vehicleID, driverID, Scheduled,
		scheduledStart, nil, nil,
		startLocation, notes, destinations,
		1, now, now,
	)
}

// RestoreTrip rebuilds a trip from storage. It runs the same shape
// validation as NewTrip and additionally checks the stored status.
func RestoreTrip(
	id kernel.UUID,
	vehicleID kernel.UUID,
	driverID kernel.UUID,
	status Status,
	scheduledStart time.Time,
	actualStart *time.Time,
	actualEnd *time.Time,
	startLocation kernel.Location,
	notes string,
	destinations []*Destination,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Trip, error) {
	t := &Trip{
		notes:       strings.TrimSpace(notes),
		actualStart: copyTime(actualStart),
		actualEnd:   copyTime(actualEnd),
		createdAt:   createdAt.UTC(),
		updatedAt:   updatedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setVehicleID(vehicleID),
		t.setDriverID(driverID),
		t.setStatus(status),
		t.setScheduledStart(scheduledStart),
		t.setStartLocation(startLocation),
		t.setVersion(version),
	); err != nil {
		return nil, err
	}
	if err := t.setDestinations(destinations); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Trip) Validate() error {
	if t == nil {
		return ErrTripIsNotConstructed
	}
	return t.guard.Validate(ErrTripIsNotConstructed)
}

func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

func (t *Trip) ID() kernel.UUID {
	return t.id
}

func (t *Trip) VehicleID() kernel.UUID {
	return t.vehicleID
}

func (t *Trip) DriverID() kernel.UUID {
	return t.driverID
}

func (t *Trip) Status() Status {
	return t.status
}

func (t *Trip) ScheduledStart() time.Time {
	return t.scheduledStart
}

func (t *Trip) ActualStart() *time.Time {
	return copyTime(t.actualStart)
}

func (t *Trip) ActualEnd() *time.Time {
	return copyTime(t.actualEnd)
}

func (t *Trip) StartLocation() kernel.Location {
	return t.startLocation
}

func (t *Trip) Notes() string {
	return t.notes
}

func (t *Trip) Version() int64 {
	return t.version
}

func (t *Trip) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Trip) UpdatedAt() time.Time {
	return t.updatedAt
}

// Destinations returns copies of the destinations in their planned order.
func (t *Trip) Destinations() []*Destination {
	out := make([]*Destination, 0, len(t.destinations))
	for _, d := range t.destinations {
		out = append(out, d.clone())
	}
	return out
}

// Destination looks up a destination by id within this trip.
func (t *Trip) Destination(id kernel.UUID) (*Destination, error) {
	d, err := t.findDestination(id)
	if err != nil {
		return nil, err
	}
	return d.clone(), nil
}

// ChangeStatus moves the trip along the status table. Entering IN_PROGRESS
// stamps actualStart and entering COMPLETED stamps actualEnd; neither is
// overwritten once set.
func (t *Trip) ChangeStatus(next Status, now time.Time) error {
	newStatus, err := t.status.TransitionTo(next)
	if err != nil {
		return err
	}

	at := now.UTC()
	switch newStatus { //nolint:exhaustive // only these states stamp timestamps
	case InProgress:
		if t.actualStart == nil {
			t.actualStart = &at
		}
	case Completed:
		if t.actualEnd == nil {
			t.actualEnd = &at
		}
	}

	t.status = newStatus
	t.updatedAt = at
	return nil
}

// UpdateDestinationStatus moves one destination along its table.
//
// Errors:
//   - InvalidOperation when the trip is COMPLETED or CANCELLED
//   - NotFound when destID is not part of this trip
//   - InvalidTransition when the move is not in the destination table
func (t *Trip) UpdateDestinationStatus(destID kernel.UUID, next DestinationStatus, now time.Time) error {
	if t.status.IsTerminal() {
		return errs.NewInvalidOperationErrorWithCause(ErrTripIsFinished.Error(),
			fmt.Errorf("trip %s is %s", t.id, t.status))
	}

	d, err := t.findDestination(destID)
	if err != nil {
		return err
	}

	if err := d.changeStatus(next, now); err != nil {
		return err
	}
	t.updatedAt = now.UTC()
	return nil
}

// UpdateNotes replaces the free-text notes. It is the only plain field a
// caller may edit.
func (t *Trip) UpdateNotes(notes string, now time.Time) {
	t.notes = strings.TrimSpace(notes)
	t.updatedAt = now.UTC()
}

// CanBeDeleted allows hard deletion of SCHEDULED trips only.
func (t *Trip) CanBeDeleted() error {
	if t.status != Scheduled {
		return errs.NewInvalidOperationError(fmt.Sprintf("trip in status %s cannot be deleted", t.status))
	}
	return nil
}

// PlannedWindow is [scheduledStart, latest estimated arrival).
func (t *Trip) PlannedWindow() (kernel.Window, error) {
	end := t.scheduledStart
	for _, d := range t.destinations {
		if d.estimatedArrival.After(end) {
			end = d.estimatedArrival
		}
	}
	return kernel.NewWindow(t.scheduledStart, end)
}

// PlannedDistanceKm is the straight-line length of the planned path from
// the start location through every destination in order.
func (t *Trip) PlannedDistanceKm() float64 {
	total := 0.0
	prev := t.startLocation
	for _, d := range t.destinations {
		leg, err := prev.DistanceKm(d.location)
		if err != nil {
			return 0
		}
		total += leg
		prev = d.location
	}
	return total
}

// AdvanceVersion is called by persistence after a conditional write
// succeeded against the current version.
func (t *Trip) AdvanceVersion() {
	t.version++
}

func (t *Trip) findDestination(id kernel.UUID) (*Destination, error) {
	for _, d := range t.destinations {
		if d.id.IsEqual(id) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("destination", id)
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicle", err)
	}
	t.vehicleID = id
	return nil
}

func (t *Trip) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver", err)
	}
	t.driverID = id
	return nil
}

func (t *Trip) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Trip) setScheduledStart(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("scheduledStart")
	}
	t.scheduledStart = at.UTC()
	return nil
}

func (t *Trip) setStartLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("startLocation", err)
	}
	t.startLocation = location
	return nil
}

func (t *Trip) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}
	t.version = version
	return nil
}

// setDestinations runs after scheduledStart is set.
func (t *Trip) setDestinations(destinations []*Destination) error {
	if len(destinations) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("destinations", errors.New("at least one destination is required"))
	}

	seen := make(map[kernel.UUID]struct{}, len(destinations))
	var errList []error
	for i, d := range destinations {
		if err := d.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("destination %d: %w", i, err))
			continue
		}
		if _, dup := seen[d.id]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("destinations",
				fmt.Errorf("destination %s appears twice", d.id)))
		}
		seen[d.id] = struct{}{}
		if !d.estimatedArrival.After(t.scheduledStart) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("estimatedArrival",
				fmt.Errorf("destination %d arrives at %s, not after scheduled start %s",
					i, d.estimatedArrival.Format(time.RFC3339), t.scheduledStart.Format(time.RFC3339))))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	t.destinations = make([]*Destination, 0, len(destinations))
	for _, d := range destinations {
		t.destinations = append(t.destinations, d.clone())
	}
	return nil
}

func copyTime(at *time.Time) *time.Time {
	if at == nil {
		return nil
	}
	c := at.UTC()
	return &c
}
