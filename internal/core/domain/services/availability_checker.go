package services

import (
	"fmt"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
)

// AvailabilityChecker decides whether a vehicle or driver is free for a
// proposed window, given the trips already booked on that resource.
//
// Overlap rule, per existing non-terminal trip:
//
//	existing.scheduledStart < window.end &&
//	(existing.actualEnd == nil || existing.actualEnd > window.start)
//
// COMPLETED and CANCELLED trips never block. The checker is pure: loading
// the candidate trips and holding the resource lock is the caller's job.
type AvailabilityChecker struct{}

func NewAvailabilityChecker() AvailabilityChecker {
	return AvailabilityChecker{}
}

// IsAvailable reports true when no trip overlaps the window.
func (a AvailabilityChecker) IsAvailable(window kernel.Window, trips []*trip.Trip) (bool, error) {
	overlapping, err := a.Overlapping(window, trips)
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

// Overlapping returns the trips that collide with the window, in input order.
func (a AvailabilityChecker) Overlapping(window kernel.Window, trips []*trip.Trip) ([]*trip.Trip, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var out []*trip.Trip
	for _, t := range trips {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if overlaps(window, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// EnsureAvailable is IsAvailable turned into a Conflict error naming the
// first colliding trip.
func (a AvailabilityChecker) EnsureAvailable(
	resource string,
	resourceID kernel.UUID,
	window kernel.Window,
	trips []*trip.Trip,
) error {
	overlapping, err := a.Overlapping(window, trips)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return errs.NewConflictError(resource, resourceID,
			fmt.Sprintf("already booked by trip %s in %s", overlapping[0].ID(), window))
	}
	return nil
}

func overlaps(window kernel.Window, t *trip.Trip) bool {
	if t.Status().IsTerminal() {
		return false
	}
	if !t.ScheduledStart().Before(window.End()) {
		return false
	}
	end := t.ActualEnd()
	return end == nil || end.After(window.Start())
}
