// Package ports defines the contracts between the fleet core and its
// infrastructure: repositories, the unit of work and post-commit hooks.
package ports

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// TripRepository persists Trip aggregates together with their destinations.
//
// Writes are optimistic: Update and Delete only succeed against the version
// the aggregate was loaded with and fail with a Conflict error otherwise.
type TripRepository interface {
	// Add inserts a new trip. A duplicate id is a Conflict.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update rewrites the whole trip when the stored version still matches
	// aggregate.Version(), then advances the aggregate's version.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Delete hard-deletes the trip under the same version check as Update.
	Delete(ctx context.Context, aggregate *trip.Trip) error

	// Get returns NotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// ListActiveByVehicle returns the vehicle's trips that are not
	// COMPLETED or CANCELLED. These are the trips that can block a booking.
	ListActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*trip.Trip, error)

	// ListActiveByDriver is ListActiveByVehicle for drivers.
	ListActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*trip.Trip, error)
}
