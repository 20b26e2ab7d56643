package triprepo

import (
	"context"
	"fmt"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTripRepository implements ports.TripRepository with optimistic
// concurrency on the version column.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records every trip written through the repository. A
// deleted trip is tracked as a nil *trip.Trip.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.WrapWrite("insert trip", "trip", aggregate.ID(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the trip only if the stored version is still the one the
// aggregate was loaded with, and bumps it by one.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&TripDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.WrapWrite("update trip", "trip", aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate)
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the trip under the same version check as Update.
func (r *GormTripRepository) Delete(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Delete(&TripDTO{})
	if result.Error != nil {
		return pgutil.Wrap("delete trip", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), (*trip.Trip)(nil))
	return nil
}

func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.WrapRead("get trip", "trip", id, err)
	}

	return toDomain(dto)
}

func (r *GormTripRepository) ListActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*trip.Trip, error) {
	return r.listActive(ctx, "vehicle_id", vehicleID)
}

func (r *GormTripRepository) ListActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*trip.Trip, error) {
	return r.listActive(ctx, "driver_id", driverID)
}

func (r *GormTripRepository) listActive(ctx context.Context, column string, id kernel.UUID) ([]*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []TripDTO
	err := r.db.WithContext(ctx).
		Where(column+" = ?", id.Bytes()).
		Where("status NOT IN ?", []string{trip.Completed.String(), trip.Cancelled.String()}).
		Order("scheduled_start, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgutil.Wrap("list active trips", err)
	}

	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		t, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// missOrConflict tells a vanished trip from a stale version after a
// conditional write touched no row.
func (r *GormTripRepository) missOrConflict(ctx context.Context, aggregate *trip.Trip) error {
	var current int64
	err := r.db.WithContext(ctx).
		Model(&TripDTO{}).
		Select("version").
		Where("id = ?", aggregate.ID().Bytes()).
		Scan(&current).Error
	if err != nil {
		return pgutil.Wrap("read trip version", err)
	}
	if current == 0 {
		return errs.NewObjectNotFoundError("trip", aggregate.ID())
	}
	return errs.NewConflictError("trip", aggregate.ID(),
		fmt.Sprintf("version %d is stale, stored version is %d", aggregate.Version(), current))
}
