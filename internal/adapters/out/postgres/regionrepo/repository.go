// Package regionrepo persists regions. Get hides soft-deleted rows through
// gorm's DeletedAt scope; every write goes through Unscoped so that deleted
// rows stay writable.
package regionrepo

import (
	"context"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/region"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormRegionRepository struct {
	db *gorm.DB
}

func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

func (r *GormRegionRepository) Add(ctx context.Context, aggregate *region.Region) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.WrapWrite("insert region", "region", aggregate.ID(), err)
	}
	return nil
}

func (r *GormRegionRepository) Update(ctx context.Context, aggregate *region.Region) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&RegionDTO{ID: dto.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.WrapWrite("update region", "region", aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("region", aggregate.ID())
	}
	return nil
}

func (r *GormRegionRepository) Get(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormRegionRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	return r.get(ctx, r.db.Unscoped(), id)
}

func (r *GormRegionRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*region.Region, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto RegionDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.WrapRead("get region", "region", id, err)
	}
	return toDomain(dto)
}
