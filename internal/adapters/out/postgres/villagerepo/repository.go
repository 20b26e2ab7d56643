package villagerepo

import (
	"context"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/village"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormVillageRepository struct {
	db *gorm.DB
}

func NewGormVillageRepository(db *gorm.DB) *GormVillageRepository {
	return &GormVillageRepository{db: db}
}

func (r *GormVillageRepository) Add(ctx context.Context, aggregate *village.Village) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.WrapWrite("insert village", "village", aggregate.ID(), err)
	}
	return nil
}

// Update writes every column, the region link and the deletion marker
// included, so a detached region becomes NULL.
func (r *GormVillageRepository) Update(ctx context.Context, aggregate *village.Village) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&VillageDTO{ID: dto.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.WrapWrite("update village", "village", aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("village", aggregate.ID())
	}
	return nil
}

func (r *GormVillageRepository) Get(ctx context.Context, id kernel.UUID) (*village.Village, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormVillageRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*village.Village, error) {
	return r.get(ctx, r.db.Unscoped(), id)
}

func (r *GormVillageRepository) ListByRegion(ctx context.Context, regionID kernel.UUID) ([]*village.Village, error) {
	if err := regionID.Validate(); err != nil {
		return nil, err
	}

	var dtos []VillageDTO
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("region_id = ?", regionID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgutil.Wrap("list villages by region", err)
	}

	villages := make([]*village.Village, 0, len(dtos))
	for _, dto := range dtos {
		v, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		villages = append(villages, v)
	}
	return villages, nil
}

func (r *GormVillageRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*village.Village, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto VillageDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.WrapRead("get village", "village", id, err)
	}
	return toDomain(dto)
}
