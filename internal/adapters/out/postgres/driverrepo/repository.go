package driverrepo

import (
	"context"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDriverRepository struct {
	db *gorm.DB
}

func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.WrapWrite("insert driver", "driver", aggregate.ID(), err)
	}
	return nil
}

func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&DriverDTO{ID: dto.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.WrapWrite("update driver", "driver", aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.ID())
	}
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormDriverRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	return r.get(ctx, r.db.Unscoped(), id)
}

func (r *GormDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDriverRepository) ExistsByUserID(ctx context.Context, userID kernel.UUID) (bool, error) {
	if err := userID.Validate(); err != nil {
		return false, err
	}
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&DriverDTO{}).
		Where("user_id = ?", userID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, pgutil.Wrap("count drivers by user", err)
	}
	return count > 0, nil
}

func (r *GormDriverRepository) ListByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*driver.Driver, error) {
	return r.listBy(ctx, "vehicle_id", vehicleID)
}

func (r *GormDriverRepository) ListByVillage(ctx context.Context, villageID kernel.UUID) ([]*driver.Driver, error) {
	return r.listBy(ctx, "village_id", villageID)
}

func (r *GormDriverRepository) ListByRegion(ctx context.Context, regionID kernel.UUID) ([]*driver.Driver, error) {
	return r.listBy(ctx, "region_id", regionID)
}

func (r *GormDriverRepository) listBy(ctx context.Context, column string, id kernel.UUID) ([]*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Unscoped().
		Where(column+" = ?", id.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgutil.Wrap("list drivers by "+column, err)
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

func (r *GormDriverRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto DriverDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.WrapRead("get driver", "driver", id, err)
	}
	return toDomain(dto)
}
