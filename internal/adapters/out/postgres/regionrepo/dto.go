package regionrepo

import (
	"time"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/region"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegionDTO struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Name        string                 `gorm:"type:varchar(255);not null"`
	BaseAddress pgutil.AddressColumns  `gorm:"embedded;embeddedPrefix:base_"`
	Center      pgutil.LocationColumns `gorm:"embedded;embeddedPrefix:center_"`
	RadiusKm    float64                `gorm:"type:double precision;not null"`
	IsActive    bool                   `gorm:"not null"`
	IsDeleted   bool                   `gorm:"not null;index"`
	DeletedAt   gorm.DeletedAt         `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (RegionDTO) TableName() string {
	return "regions"
}

func fromDomain(r *region.Region) RegionDTO {
	return RegionDTO{
		ID:          r.ID().Bytes(),
		Name:        r.Name(),
		BaseAddress: pgutil.FromAddress(r.BaseAddress()),
		Center:      pgutil.FromLocation(r.Center()),
		RadiusKm:    r.RadiusKm(),
		IsActive:    r.IsActive(),
		IsDeleted:   r.IsDeleted(),
		DeletedAt:   pgutil.DeletedAtColumn(r.DeletedAt()),
	}
}

func toDomain(dto RegionDTO) (*region.Region, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	center, err := dto.Center.ToDomain()
	if err != nil {
		return nil, err
	}
	return region.RestoreRegion(id, dto.Name, dto.BaseAddress.ToDomain(), center,
		dto.RadiusKm, dto.IsActive, pgutil.DeletedAtPtr(dto.DeletedAt))
}
