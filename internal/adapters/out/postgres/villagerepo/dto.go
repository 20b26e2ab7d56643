package villagerepo

import (
	"time"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/village"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VillageDTO struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Name        string                 `gorm:"type:varchar(255);not null"`
	RegionID    *uuid.UUID             `gorm:"type:uuid;index"`
	Inhabitants int                    `gorm:"not null"`
	Coordinates pgutil.LocationColumns `gorm:"embedded"`
	IsActive    bool                   `gorm:"not null"`
	IsDeleted   bool                   `gorm:"not null;index"`
	DeletedAt   gorm.DeletedAt         `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (VillageDTO) TableName() string {
	return "villages"
}

func fromDomain(v *village.Village) VillageDTO {
	return VillageDTO{
		ID:          v.ID().Bytes(),
		Name:        v.Name(),
		RegionID:    kernel.BytesPtr(v.RegionID()),
		Inhabitants: v.Inhabitants(),
		Coordinates: pgutil.FromLocation(v.Coordinates()),
		IsActive:    v.IsActive(),
		IsDeleted:   v.IsDeleted(),
		DeletedAt:   pgutil.DeletedAtColumn(v.DeletedAt()),
	}
}

func toDomain(dto VillageDTO) (*village.Village, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	regionID, err := kernel.UUIDPtrFromBytes(dto.RegionID)
	if err != nil {
		return nil, err
	}
	coords, err := dto.Coordinates.ToDomain()
	if err != nil {
		return nil, err
	}
	return village.RestoreVillage(id, dto.Name, regionID, dto.Inhabitants, coords,
		dto.IsActive, pgutil.DeletedAtPtr(dto.DeletedAt))
}
