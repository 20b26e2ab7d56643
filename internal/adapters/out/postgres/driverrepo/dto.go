package driverrepo

import (
	"time"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DriverDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Name          string         `gorm:"type:varchar(255);not null"`
	LicenseNumber string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	LicenseExpiry time.Time      `gorm:"not null"`
	VehicleID     *uuid.UUID     `gorm:"type:uuid;index"`
	VillageID     *uuid.UUID     `gorm:"type:uuid;index"`
	RegionID      *uuid.UUID     `gorm:"type:uuid;index"`
	Status        string         `gorm:"type:varchar(16);not null"`
	IsActive      bool           `gorm:"not null"`
	IsDeleted     bool           `gorm:"not null;index"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:            d.ID().Bytes(),
		UserID:        d.UserID().Bytes(),
		Name:          d.Name(),
		LicenseNumber: d.LicenseNumber(),
		LicenseExpiry: d.LicenseExpiry(),
		VehicleID:     kernel.BytesPtr(d.VehicleID()),
		VillageID:     kernel.BytesPtr(d.VillageID()),
		RegionID:      kernel.BytesPtr(d.RegionID()),
		Status:        d.Status().String(),
		IsActive:      d.IsActive(),
		IsDeleted:     d.IsDeleted(),
		DeletedAt:     pgutil.DeletedAtColumn(d.DeletedAt()),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var refs driver.References
	if refs.VehicleID, err = kernel.UUIDPtrFromBytes(dto.VehicleID); err != nil {
		return nil, err
	}
	if refs.VillageID, err = kernel.UUIDPtrFromBytes(dto.VillageID); err != nil {
		return nil, err
	}
	if refs.RegionID, err = kernel.UUIDPtrFromBytes(dto.RegionID); err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, userID, dto.Name, dto.LicenseNumber, dto.LicenseExpiry,
		refs, status, dto.IsActive, pgutil.DeletedAtPtr(dto.DeletedAt))
}
