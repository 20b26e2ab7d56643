package queries

import (
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/vehicle"

	"gorm.io/gorm"
)

// EntityFilter narrows an entity listing to the rows matching every field
// that is set. Nil fields match everything and strings match exactly.
type EntityFilter interface {
	apply(db *gorm.DB) *gorm.DB
}

type RegionFilter struct {
	Name     *string
	IsActive *bool
}

func (f RegionFilter) apply(db *gorm.DB) *gorm.DB {
	db = whereEq(db, "name", f.Name)
	return whereEq(db, "is_active", f.IsActive)
}

type VillageFilter struct {
	Name     *string
	RegionID *kernel.UUID
	IsActive *bool
}

func (f VillageFilter) apply(db *gorm.DB) *gorm.DB {
	db = whereEq(db, "name", f.Name)
	if f.RegionID != nil {
		db = db.Where("region_id = ?", f.RegionID.Bytes())
	}
	return whereEq(db, "is_active", f.IsActive)
}

type VehicleFilter struct {
	RegistrationNumber *string
	Status             *vehicle.Status
	IsActive           *bool
}

func (f VehicleFilter) apply(db *gorm.DB) *gorm.DB {
	db = whereEq(db, "registration_number", f.RegistrationNumber)
	if f.Status != nil {
		db = db.Where("status = ?", f.Status.String())
	}
	return whereEq(db, "is_active", f.IsActive)
}

type DriverFilter struct {
	Name          *string
	LicenseNumber *string
	Status        *driver.Status
	IsActive      *bool
}

func (f DriverFilter) apply(db *gorm.DB) *gorm.DB {
	db = whereEq(db, "name", f.Name)
	db = whereEq(db, "license_number", f.LicenseNumber)
	if f.Status != nil {
		db = db.Where("status = ?", f.Status.String())
	}
	return whereEq(db, "is_active", f.IsActive)
}

type ProductFilter struct {
	Name     *string
	Category *product.Category
	IsActive *bool
}

func (f ProductFilter) apply(db *gorm.DB) *gorm.DB {
	db = whereEq(db, "name", f.Name)
	if f.Category != nil {
		db = db.Where("category = ?", f.Category.String())
	}
	return whereEq(db, "is_active", f.IsActive)
}

func whereEq[T any](db *gorm.DB, column string, value *T) *gorm.DB {
	if value == nil {
		return db
	}
	return db.Where(column+" = ?", *value)
}
