package vehiclerepo

import (
	"time"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegistrationNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Model              string    `gorm:"type:varchar(255);not null"`
	CapacityWeight     float64   `gorm:"type:double precision;not null"`
	CapacityVolume     float64   `gorm:"type:double precision;not null"`
	Status             string    `gorm:"type:varchar(16);not null"`

	// HasLocation distinguishes "never reported" from a fix at 0,0.
	HasLocation     bool                   `gorm:"not null"`
	CurrentLocation pgutil.LocationColumns `gorm:"embedded;embeddedPrefix:current_"`

	LastService       *time.Time
	NextService       *time.Time
	ServiceIntervalKm int    `gorm:"not null"`
	Notes             string `gorm:"type:text"`

	IsActive  bool           `gorm:"not null"`
	IsDeleted bool           `gorm:"not null;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ID:                 v.ID().Bytes(),
		RegistrationNumber: v.RegistrationNumber(),
		Model:              v.Model(),
		CapacityWeight:     v.Capacity().Weight,
		CapacityVolume:     v.Capacity().Volume,
		Status:             v.Status().String(),
		ServiceIntervalKm:  v.MaintenanceSchedule().ServiceIntervalKm,
		Notes:              v.Notes(),
		IsActive:           v.IsActive(),
		IsDeleted:          v.IsDeleted(),
		DeletedAt:          pgutil.DeletedAtColumn(v.DeletedAt()),
	}
	if loc := v.CurrentLocation(); loc != nil {
		dto.HasLocation = true
		dto.CurrentLocation = pgutil.FromLocation(*loc)
	}
	if m := v.MaintenanceSchedule(); !m.IsZero() {
		last, next := m.LastService, m.NextService
		dto.LastService = &last
		dto.NextService = &next
	}
	return dto
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := vehicle.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var loc *kernel.Location
	if dto.HasLocation {
		l, locErr := dto.CurrentLocation.ToDomain()
		if locErr != nil {
			return nil, locErr
		}
		loc = &l
	}

	maintenance := vehicle.MaintenanceSchedule{ServiceIntervalKm: dto.ServiceIntervalKm}
	if dto.LastService != nil {
		maintenance.LastService = *dto.LastService
	}
	if dto.NextService != nil {
		maintenance.NextService = *dto.NextService
	}

	return vehicle.RestoreVehicle(
		id, dto.RegistrationNumber, dto.Model,
		vehicle.Capacity{Weight: dto.CapacityWeight, Volume: dto.CapacityVolume},
		status, loc, maintenance, dto.Notes,
		dto.IsActive, pgutil.DeletedAtPtr(dto.DeletedAt),
	)
}
