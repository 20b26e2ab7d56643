package queries

import (
	"time"

	"github.com/google/uuid"
)

type RegionView struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	BaseAddress AddressView  `json:"baseAddress"`
	Center      LocationView `json:"center"`
	RadiusKm    float64      `json:"radiusKm"`
	IsActive    bool         `json:"isActive"`
	IsDeleted   bool         `json:"isDeleted"`
	DeletedAt   *time.Time   `json:"deletedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type VillageView struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	RegionID    *uuid.UUID   `json:"regionId,omitempty"`
	Inhabitants int          `json:"inhabitants"`
	Coordinates LocationView `json:"coordinates"`
	IsActive    bool         `json:"isActive"`
	IsDeleted   bool         `json:"isDeleted"`
	DeletedAt   *time.Time   `json:"deletedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type VehicleView struct {
	ID                 uuid.UUID        `json:"id"`
	RegistrationNumber string           `json:"registrationNumber"`
	Model              string           `json:"model"`
	Capacity           CapacityView     `json:"capacity"`
	Status             string           `json:"status"`
	CurrentLocation    *LocationView    `json:"currentLocation,omitempty"`
	Maintenance        *MaintenanceView `json:"maintenanceSchedule,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	IsActive           bool             `json:"isActive"`
	IsDeleted          bool             `json:"isDeleted"`
	DeletedAt          *time.Time       `json:"deletedAt,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

type CapacityView struct {
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
}

type MaintenanceView struct {
	LastService       time.Time `json:"lastService"`
	NextService       time.Time `json:"nextService"`
	ServiceIntervalKm int       `json:"serviceIntervalKm"`
}

type DriverView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	Name          string     `json:"name"`
	LicenseNumber string     `json:"licenseNumber"`
	LicenseExpiry time.Time  `json:"licenseExpiry"`
	VehicleID     *uuid.UUID `json:"vehicleId,omitempty"`
	VillageID     *uuid.UUID `json:"villageId,omitempty"`
	RegionID      *uuid.UUID `json:"regionId,omitempty"`
	Status        string     `json:"status"`
	IsActive      bool       `json:"isActive"`
	IsDeleted     bool       `json:"isDeleted"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ProductView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	UnitPrice    float64   `json:"unitPrice"`
	CurrentStock int       `json:"currentStock"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// The rows below mirror the entity tables column for column.

type regionRow struct {
	ID               uuid.UUID
	Name             string
	BaseStreet       string
	BaseCity         string
	BasePostalCode   string
	BaseCountry      string
	CenterLongitude  float64
	CenterLatitude   float64
	CenterStreet     string
	CenterCity       string
	CenterPostalCode string
	CenterCountry    string
	RadiusKm         float64
	IsActive         bool
	IsDeleted        bool
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r regionRow) toView() RegionView {
	return RegionView{
		ID:   r.ID,
		Name: r.Name,
		BaseAddress: AddressView{
			Street:     r.BaseStreet,
			City:       r.BaseCity,
			PostalCode: r.BasePostalCode,
			Country:    r.BaseCountry,
		},
		Center: newLocationView(r.CenterLongitude, r.CenterLatitude,
			r.CenterStreet, r.CenterCity, r.CenterPostalCode, r.CenterCountry),
		RadiusKm:  r.RadiusKm,
		IsActive:  r.IsActive,
		IsDeleted: r.IsDeleted,
		DeletedAt: utcPtr(r.DeletedAt),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type villageRow struct {
	ID          uuid.UUID
	Name        string
	RegionID    *uuid.UUID
	Inhabitants int
	Longitude   float64
	Latitude    float64
	Street      string
	City        string
	PostalCode  string
	Country     string
	IsActive    bool
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r villageRow) toView() VillageView {
	return VillageView{
		ID:          r.ID,
		Name:        r.Name,
		RegionID:    r.RegionID,
		Inhabitants: r.Inhabitants,
		Coordinates: newLocationView(r.Longitude, r.Latitude, r.Street, r.City, r.PostalCode, r.Country),
		IsActive:    r.IsActive,
		IsDeleted:   r.IsDeleted,
		DeletedAt:   utcPtr(r.DeletedAt),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type vehicleRow struct {
	ID                 uuid.UUID
	RegistrationNumber string
	Model              string
	CapacityWeight     float64
	CapacityVolume     float64
	Status             string
	HasLocation        bool
	CurrentLongitude   float64
	CurrentLatitude    float64
	CurrentStreet      string
	CurrentCity        string
	CurrentPostalCode  string
	CurrentCountry     string
	LastService        *time.Time
	NextService        *time.Time
	ServiceIntervalKm  int
	Notes              string
	IsActive           bool
	IsDeleted          bool
	DeletedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r vehicleRow) toView() VehicleView {
	view := VehicleView{
		ID:                 r.ID,
		RegistrationNumber: r.RegistrationNumber,
		Model:              r.Model,
		Capacity:           CapacityView{Weight: r.CapacityWeight, Volume: r.CapacityVolume},
		Status:             r.Status,
		Notes:              r.Notes,
		IsActive:           r.IsActive,
		IsDeleted:          r.IsDeleted,
		DeletedAt:          utcPtr(r.DeletedAt),
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
	if r.HasLocation {
		loc := newLocationView(r.CurrentLongitude, r.CurrentLatitude,
			r.CurrentStreet, r.CurrentCity, r.CurrentPostalCode, r.CurrentCountry)
		view.CurrentLocation = &loc
	}
	if r.LastService != nil && r.NextService != nil {
		view.Maintenance = &MaintenanceView{
			LastService:       r.LastService.UTC(),
			NextService:       r.NextService.UTC(),
			ServiceIntervalKm: r.ServiceIntervalKm,
		}
	}
	return view
}

type driverRow struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	LicenseNumber string
	LicenseExpiry time.Time
	VehicleID     *uuid.UUID
	VillageID     *uuid.UUID
	RegionID      *uuid.UUID
	Status        string
	IsActive      bool
	IsDeleted     bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r driverRow) toView() DriverView {
	return DriverView{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		LicenseNumber: r.LicenseNumber,
		LicenseExpiry: r.LicenseExpiry.UTC(),
		VehicleID:     r.VehicleID,
		VillageID:     r.VillageID,
		RegionID:      r.RegionID,
		Status:        r.Status,
		IsActive:      r.IsActive,
		IsDeleted:     r.IsDeleted,
		DeletedAt:     utcPtr(r.DeletedAt),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

type productRow struct {
	ID           uuid.UUID
	Name         string
	Category     string
	Unit         string
	UnitPrice    float64
	CurrentStock int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r productRow) toView() ProductView {
	return ProductView{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		UnitPrice:    r.UnitPrice,
		CurrentStock: r.CurrentStock,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}
