// Package triprepo persists Trip aggregates. A trip is one row; its
// destinations are an owned JSONB document inside that row so that a trip
// is always read and written as a whole.
package triprepo

import (
	"errors"
	"time"

	"fleet/internal/adapters/out/postgres/pgutil"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TripDTO is the trips table.
type TripDTO struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	VehicleID      uuid.UUID                          `gorm:"type:uuid;not null;index"`
	DriverID       uuid.UUID                          `gorm:"type:uuid;not null;index"`
	Status         string                             `gorm:"type:varchar(16);not null;index"`
	ScheduledStart time.Time                          `gorm:"not null;index"`
	ActualStart    *time.Time                         ``
	ActualEnd      *time.Time                         ``
	StartLocation  pgutil.LocationColumns             `gorm:"embedded;embeddedPrefix:start_"`
	Notes          string                             `gorm:"type:text"`
	Destinations   datatypes.JSONSlice[DestinationDTO] `gorm:"type:jsonb;not null"`
	Version        int64                              `gorm:"not null"`
	CreatedAt      time.Time                          `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt      time.Time                          `gorm:"autoUpdateTime:false;not null"`
}

func (TripDTO) TableName() string {
	return "trips"
}

// DestinationDTO is one element of trips.destinations.
type DestinationDTO struct {
	ID               uuid.UUID        `json:"id"`
	Longitude        float64          `json:"longitude"`
	Latitude         float64          `json:"latitude"`
	Street           string           `json:"street,omitempty"`
	City             string           `json:"city,omitempty"`
	PostalCode       string           `json:"postalCode,omitempty"`
	Country          string           `json:"country,omitempty"`
	VillageID        uuid.UUID        `json:"villageId"`
	Products         []ProductLineDTO `json:"products"`
	EstimatedArrival time.Time        `json:"estimatedArrival"`
	ActualArrival    *time.Time       `json:"actualArrival,omitempty"`
	Status           string           `json:"status"`
}

type ProductLineDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func fromDomain(t *trip.Trip) TripDTO {
	dests := t.Destinations()
	destDTOs := make([]DestinationDTO, 0, len(dests))
	for _, d := range dests {
		lines := d.Products()
		lineDTOs := make([]ProductLineDTO, 0, len(lines))
		for _, l := range lines {
			lineDTOs = append(lineDTOs, ProductLineDTO{ProductID: l.ProductID().Bytes(), Quantity: l.Quantity()})
		}
		addr := d.Location().Address()
		destDTOs = append(destDTOs, DestinationDTO{
			ID:               d.ID().Bytes(),
			Longitude:        d.Location().Longitude(),
			Latitude:         d.Location().Latitude(),
			Street:           addr.Street,
			City:             addr.City,
			PostalCode:       addr.PostalCode,
			Country:          addr.Country,
			VillageID:        d.VillageID().Bytes(),
			Products:         lineDTOs,
			EstimatedArrival: d.EstimatedArrival(),
			ActualArrival:    d.ActualArrival(),
			Status:           d.Status().String(),
		})
	}

	return TripDTO{
		ID:             t.ID().Bytes(),
		VehicleID:      t.VehicleID().Bytes(),
		DriverID:       t.DriverID().Bytes(),
		Status:         t.Status().String(),
		ScheduledStart: t.ScheduledStart(),
		ActualStart:    t.ActualStart(),
		ActualEnd:      t.ActualEnd(),
		StartLocation:  pgutil.FromLocation(t.StartLocation()),
		Notes:          t.Notes(),
		Destinations:   datatypes.NewJSONSlice(destDTOs),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	status, err := trip.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	startLocation, err := dto.StartLocation.ToDomain()
	if err != nil {
		return nil, err
	}

	dests := make([]*trip.Destination, 0, len(dto.Destinations))
	for _, d := range dto.Destinations {
		dest, destErr := destinationToDomain(d)
		if destErr != nil {
			return nil, destErr
		}
		dests = append(dests, dest)
	}

	return trip.RestoreTrip(
		id, vehicleID, driverID, status,
		dto.ScheduledStart, dto.ActualStart, dto.ActualEnd,
		startLocation, dto.Notes, dests,
		dto.Version, dto.CreatedAt, dto.UpdatedAt,
	)
}

func destinationToDomain(d DestinationDTO) (*trip.Destination, error) {
	id, idErr := kernel.UUIDFromBytes(d.ID[:])
	villageID, villageErr := kernel.UUIDFromBytes(d.VillageID[:])
	status, statusErr := trip.ParseDestinationStatus(d.Status)
	loc, locErr := kernel.NewLocationWithAddress(d.Longitude, d.Latitude, kernel.Address{
		Street:     d.Street,
		City:       d.City,
		PostalCode: d.PostalCode,
		Country:    d.Country,
	})
	if err := errors.Join(idErr, villageErr, statusErr, locErr); err != nil {
		return nil, err
	}

	lines := make([]trip.ProductLine, 0, len(d.Products))
	for _, l := range d.Products {
		productID, err := kernel.UUIDFromBytes(l.ProductID[:])
		if err != nil {
			return nil, err
		}
		line, err := trip.NewProductLine(productID, l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return trip.RestoreDestination(id, loc, villageID, lines, d.EstimatedArrival, d.ActualArrival, status)
}
