package queries

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TripView is the read model of a trip. It is also the payload cached in
// redis, hence the json tags.
type TripView struct {
	ID             uuid.UUID         `json:"id"`
	VehicleID      uuid.UUID         `json:"vehicleId"`
	DriverID       uuid.UUID         `json:"driverId"`
	Status         string            `json:"status"`
	ScheduledStart time.Time         `json:"scheduledStart"`
	ActualStart    *time.Time        `json:"actualStart,omitempty"`
	ActualEnd      *time.Time        `json:"actualEnd,omitempty"`
	StartLocation  LocationView      `json:"startLocation"`
	Notes          string            `json:"notes,omitempty"`
	Destinations   []DestinationView `json:"destinations"`
	Version        int64             `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type DestinationView struct {
	ID               uuid.UUID         `json:"id"`
	Location         LocationView      `json:"location"`
	VillageID        uuid.UUID         `json:"villageId"`
	Products         []ProductLineView `json:"products"`
	EstimatedArrival time.Time         `json:"estimatedArrival"`
	ActualArrival    *time.Time        `json:"actualArrival,omitempty"`
	Status           string            `json:"status"`
}

type ProductLineView struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type LocationView struct {
	Longitude float64      `json:"longitude"`
	Latitude  float64      `json:"latitude"`
	Address   *AddressView `json:"address,omitempty"`
}

type AddressView struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func newLocationView(lon, lat float64, street, city, postalCode, country string) LocationView {
	loc := LocationView{Longitude: lon, Latitude: lat}
	if street != "" || city != "" || postalCode != "" {
		loc.Address = &AddressView{
			Street:     street,
			City:       city,
			PostalCode: postalCode,
			Country:    country,
		}
	}
	return loc
}

// tripRow mirrors the trips table. destinations is the JSONB document
// written by the trip repository.
type tripRow struct {
	ID              uuid.UUID
	VehicleID       uuid.UUID
	DriverID        uuid.UUID
	Status          string
	ScheduledStart  time.Time
	ActualStart     *time.Time
	ActualEnd       *time.Time
	StartLongitude  float64
	StartLatitude   float64
	StartStreet     string
	StartCity       string
	StartPostalCode string
	StartCountry    string
	Notes           string
	Destinations    datatypes.JSONSlice[destinationDoc]
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type destinationDoc struct {
	ID               uuid.UUID        `json:"id"`
	Longitude        float64          `json:"longitude"`
	Latitude         float64          `json:"latitude"`
	Street           string           `json:"street,omitempty"`
	City             string           `json:"city,omitempty"`
	PostalCode       string           `json:"postalCode,omitempty"`
	Country          string           `json:"country,omitempty"`
	VillageID        uuid.UUID        `json:"villageId"`
	Products         []productLineDoc `json:"products"`
	EstimatedArrival time.Time        `json:"estimatedArrival"`
	ActualArrival    *time.Time       `json:"actualArrival,omitempty"`
	Status           string           `json:"status"`
}

type productLineDoc struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func (r tripRow) toView() TripView {
	dests := make([]DestinationView, 0, len(r.Destinations))
	for _, d := range r.Destinations {
		lines := make([]ProductLineView, 0, len(d.Products))
		for _, l := range d.Products {
			lines = append(lines, ProductLineView{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		dests = append(dests, DestinationView{
			ID:               d.ID,
			Location:         newLocationView(d.Longitude, d.Latitude, d.Street, d.City, d.PostalCode, d.Country),
			VillageID:        d.VillageID,
			Products:         lines,
			EstimatedArrival: d.EstimatedArrival.UTC(),
			ActualArrival:    utcPtr(d.ActualArrival),
			Status:           d.Status,
		})
	}

	return TripView{
		ID:             r.ID,
		VehicleID:      r.VehicleID,
		DriverID:       r.DriverID,
		Status:         r.Status,
		ScheduledStart: r.ScheduledStart.UTC(),
		ActualStart:    utcPtr(r.ActualStart),
		ActualEnd:      utcPtr(r.ActualEnd),
		StartLocation: newLocationView(r.StartLongitude, r.StartLatitude,
			r.StartStreet, r.StartCity, r.StartPostalCode, r.StartCountry),
		Notes:        r.Notes,
		Destinations: dests,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func utcPtr(at *time.Time) *time.Time {
	if at == nil {
		return nil
	}
	u := at.UTC()
	return &u
}

func tripViews(rows []tripRow) []TripView {
	views := make([]TripView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.toView())
	}
	return views
}
