package pgutil

import (
	"time"

	"fleet/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// AddressColumns is embedded wherever an address is stored.
type AddressColumns struct {
	Street     string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(128)"`
	PostalCode string `gorm:"type:varchar(16)"`
	Country    string `gorm:"type:varchar(64)"`
}

// LocationColumns stores a point plus its optional address.
type LocationColumns struct {
	Longitude float64        `gorm:"type:double precision;not null"`
	Latitude  float64        `gorm:"type:double precision;not null"`
	Address   AddressColumns `gorm:"embedded"`
}

func FromAddress(a kernel.Address) AddressColumns {
	return AddressColumns{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func (c AddressColumns) ToDomain() kernel.Address {
	return kernel.Address{
		Street:     c.Street,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
	}
}

func FromLocation(l kernel.Location) LocationColumns {
	return LocationColumns{
		Longitude: l.Longitude(),
		Latitude:  l.Latitude(),
		Address:   FromAddress(l.Address()),
	}
}

func (c LocationColumns) ToDomain() (kernel.Location, error) {
	return kernel.NewLocationWithAddress(c.Longitude, c.Latitude, c.Address.ToDomain())
}

// DeletedAtPtr converts gorm's soft-delete column into the domain marker.
func DeletedAtPtr(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	at := d.Time
	return &at
}

// DeletedAtColumn is the inverse of DeletedAtPtr.
func DeletedAtColumn(at *time.Time) gorm.DeletedAt {
	if at == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *at, Valid: true}
}
