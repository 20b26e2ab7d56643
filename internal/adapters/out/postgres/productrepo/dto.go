package productrepo

import (
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"

	"github.com/google/uuid"
)

type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Category     string    `gorm:"type:varchar(16);not null"`
	Unit         string    `gorm:"type:varchar(16);not null"`
	UnitPrice    float64   `gorm:"type:double precision;not null"`
	CurrentStock int       `gorm:"not null"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		Name:         p.Name(),
		Category:     p.Category().String(),
		Unit:         p.Unit().String(),
		UnitPrice:    p.UnitPrice(),
		CurrentStock: p.CurrentStock(),
		IsActive:     p.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	category, err := product.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	unit, err := product.ParseUnit(dto.Unit)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, category, unit, dto.UnitPrice, dto.CurrentStock, dto.IsActive)
}
