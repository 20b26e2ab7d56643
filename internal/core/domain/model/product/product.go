// Package product holds the Product aggregate. Products are referenced by
// trip destinations and are hard-deleted; there is no soft-delete tier.
package product

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	ErrProductIsNotConstructed = errors.New("product must be created via NewProduct or RestoreProduct")
	ErrNotEnoughStock          = errors.New("not enough stock")
)

type Product struct {
	id           kernel.UUID
	name         string
	category     Category
	unit         Unit
	unitPrice    float64
	currentStock int
	isActive     bool

	guard guard.ConstructorGuard
}

// NewProduct creates an active product with no stock.
func NewProduct(id kernel.UUID, name string, category Category, unit Unit, unitPrice float64) (*Product, error) {
	return RestoreProduct(id, name, category, unit, unitPrice, 0, true)
}

func RestoreProduct(
	id kernel.UUID,
	name string,
	category Category,
	unit Unit,
	unitPrice float64,
	currentStock int,
	isActive bool,
) (*Product, error) {
	p := &Product{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.Rename(name),
		p.SetCategory(category),
		p.SetUnit(unit),
		p.SetPrice(unitPrice),
		p.setStock(currentStock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Category() Category {
	return p.category
}

func (p *Product) Unit() Unit {
	return p.unit
}

func (p *Product) UnitPrice() float64 {
	return p.unitPrice
}

func (p *Product) CurrentStock() int {
	return p.currentStock
}

func (p *Product) IsActive() bool {
	return p.isActive
}

func (p *Product) SetActive(active bool) {
	p.isActive = active
}

func (p *Product) HasEnoughStock(quantity int) bool {
	return p.currentStock >= quantity
}

// AdjustStock adds delta to the stock. The stock never drops below zero.
func (p *Product) AdjustStock(delta int) error {
	next := p.currentStock + delta
	if next < 0 {
		return errs.NewInvalidOperationErrorWithCause(
			fmt.Sprintf("cannot remove %d from stock of %d", -delta, p.currentStock), ErrNotEnoughStock)
	}
	p.currentStock = next
	return nil
}

func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) SetCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	p.category = category
	return nil
}

func (p *Product) SetUnit(unit Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	p.unit = unit
	return nil
}

func (p *Product) SetPrice(unitPrice float64) error {
	if math.IsNaN(unitPrice) || unitPrice < 0 {
		return errs.NewValueIsOutOfRangeError("unitPrice", unitPrice, 0, "unbounded")
	}
	p.unitPrice = unitPrice
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("currentStock", stock, 0, "unbounded")
	}
	p.currentStock = stock
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}
