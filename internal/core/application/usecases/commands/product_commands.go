package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
	ErrUpdateProductCommandIsNotConstructed = errors.New(
		"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
	)
	ErrDeleteProductCommandIsNotConstructed = errors.New(
		"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
	)
)

type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	name         string
	category     product.Category
	unit         product.Unit
	unitPrice    float64
	initialStock int

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID,
	name string,
	category product.Category,
	unit product.Unit,
	unitPrice float64,
	initialStock int,
) (CreateProductCommand, error) {
	var stockErr error
	if initialStock < 0 {
		stockErr = errs.NewValueIsOutOfRangeError("initialStock", initialStock, 0, "unbounded")
	}
	if err := errors.Join(productID.Validate(), stockErr); err != nil {
		return CreateProductCommand{}, err
	}
	return CreateProductCommand{
		productID:    productID,
		name:         name,
		category:     category,
		unit:         unit,
		unitPrice:    unitPrice,
		initialStock: initialStock,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Category() product.Category {
	return c.category
}

func (c CreateProductCommand) Unit() product.Unit {
	return c.unit
}

func (c CreateProductCommand) UnitPrice() float64 {
	return c.unitPrice
}

func (c CreateProductCommand) InitialStock() int {
	return c.initialStock
}

// ProductChanges lists the fields an update may touch. Nil means unchanged.
// StockDelta is added to the current stock.
type ProductChanges struct {
	Name       *string
	Category   *product.Category
	Unit       *product.Unit
	UnitPrice  *float64
	StockDelta *int
	IsActive   *bool
}

type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	changes   ProductChanges

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(productID kernel.UUID, changes ProductChanges) (UpdateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return UpdateProductCommand{}, err
	}
	if changes == (ProductChanges{}) {
		return UpdateProductCommand{}, errs.NewValueIsRequiredError("changes")
	}
	return UpdateProductCommand{
		productID: productID,
		changes:   changes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c UpdateProductCommand) Changes() ProductChanges {
	return c.changes
}

type DeleteProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteProductCommand(productID kernel.UUID) (DeleteProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return DeleteProductCommand{}, err
	}
	return DeleteProductCommand{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

func (c DeleteProductCommand) ProductID() kernel.UUID {
	return c.productID
}
