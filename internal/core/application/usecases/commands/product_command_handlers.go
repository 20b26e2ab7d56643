package commands

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/product"
)

// CreateProductCommandHandler adds a product. Product names are unique; a
// duplicate surfaces as Conflict from the repository.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := product.RestoreProduct(cmd.ProductID(), cmd.Name(), cmd.Category(), cmd.Unit(),
		cmd.UnitPrice(), cmd.InitialStock(), true)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewUpdateProductCommandHandler(uowFactory ProductUoWFactory) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if err = applyProductChanges(p, cmd.Changes()); err != nil {
		return err
	}

	if err = uow.ProductRepository().Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyProductChanges(p *product.Product, c ProductChanges) error {
	var errList []error
	if c.Name != nil {
		errList = append(errList, p.Rename(*c.Name))
	}
	if c.Category != nil {
		errList = append(errList, p.SetCategory(*c.Category))
	}
	if c.Unit != nil {
		errList = append(errList, p.SetUnit(*c.Unit))
	}
	if c.UnitPrice != nil {
		errList = append(errList, p.SetPrice(*c.UnitPrice))
	}
	if c.StockDelta != nil {
		errList = append(errList, p.AdjustStock(*c.StockDelta))
	}
	if c.IsActive != nil {
		p.SetActive(*c.IsActive)
	}
	return errors.Join(errList...)
}

// DeleteProductCommandHandler removes a product for good. Trips keep the
// product id in their destinations as a historical value.
type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewDeleteProductCommandHandler(uowFactory ProductUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ProductRepository().Delete(ctx, cmd.ProductID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
