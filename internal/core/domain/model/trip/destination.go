package trip

import (
	"errors"
	"fmt"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrDestinationIsNotConstructed = errors.New("destination must be created via NewDestination or RestoreDestination")

// ProductLine is a product and the quantity delivered to one destination.
type ProductLine struct {
	productID kernel.UUID
	quantity  int
}

// NewProductLine requires a valid product id and a quantity of at least 1.
func NewProductLine(productID kernel.UUID, quantity int) (ProductLine, error) {
	if err := productID.Validate(); err != nil {
		return ProductLine{}, err
	}
	if quantity < 1 {
		return ProductLine{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return ProductLine{productID: productID, quantity: quantity}, nil
}

func (p ProductLine) ProductID() kernel.UUID {
	return p.productID
}

func (p ProductLine) Quantity() int {
	return p.quantity
}

// Destination is a stop inside a trip. Its id is only meaningful together
// with the owning trip's id.
type Destination struct {
	id               kernel.UUID
	location         kernel.Location
	villageID        kernel.UUID
	products         []ProductLine
	estimatedArrival time.Time
	actualArrival    *time.Time
	status           DestinationStatus
	guard            guard.ConstructorGuard
}

// NewDestination creates a PENDING destination.
func NewDestination(
	id kernel.UUID,
	location kernel.Location,
	villageID kernel.UUID,
	products []ProductLine,
	estimatedArrival time.Time,
) (*Destination, error) {
	return RestoreDestination(id, location, villageID, products, estimatedArrival, nil, Pending)
}

// RestoreDestination rebuilds a destination from storage.
func RestoreDestination(
	id kernel.UUID,
	location kernel.Location,
	villageID kernel.UUID,
	products []ProductLine,
	estimatedArrival time.Time,
	actualArrival *time.Time,
	status DestinationStatus,
) (*Destination, error) {
	d := &Destination{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setLocation(location),
		d.setVillageID(villageID),
		d.setProducts(products),
		d.setEstimatedArrival(estimatedArrival),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}
	if actualArrival != nil {
		at := actualArrival.UTC()
		d.actualArrival = &at
	}

	return d, nil
}

func (d *Destination) Validate() error {
	if d == nil {
		return ErrDestinationIsNotConstructed
	}
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

func (d *Destination) ID() kernel.UUID {
	return d.id
}

func (d *Destination) Location() kernel.Location {
	return d.location
}

func (d *Destination) VillageID() kernel.UUID {
	return d.villageID
}

// Products returns a copy of the product lines.
func (d *Destination) Products() []ProductLine {
	out := make([]ProductLine, len(d.products))
	copy(out, d.products)
	return out
}

func (d *Destination) EstimatedArrival() time.Time {
	return d.estimatedArrival
}

func (d *Destination) ActualArrival() *time.Time {
	if d.actualArrival == nil {
		return nil
	}
	at := *d.actualArrival
	return &at
}

func (d *Destination) Status() DestinationStatus {
	return d.status
}

// changeStatus applies the destination table. The first move out of
// PENDING stamps actualArrival; later moves leave it alone.
func (d *Destination) changeStatus(next DestinationStatus, now time.Time) error {
	newStatus, err := d.status.TransitionTo(next)
	if err != nil {
		return err
	}
	if d.status == Pending && d.actualArrival == nil {
		at := now.UTC()
		d.actualArrival = &at
	}
	d.status = newStatus
	return nil
}

func (d *Destination) clone() *Destination {
	c := *d
	c.products = d.Products()
	c.actualArrival = d.ActualArrival()
	return &c
}

func (d *Destination) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Destination) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

func (d *Destination) setVillageID(villageID kernel.UUID) error {
	if err := villageID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("village", err)
	}
	d.villageID = villageID
	return nil
}

func (d *Destination) setProducts(products []ProductLine) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("products", errors.New("at least one product line is required"))
	}
	for i, p := range products {
		if err := p.productID.Validate(); err != nil || p.quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause("products", fmt.Errorf("line %d is not constructed", i))
		}
	}
	d.products = make([]ProductLine, len(products))
	copy(d.products, products)
	return nil
}

func (d *Destination) setEstimatedArrival(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("estimatedArrival")
	}
	d.estimatedArrival = at.UTC()
	return nil
}

func (d *Destination) setStatus(status DestinationStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
