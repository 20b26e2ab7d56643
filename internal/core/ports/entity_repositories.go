package ports

import (
	"context"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/region"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/core/domain/model/village"
)

// Soft-deletable repositories share one convention: Get hides deleted
// records (NotFound), GetIncludingDeleted does not. Update writes the
// deletion marker along with every other field.

type RegionRepository interface {
	Add(ctx context.Context, aggregate *region.Region) error
	Update(ctx context.Context, aggregate *region.Region) error
	Get(ctx context.Context, id kernel.UUID) (*region.Region, error)
	GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*region.Region, error)
}

type VillageRepository interface {
	Add(ctx context.Context, aggregate *village.Village) error
	Update(ctx context.Context, aggregate *village.Village) error
	Get(ctx context.Context, id kernel.UUID) (*village.Village, error)
	GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*village.Village, error)

	// ListByRegion returns every village, deleted or not, that references the region.
	ListByRegion(ctx context.Context, regionID kernel.UUID) ([]*village.Village, error)
}

type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
	GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}

type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
	GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// ExistsByUserID checks every driver, deleted ones included.
	ExistsByUserID(ctx context.Context, userID kernel.UUID) (bool, error)

	// The List* lookups return deleted and live drivers alike.
	ListByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*driver.Driver, error)
	ListByVillage(ctx context.Context, villageID kernel.UUID) ([]*driver.Driver, error)
	ListByRegion(ctx context.Context, regionID kernel.UUID) ([]*driver.Driver, error)
}

type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error
	Update(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
	Delete(ctx context.Context, id kernel.UUID) error
}
