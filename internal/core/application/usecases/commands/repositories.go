// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, let the domain decide, persist and commit. Handlers
// never log; errors go back to the caller with their kind intact.
package commands

import (
	"context"

	"fleet/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	RegionRepoFactory interface {
		RegionRepository() ports.RegionRepository
	}

	VillageRepoFactory interface {
		VillageRepository() ports.VillageRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// TripUoW covers commands that only touch an existing trip.
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	TripUoWFactory interface {
		Create() TripUoW
	}

	// PlanningUoW covers trip creation: the trip plus every record it references.
	PlanningUoW interface {
		TxManager
		TripRepoFactory
		VehicleRepoFactory
		DriverRepoFactory
		VillageRepoFactory
		ProductRepoFactory
	}

	PlanningUoWFactory interface {
		Create() PlanningUoW
	}

	// ProductUoW covers product administration.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// UoW covers the soft-deletable entities and the reference cascade
	// between them.
	UoW interface {
		TxManager
		RegionRepoFactory
		VillageRepoFactory
		VehicleRepoFactory
		DriverRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
