package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained from it after Begin share the transaction; Commit
// makes every write visible at once and Rollback discards all of them.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then runs the post-commit
	// hooks for the aggregates touched in it.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	TripRepository() TripRepository
	RegionRepository() RegionRepository
	VillageRepository() VillageRepository
	VehicleRepository() VehicleRepository
	DriverRepository() DriverRepository
	ProductRepository() ProductRepository
}
