// Package postgres provides the gorm-backed Unit of Work and the helpers to
// open and migrate the fleet database.
//
// A unit of work owns at most one transaction. Repositories obtained from it
// after Begin run inside that transaction:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.TripRepository().Update(ctx, t); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a harmless no-op that returns
// gorm.ErrInvalidTransaction, which is why the deferred call ignores it.
//
// Trips written through the trip repository are tracked. Once Commit
// succeeds they are handed to the registered ports.TripChangeNotifier
// hooks. Hooks are best-effort: failures are logged and never reported to
// the caller, whose transaction is already durable.
package postgres

import (
	"context"

	"fleet/internal/adapters/out/postgres/driverrepo"
	"fleet/internal/adapters/out/postgres/productrepo"
	"fleet/internal/adapters/out/postgres/regionrepo"
	"fleet/internal/adapters/out/postgres/triprepo"
	"fleet/internal/adapters/out/postgres/vehiclerepo"
	"fleet/internal/adapters/out/postgres/villagerepo"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands out a fresh unit of work per command so that
// concurrent commands never share a transaction.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	log       logrus.FieldLogger
	notifiers []ports.TripChangeNotifier
}

func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	log logrus.FieldLogger,
	notifiers ...ports.TripChangeNotifier,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		log:       log.WithField("component", "unit_of_work"),
		notifiers: notifiers,
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		log:               f.log,
		notifiers:         f.notifiers,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	log               logrus.FieldLogger
	notifiers         []ports.TripChangeNotifier
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit makes every write visible and then notifies the trip hooks.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.notify(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) TripRepository() ports.TripRepository {
	return triprepo.NewGormTripRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RegionRepository() ports.RegionRepository {
	return regionrepo.NewGormRegionRepository(uow.conn())
}

func (uow *GormUnitOfWork) VillageRepository() ports.VillageRepository {
	return villagerepo.NewGormVillageRepository(uow.conn())
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return vehiclerepo.NewGormVehicleRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn is the transaction when one is open, the plain handle otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) notify(ctx context.Context) {
	changes := uow.tripChanges()
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if len(changes) == 0 {
		return
	}

	for _, n := range uow.notifiers {
		if err := n.TripsChanged(ctx, changes); err != nil {
			uow.log.WithError(err).
				WithField("trips", len(changes)).
				Warn("post-commit trip notification failed")
		}
	}
}

// tripChanges folds the tracked trips into one change per trip, keeping
// the last write.
func (uow *GormUnitOfWork) tripChanges() []ports.TripChange {
	index := make(map[kernel.UUID]int)
	changes := make([]ports.TripChange, 0)
	for _, tracked := range uow.trackedAggregates {
		t, ok := tracked.Aggregate.(*trip.Trip)
		if !ok {
			continue
		}
		change := ports.TripChange{TripID: tracked.ID, Trip: t}
		if i, seen := index[tracked.ID]; seen {
			changes[i] = change
			continue
		}
		index[tracked.ID] = len(changes)
		changes = append(changes, change)
	}
	return changes
}
