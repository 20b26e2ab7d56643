package cmd

import (
	fleethttp "fleet/internal/adapters/in/http"
	"fleet/internal/adapters/out/postgres"
	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/services"
	"fleet/internal/core/ports"
	"fleet/internal/jobs"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	tripCache  ports.TripCache
	logger     *logrus.Logger
}

// NewCompositionRoot wires the use cases over gormDB. tripCache may be nil;
// every notifier is told about committed trip changes.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	tripCache ports.TripCache,
	logger *logrus.Logger,
	notifiers ...ports.TripChangeNotifier,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger, notifiers...),
		tripCache:  tripCache,
		logger:     logger,
	}
}

func (c *CompositionRoot) tripUoWFactory() commands.TripUoWFactory {
	return FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) planningUoWFactory() commands.PlanningUoWFactory {
	return FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) entityUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	return commands.NewCreateTripCommandHandler(c.planningUoWFactory(), c.config.EnforceAvailability)
}

func (c *CompositionRoot) CreateChangeTripStatusCommandHandler() commands.ChangeTripStatusCommandHandler {
	return commands.NewChangeTripStatusCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDestinationStatusCommandHandler() commands.UpdateDestinationStatusCommandHandler {
	return commands.NewUpdateDestinationStatusCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateUpdateTripNotesCommandHandler() commands.UpdateTripNotesCommandHandler {
	return commands.NewUpdateTripNotesCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateDeleteTripCommandHandler() commands.DeleteTripCommandHandler {
	return commands.NewDeleteTripCommandHandler(c.tripUoWFactory())
}

func (c *CompositionRoot) CreateGetTripQueryHandler() queries.GetTripQueryHandler {
	return queries.NewGetTripQueryHandler(c.gormDB, c.tripCache)
}

func (c *CompositionRoot) CreateGetOverdueTripsQueryHandler() queries.GetOverdueTripsQueryHandler {
	return queries.NewGetOverdueTripsQueryHandler(c.gormDB)
}

// CreateCheckAvailabilityQueryHandler reads active trips outside any
// transaction; the answer is advisory.
func (c *CompositionRoot) CreateCheckAvailabilityQueryHandler() queries.CheckAvailabilityQueryHandler {
	return queries.NewCheckAvailabilityQueryHandler(
		c.uowFactory.Create().TripRepository(),
		services.NewAvailabilityChecker(),
	)
}

// HTTPHandlers collects every use case exposed over HTTP.
func (c *CompositionRoot) HTTPHandlers() fleethttp.Handlers {
	entities := c.entityUoWFactory()
	products := c.productUoWFactory()

	return fleethttp.Handlers{
		CreateTrip:              c.CreateCreateTripCommandHandler(),
		ChangeTripStatus:        c.CreateChangeTripStatusCommandHandler(),
		UpdateDestinationStatus: c.CreateUpdateDestinationStatusCommandHandler(),
		UpdateTripNotes:         c.CreateUpdateTripNotesCommandHandler(),
		DeleteTrip:              c.CreateDeleteTripCommandHandler(),

		CreateRegion:  commands.NewCreateRegionCommandHandler(entities),
		UpdateRegion:  commands.NewUpdateRegionCommandHandler(entities),
		CreateVillage: commands.NewCreateVillageCommandHandler(entities),
		UpdateVillage: commands.NewUpdateVillageCommandHandler(entities),
		CreateVehicle: commands.NewCreateVehicleCommandHandler(entities),
		UpdateVehicle: commands.NewUpdateVehicleCommandHandler(entities),
		CreateDriver:  commands.NewCreateDriverCommandHandler(entities),
		UpdateDriver:  commands.NewUpdateDriverCommandHandler(entities),
		SoftDelete:    commands.NewSoftDeleteEntityCommandHandler(entities),
		Restore:       commands.NewRestoreEntityCommandHandler(entities),
		CreateProduct: commands.NewCreateProductCommandHandler(products),
		UpdateProduct: commands.NewUpdateProductCommandHandler(products),
		DeleteProduct: commands.NewDeleteProductCommandHandler(products),

		GetTrip:           c.CreateGetTripQueryHandler(),
		ListTrips:         queries.NewListTripsQueryHandler(c.gormDB),
		GetOverdueTrips:   c.CreateGetOverdueTripsQueryHandler(),
		CheckAvailability: c.CreateCheckAvailabilityQueryHandler(),

		GetRegion:    queries.NewGetRegionQueryHandler(c.gormDB),
		ListRegions:  queries.NewListRegionsQueryHandler(c.gormDB),
		GetVillage:   queries.NewGetVillageQueryHandler(c.gormDB),
		ListVillages: queries.NewListVillagesQueryHandler(c.gormDB),
		GetVehicle:   queries.NewGetVehicleQueryHandler(c.gormDB),
		ListVehicles: queries.NewListVehiclesQueryHandler(c.gormDB),
		GetDriver:    queries.NewGetDriverQueryHandler(c.gormDB),
		ListDrivers:  queries.NewListDriversQueryHandler(c.gormDB),
		GetProduct:   queries.NewGetProductQueryHandler(c.gormDB),
		ListProducts: queries.NewListProductsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOverdueTripsJob(
			c.CreateGetOverdueTripsQueryHandler(),
			c.config.OverdueTripsSchedule,
			c.config.OverdueTripsGrace,
			c.logger,
		),
	)
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
