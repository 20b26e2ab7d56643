package http

import (
	"context"
	"net/http"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
)

// CommandHandler is satisfied by every command handler in commands.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by every query handler in queries.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists the use cases the server exposes.
type Handlers struct {
	CreateTrip              CommandHandler[commands.CreateTripCommand]
	ChangeTripStatus        CommandHandler[commands.ChangeTripStatusCommand]
	UpdateDestinationStatus CommandHandler[commands.UpdateDestinationStatusCommand]
	UpdateTripNotes         CommandHandler[commands.UpdateTripNotesCommand]
	DeleteTrip              CommandHandler[commands.DeleteTripCommand]

	CreateRegion  CommandHandler[commands.CreateRegionCommand]
	UpdateRegion  CommandHandler[commands.UpdateRegionCommand]
	CreateVillage CommandHandler[commands.CreateVillageCommand]
	UpdateVillage CommandHandler[commands.UpdateVillageCommand]
	CreateVehicle CommandHandler[commands.CreateVehicleCommand]
	UpdateVehicle CommandHandler[commands.UpdateVehicleCommand]
	CreateDriver  CommandHandler[commands.CreateDriverCommand]
	UpdateDriver  CommandHandler[commands.UpdateDriverCommand]
	CreateProduct CommandHandler[commands.CreateProductCommand]
	UpdateProduct CommandHandler[commands.UpdateProductCommand]
	DeleteProduct CommandHandler[commands.DeleteProductCommand]
	SoftDelete    CommandHandler[commands.SoftDeleteEntityCommand]
	Restore       CommandHandler[commands.RestoreEntityCommand]

	GetTrip           QueryHandler[queries.GetTripQuery, queries.TripView]
	ListTrips         QueryHandler[queries.ListTripsQuery, queries.PageResult[queries.TripView]]
	GetOverdueTrips   QueryHandler[queries.GetOverdueTripsQuery, []queries.TripView]
	CheckAvailability QueryHandler[queries.CheckAvailabilityQuery, queries.CheckAvailabilityResponse]

	GetRegion     QueryHandler[queries.GetEntityQuery, queries.RegionView]
	ListRegions   QueryHandler[queries.ListEntitiesQuery[queries.RegionFilter], queries.PageResult[queries.RegionView]]
	GetVillage    QueryHandler[queries.GetEntityQuery, queries.VillageView]
	ListVillages  QueryHandler[queries.ListEntitiesQuery[queries.VillageFilter], queries.PageResult[queries.VillageView]]
	GetVehicle    QueryHandler[queries.GetEntityQuery, queries.VehicleView]
	ListVehicles  QueryHandler[queries.ListEntitiesQuery[queries.VehicleFilter], queries.PageResult[queries.VehicleView]]
	GetDriver     QueryHandler[queries.GetEntityQuery, queries.DriverView]
	ListDrivers   QueryHandler[queries.ListEntitiesQuery[queries.DriverFilter], queries.PageResult[queries.DriverView]]
	GetProduct    QueryHandler[queries.GetEntityQuery, queries.ProductView]
	ListProducts  QueryHandler[queries.ListEntitiesQuery[queries.ProductFilter], queries.PageResult[queries.ProductView]]
}

// Server maps HTTP requests onto the application use cases. It holds no
// state of its own.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// NewEcho builds the echo instance with the fleet routes, request logging
// and error rendering wired to log.
func NewEcho(server *Server, log *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLevel(log.GetLevel()))
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Debug("request")
			return nil
		},
	}))

	server.Register(e)
	return e
}

func echoLevel(level logrus.Level) gommonlog.Lvl {
	switch {
	case level >= logrus.DebugLevel:
		return gommonlog.DEBUG
	case level == logrus.InfoLevel:
		return gommonlog.INFO
	case level == logrus.WarnLevel:
		return gommonlog.WARN
	default:
		return gommonlog.ERROR
	}
}

// Register mounts /health and every /api/v1 route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/trips", s.CreateTrip)
	api.GET("/trips", s.ListTrips)
	api.GET("/trips/overdue", s.GetOverdueTrips)
	api.GET("/trips/:id", s.GetTrip)
	api.PATCH("/trips/:id/status", s.ChangeTripStatus)
	api.PATCH("/trips/:id/destinations/:destinationId/status", s.UpdateDestinationStatus)
	api.PATCH("/trips/:id/notes", s.UpdateTripNotes)
	api.DELETE("/trips/:id", s.DeleteTrip)
	api.GET("/availability", s.CheckAvailability)

	api.POST("/regions", s.CreateRegion)
	api.GET("/regions", listEntities(s.h.ListRegions, regionFilter))
	api.GET("/regions/:id", getEntity(s.h.GetRegion))
	api.PATCH("/regions/:id", s.UpdateRegion)

	api.POST("/villages", s.CreateVillage)
	api.GET("/villages", listEntities(s.h.ListVillages, villageFilter))
	api.GET("/villages/:id", getEntity(s.h.GetVillage))
	api.PATCH("/villages/:id", s.UpdateVillage)

	api.POST("/vehicles", s.CreateVehicle)
	api.GET("/vehicles", listEntities(s.h.ListVehicles, vehicleFilter))
	api.GET("/vehicles/:id", getEntity(s.h.GetVehicle))
	api.PATCH("/vehicles/:id", s.UpdateVehicle)

	api.POST("/drivers", s.CreateDriver)
	api.GET("/drivers", listEntities(s.h.ListDrivers, driverFilter))
	api.GET("/drivers/:id", getEntity(s.h.GetDriver))
	api.PATCH("/drivers/:id", s.UpdateDriver)

	for _, kind := range []string{"regions", "villages", "vehicles", "drivers"} {
		api.DELETE("/"+kind+"/:id", s.SoftDeleteEntity(kind))
		api.POST("/"+kind+"/:id/restore", s.RestoreEntity(kind))
	}

	api.POST("/products", s.CreateProduct)
	api.GET("/products", listEntities(s.h.ListProducts, productFilter))
	api.GET("/products/:id", getEntity(s.h.GetProduct))
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
