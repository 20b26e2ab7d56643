package http

import (
	"strconv"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"

	"github.com/labstack/echo/v4"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a Address) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(a.Street, a.City, a.PostalCode, a.Country)
}

type Location struct {
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Address   *Address `json:"address,omitempty"`
}

func (l Location) toDomain() (kernel.Location, error) {
	if l.Address == nil {
		return kernel.NewLocation(l.Longitude, l.Latitude)
	}
	addr, err := l.Address.toDomain()
	if err != nil {
		return kernel.Location{}, err
	}
	return kernel.NewLocationWithAddress(l.Longitude, l.Latitude, addr)
}

func locationPtr(l *Location) (*kernel.Location, error) {
	if l == nil {
		return nil, nil
	}
	loc, err := l.toDomain()
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func uuidPtr(s *string) (*kernel.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type ProductLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type NewDestination struct {
	Location         Location      `json:"location"`
	VillageID        string        `json:"villageId"`
	Products         []ProductLine `json:"products"`
	EstimatedArrival time.Time     `json:"estimatedArrival"`
}

func (d NewDestination) toPlan() (commands.DestinationPlan, error) {
	loc, err := d.Location.toDomain()
	if err != nil {
		return commands.DestinationPlan{}, err
	}
	villageID, err := kernel.UUIDFromString(d.VillageID)
	if err != nil {
		return commands.DestinationPlan{}, err
	}
	lines := make([]trip.ProductLine, 0, len(d.Products))
	for _, p := range d.Products {
		productID, err := kernel.UUIDFromString(p.ProductID)
		if err != nil {
			return commands.DestinationPlan{}, err
		}
		line, err := trip.NewProductLine(productID, p.Quantity)
		if err != nil {
			return commands.DestinationPlan{}, err
		}
		lines = append(lines, line)
	}
	return commands.DestinationPlan{
		Location:         loc,
		VillageID:        villageID,
		Products:         lines,
		EstimatedArrival: d.EstimatedArrival,
	}, nil
}

type NewTrip struct {
	VehicleID      string           `json:"vehicleId"`
	DriverID       string           `json:"driverId"`
	StartLocation  Location         `json:"startLocation"`
	Destinations   []NewDestination `json:"destinations"`
	ScheduledStart time.Time        `json:"scheduledStart"`
	Notes          string           `json:"notes"`
}

func (t NewTrip) toCommand(id kernel.UUID) (commands.CreateTripCommand, error) {
	vehicleID, err := kernel.UUIDFromString(t.VehicleID)
	if err != nil {
		return commands.CreateTripCommand{}, err
	}
	driverID, err := kernel.UUIDFromString(t.DriverID)
	if err != nil {
		return commands.CreateTripCommand{}, err
	}
	start, err := t.StartLocation.toDomain()
	if err != nil {
		return commands.CreateTripCommand{}, err
	}
	plans := make([]commands.DestinationPlan, 0, len(t.Destinations))
	for _, d := range t.Destinations {
		plan, err := d.toPlan()
		if err != nil {
			return commands.CreateTripCommand{}, err
		}
		plans = append(plans, plan)
	}
	return commands.NewCreateTripCommand(id, vehicleID, driverID, start, plans, t.ScheduledStart, t.Notes)
}

type StatusChange struct {
	Status string `json:"status"`
}

type NotesChange struct {
	Notes string `json:"notes"`
}

type NewRegion struct {
	Name        string   `json:"name"`
	BaseAddress Address  `json:"baseAddress"`
	Center      Location `json:"center"`
	RadiusKm    float64  `json:"radiusKm"`
}

type RegionPatch struct {
	Name        *string   `json:"name"`
	BaseAddress *Address  `json:"baseAddress"`
	Center      *Location `json:"center"`
	RadiusKm    *float64  `json:"radiusKm"`
	IsActive    *bool     `json:"isActive"`
}

func (p RegionPatch) toChanges() (commands.RegionChanges, error) {
	changes := commands.RegionChanges{Name: p.Name, RadiusKm: p.RadiusKm, IsActive: p.IsActive}
	if p.BaseAddress != nil {
		addr, err := p.BaseAddress.toDomain()
		if err != nil {
			return changes, err
		}
		changes.BaseAddress = &addr
	}
	center, err := locationPtr(p.Center)
	changes.Center = center
	return changes, err
}

type NewVillage struct {
	Name        string   `json:"name"`
	RegionID    string   `json:"regionId"`
	Inhabitants int      `json:"inhabitants"`
	Coordinates Location `json:"coordinates"`
}

type VillagePatch struct {
	Name        *string   `json:"name"`
	RegionID    *string   `json:"regionId"`
	Inhabitants *int      `json:"inhabitants"`
	Coordinates *Location `json:"coordinates"`
	IsActive    *bool     `json:"isActive"`
}

func (p VillagePatch) toChanges() (commands.VillageChanges, error) {
	changes := commands.VillageChanges{Name: p.Name, Inhabitants: p.Inhabitants, IsActive: p.IsActive}
	regionID, err := uuidPtr(p.RegionID)
	if err != nil {
		return changes, err
	}
	changes.RegionID = regionID
	coords, err := locationPtr(p.Coordinates)
	changes.Coordinates = coords
	return changes, err
}

type Capacity struct {
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
}

type NewVehicle struct {
	RegistrationNumber string   `json:"registrationNumber"`
	Model              string   `json:"model"`
	Capacity           Capacity `json:"capacity"`
}

type Maintenance struct {
	LastService       time.Time `json:"lastService"`
	NextService       time.Time `json:"nextService"`
	ServiceIntervalKm int       `json:"serviceIntervalKm"`
}

type VehiclePatch struct {
	Model           *string      `json:"model"`
	Capacity        *Capacity    `json:"capacity"`
	Status          *string      `json:"status"`
	CurrentLocation *Location    `json:"currentLocation"`
	Maintenance     *Maintenance `json:"maintenance"`
	Notes           *string      `json:"notes"`
	IsActive        *bool        `json:"isActive"`
}

func (p VehiclePatch) toChanges() (commands.VehicleChanges, error) {
	changes := commands.VehicleChanges{Model: p.Model, Notes: p.Notes, IsActive: p.IsActive}
	if p.Capacity != nil {
		changes.Capacity = &vehicle.Capacity{Weight: p.Capacity.Weight, Volume: p.Capacity.Volume}
	}
	if p.Status != nil {
		status, err := vehicle.ParseStatus(*p.Status)
		if err != nil {
			return changes, err
		}
		changes.Status = &status
	}
	if p.Maintenance != nil {
		changes.Maintenance = &vehicle.MaintenanceSchedule{
			LastService:       p.Maintenance.LastService,
			NextService:       p.Maintenance.NextService,
			ServiceIntervalKm: p.Maintenance.ServiceIntervalKm,
		}
	}
	loc, err := locationPtr(p.CurrentLocation)
	changes.CurrentLocation = loc
	return changes, err
}

type NewDriver struct {
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"licenseNumber"`
	LicenseExpiry time.Time `json:"licenseExpiry"`
	VehicleID     *string   `json:"vehicleId"`
	VillageID     *string   `json:"villageId"`
	RegionID      *string   `json:"regionId"`
}

func (d NewDriver) toCommand(id kernel.UUID) (commands.CreateDriverCommand, error) {
	userID, err := kernel.UUIDFromString(d.UserID)
	if err != nil {
		return commands.CreateDriverCommand{}, err
	}
	refs, err := references(d.VehicleID, d.VillageID, d.RegionID)
	if err != nil {
		return commands.CreateDriverCommand{}, err
	}
	return commands.NewCreateDriverCommand(id, userID, d.Name, d.LicenseNumber, d.LicenseExpiry, refs)
}

type DriverPatch struct {
	Name          *string    `json:"name"`
	LicenseNumber *string    `json:"licenseNumber"`
	LicenseExpiry *time.Time `json:"licenseExpiry"`
	Status        *string    `json:"status"`
	VehicleID     *string    `json:"vehicleId"`
	VillageID     *string    `json:"villageId"`
	RegionID      *string    `json:"regionId"`
	IsActive      *bool      `json:"isActive"`
}

func (p DriverPatch) toChanges() (commands.DriverChanges, error) {
	changes := commands.DriverChanges{Name: p.Name, IsActive: p.IsActive}
	if p.LicenseNumber != nil || p.LicenseExpiry != nil {
		if p.LicenseNumber == nil || p.LicenseExpiry == nil {
			return changes, badRequest("licenseNumber and licenseExpiry change together", nil)
		}
		changes.License = &commands.DriverLicense{Number: *p.LicenseNumber, Expiry: *p.LicenseExpiry}
	}
	if p.Status != nil {
		status, err := driver.ParseStatus(*p.Status)
		if err != nil {
			return changes, err
		}
		changes.Status = &status
	}
	refs, err := references(p.VehicleID, p.VillageID, p.RegionID)
	changes.VehicleID, changes.VillageID, changes.RegionID = refs.VehicleID, refs.VillageID, refs.RegionID
	return changes, err
}

func references(vehicleID, villageID, regionID *string) (driver.References, error) {
	var refs driver.References
	var err error
	if refs.VehicleID, err = uuidPtr(vehicleID); err != nil {
		return refs, err
	}
	if refs.VillageID, err = uuidPtr(villageID); err != nil {
		return refs, err
	}
	refs.RegionID, err = uuidPtr(regionID)
	return refs, err
}

type NewProduct struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	InitialStock int     `json:"initialStock"`
}

func (p NewProduct) toCommand(id kernel.UUID) (commands.CreateProductCommand, error) {
	category, err := product.ParseCategory(p.Category)
	if err != nil {
		return commands.CreateProductCommand{}, err
	}
	unit, err := product.ParseUnit(p.Unit)
	if err != nil {
		return commands.CreateProductCommand{}, err
	}
	return commands.NewCreateProductCommand(id, p.Name, category, unit, p.UnitPrice, p.InitialStock)
}

type ProductPatch struct {
	Name       *string  `json:"name"`
	Category   *string  `json:"category"`
	Unit       *string  `json:"unit"`
	UnitPrice  *float64 `json:"unitPrice"`
	StockDelta *int     `json:"stockDelta"`
	IsActive   *bool    `json:"isActive"`
}

func (p ProductPatch) toChanges() (commands.ProductChanges, error) {
	changes := commands.ProductChanges{
		Name:       p.Name,
		UnitPrice:  p.UnitPrice,
		StockDelta: p.StockDelta,
		IsActive:   p.IsActive,
	}
	if p.Category != nil {
		category, err := product.ParseCategory(*p.Category)
		if err != nil {
			return changes, err
		}
		changes.Category = &category
	}
	if p.Unit != nil {
		unit, err := product.ParseUnit(*p.Unit)
		if err != nil {
			return changes, err
		}
		changes.Unit = &unit
	}
	return changes, nil
}

// Created is the body of a 201 response.
type Created struct {
	ID string `json:"id"`
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, badRequest("invalid "+name, err)
	}
	return id, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid "+name, err)
	}
	return v, nil
}

func queryTime(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, badRequest(name+" is required", nil)
	}
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, badRequest("invalid "+name, err)
	}
	return v, nil
}

func bind(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return badRequest("invalid request body", err)
	}
	return nil
}
