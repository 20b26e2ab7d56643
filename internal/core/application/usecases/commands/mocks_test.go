package commands_test

import (
	"context"
	"testing"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/region"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/core/domain/model/village"
	"fleet/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, t *trip.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*trip.Trip)
	return t, args.Error(1)
}

func (m *MockTripRepository) ListActiveByVehicle(ctx context.Context, id kernel.UUID) ([]*trip.Trip, error) {
	args := m.Called(ctx, id)
	trips, _ := args.Get(0).([]*trip.Trip)
	return trips, args.Error(1)
}

func (m *MockTripRepository) ListActiveByDriver(ctx context.Context, id kernel.UUID) ([]*trip.Trip, error) {
	args := m.Called(ctx, id)
	trips, _ := args.Get(0).([]*trip.Trip)
	return trips, args.Error(1)
}

type MockRegionRepository struct{ mock.Mock }

func (m *MockRegionRepository) Add(ctx context.Context, r *region.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegionRepository) Update(ctx context.Context, r *region.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegionRepository) Get(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*region.Region)
	return r, args.Error(1)
}

func (m *MockRegionRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*region.Region)
	return r, args.Error(1)
}

type MockVillageRepository struct{ mock.Mock }

func (m *MockVillageRepository) Add(ctx context.Context, v *village.Village) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVillageRepository) Update(ctx context.Context, v *village.Village) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVillageRepository) Get(ctx context.Context, id kernel.UUID) (*village.Village, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*village.Village)
	return v, args.Error(1)
}

func (m *MockVillageRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*village.Village, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*village.Village)
	return v, args.Error(1)
}

func (m *MockVillageRepository) ListByRegion(ctx context.Context, id kernel.UUID) ([]*village.Village, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).([]*village.Village)
	return v, args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

func (m *MockVehicleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*vehicle.Vehicle)
	return v, args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverRepository) ExistsByUserID(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDriverRepository) ListByVehicle(ctx context.Context, id kernel.UUID) ([]*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).([]*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverRepository) ListByVillage(ctx context.Context, id kernel.UUID) ([]*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).([]*driver.Driver)
	return d, args.Error(1)
}

func (m *MockDriverRepository) ListByRegion(ctx context.Context, id kernel.UUID) ([]*driver.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).([]*driver.Driver)
	return d, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) TripRepository() ports.TripRepository {
	return m.Called().Get(0).(ports.TripRepository)
}

func (m *MockUoW) RegionRepository() ports.RegionRepository {
	return m.Called().Get(0).(ports.RegionRepository)
}

func (m *MockUoW) VillageRepository() ports.VillageRepository {
	return m.Called().Get(0).(ports.VillageRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	return m.Called().Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	return m.Called().Get(0).(ports.DriverRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

type MockTripUoWFactory struct{ uow *MockUoW }

func (f MockTripUoWFactory) Create() commands.TripUoW { return f.uow }

type MockPlanningUoWFactory struct{ uow *MockUoW }

func (f MockPlanningUoWFactory) Create() commands.PlanningUoW { return f.uow }

type MockProductUoWFactory struct{ uow *MockUoW }

func (f MockProductUoWFactory) Create() commands.ProductUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

// repos bundles one mock per repository, all served by a single MockUoW.
type repos struct {
	uow      *MockUoW
	trips    *MockTripRepository
	regions  *MockRegionRepository
	villages *MockVillageRepository
	vehicles *MockVehicleRepository
	drivers  *MockDriverRepository
	products *MockProductRepository
}

func newRepos() repos {
	r := repos{
		uow:      new(MockUoW),
		trips:    new(MockTripRepository),
		regions:  new(MockRegionRepository),
		villages: new(MockVillageRepository),
		vehicles: new(MockVehicleRepository),
		drivers:  new(MockDriverRepository),
		products: new(MockProductRepository),
	}
	r.uow.On("TripRepository").Return(r.trips).Maybe()
	r.uow.On("RegionRepository").Return(r.regions).Maybe()
	r.uow.On("VillageRepository").Return(r.villages).Maybe()
	r.uow.On("VehicleRepository").Return(r.vehicles).Maybe()
	r.uow.On("DriverRepository").Return(r.drivers).Maybe()
	r.uow.On("ProductRepository").Return(r.products).Maybe()
	return r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.trips.AssertExpectations(t)
	r.regions.AssertExpectations(t)
	r.villages.AssertExpectations(t)
	r.vehicles.AssertExpectations(t)
	r.drivers.AssertExpectations(t)
	r.products.AssertExpectations(t)
}

var start = time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

func mustLocation(t *testing.T, lon, lat float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lon, lat)
	require.NoError(t, err)
	return loc
}

func mustTrip(t *testing.T, vehicleID, driverID kernel.UUID, scheduledStart time.Time, eta time.Time) *trip.Trip {
	t.Helper()
	line, err := trip.NewProductLine(kernel.NewUUID(), 2)
	require.NoError(t, err)
	d, err := trip.NewDestination(kernel.NewUUID(), mustLocation(t, 13.5, 52.5), kernel.NewUUID(),
		[]trip.ProductLine{line}, eta)
	require.NoError(t, err)
	tr, err := trip.NewTrip(kernel.NewUUID(), vehicleID, driverID, mustLocation(t, 13.4, 52.5),
		[]*trip.Destination{d}, scheduledStart, "", scheduledStart.Add(-time.Hour))
	require.NoError(t, err)
	return tr
}

func mustVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "b-ab 123", "Sprinter", vehicle.Capacity{Weight: 1200, Volume: 10})
	require.NoError(t, err)
	return v
}

func mustDriver(t *testing.T, refs driver.References) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Jan Becker", "b072rrE25",
		start.AddDate(2, 0, 0), refs)
	require.NoError(t, err)
	return d
}

func mustRegion(t *testing.T) *region.Region {
	t.Helper()
	addr, err := kernel.NewAddress("Hauptstr. 1", "Berlin", "10115", "")
	require.NoError(t, err)
	r, err := region.NewRegion(kernel.NewUUID(), "Brandenburg Nord", addr, mustLocation(t, 13.4, 52.5), 40)
	require.NoError(t, err)
	return r
}

func mustVillage(t *testing.T, regionID kernel.UUID) *village.Village {
	t.Helper()
	v, err := village.NewVillage(kernel.NewUUID(), "Liebenwalde", regionID, 4300, mustLocation(t, 13.39, 52.87))
	require.NoError(t, err)
	return v
}

func mustProduct(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Roggenbrot", product.Bread, product.Piece, 3.2)
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T {
	return &v
}
