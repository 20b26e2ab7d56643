package commands_test

import (
	"testing"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRegionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	addr, err := kernel.NewAddress("Hauptstr. 1", "Berlin", "10115", "")
	require.NoError(t, err)
	cmd, err := commands.NewCreateRegionCommand(kernel.NewUUID(), "Uckermark", addr, mustLocation(t, 13.8, 53.1), 25)
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.regions.On("Add", mock.Anything, mock.AnythingOfType("*region.Region")).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateRegionCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
}

func TestUpdateRegionCommandHandler_Handle_AppliesAllowListedFields(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	reg := mustRegion(t)
	cmd, err := commands.NewUpdateRegionCommand(reg.ID(), commands.RegionChanges{
		Name:     ptr("Barnim"),
		RadiusKm: ptr(12.5),
		IsActive: ptr(false),
	})
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.regions.On("Get", mock.Anything, reg.ID()).Return(reg, nil).Once(),
		r.regions.On("Update", mock.Anything, reg).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdateRegionCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
	assert.Equal(t, "Barnim", reg.Name())
	assert.InDelta(t, 12.5, reg.RadiusKm(), 1e-9)
	assert.False(t, reg.IsActive())
}

func TestNewUpdateRegionCommand_NoChanges(t *testing.T) {
	_, err := commands.NewUpdateRegionCommand(kernel.NewUUID(), commands.RegionChanges{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateVillageCommandHandler_Handle_UnknownRegion(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	regionID := kernel.NewUUID()
	cmd, err := commands.NewCreateVillageCommand(kernel.NewUUID(), "Zehdenick", regionID, 13000,
		mustLocation(t, 13.33, 52.98))
	require.NoError(t, err)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.regions.On("Get", mock.Anything, regionID).Return(nil, errs.NewObjectNotFoundError("region", regionID)).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateVillageCommandHandler(MockUoWFactory{r.uow})
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrInvalidReference)
	r.villages.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestUpdateVillageCommandHandler_Handle_ReassignsRegion(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	vil := mustVillage(t, kernel.NewUUID())
	reg := mustRegion(t)
	cmd, err := commands.NewUpdateVillageCommand(vil.ID(), commands.VillageChanges{
		RegionID:    ptr(reg.ID()),
		Inhabitants: ptr(4500),
	})
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.villages.On("Get", mock.Anything, vil.ID()).Return(vil, nil).Once(),
		r.regions.On("Get", mock.Anything, reg.ID()).Return(reg, nil).Once(),
		r.villages.On("Update", mock.Anything, vil).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdateVillageCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
	require.NotNil(t, vil.RegionID())
	assert.Equal(t, reg.ID(), *vil.RegionID())
	assert.Equal(t, 4500, vil.Inhabitants())
}

func TestCreateVehicleCommandHandler_Handle_DuplicateRegistration(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	cmd, err := commands.NewCreateVehicleCommand(kernel.NewUUID(), "B-AB 123", "Crafter",
		vehicle.Capacity{Weight: 900, Volume: 8})
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.vehicles.On("Add", mock.Anything, mock.AnythingOfType("*vehicle.Vehicle")).
			Return(errs.NewConflictError("vehicle", "B-AB 123", "registration number is taken")).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateVehicleCommandHandler(MockUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
	r.assertExpectations(t)
}

func TestUpdateVehicleCommandHandler_Handle_InvalidCapacity(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	veh := mustVehicle(t)
	cmd, err := commands.NewUpdateVehicleCommand(veh.ID(), commands.VehicleChanges{
		Capacity: &vehicle.Capacity{Weight: -1},
		Status:   ptr(vehicle.Maintenance),
	})
	require.NoError(t, err)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.vehicles.On("Get", mock.Anything, veh.ID()).Return(veh, nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateVehicleCommandHandler(MockUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrValueIsOutOfRange)
	r.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateDriverCommandHandler_Handle_UserAlreadyDriver(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), userID, "Mia Schulz", "K-77",
		start.AddDate(1, 0, 0), driver.References{})
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.drivers.On("ExistsByUserID", mock.Anything, userID).Return(true, nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateDriverCommandHandler(MockUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
	r.drivers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateDriverCommandHandler_Handle_ChecksReferences(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	veh := mustVehicle(t)
	missingVillage := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(kernel.NewUUID(), kernel.NewUUID(), "Mia Schulz", "K-77",
		start.AddDate(1, 0, 0), driver.References{VehicleID: ptr(veh.ID()), VillageID: &missingVillage})
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.drivers.On("ExistsByUserID", mock.Anything, cmd.UserID()).Return(false, nil).Once(),
		r.vehicles.On("Get", mock.Anything, veh.ID()).Return(veh, nil).Once(),
		r.villages.On("Get", mock.Anything, missingVillage).
			Return(nil, errs.NewObjectNotFoundError("village", missingVillage)).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateDriverCommandHandler(MockUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidReference)
	r.assertExpectations(t)
}

func TestUpdateDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	drv := mustDriver(t, driver.References{})
	veh := mustVehicle(t)
	cmd, err := commands.NewUpdateDriverCommand(drv.ID(), commands.DriverChanges{
		VehicleID: ptr(veh.ID()),
		Status:    ptr(driver.OnDuty),
	})
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.drivers.On("Get", mock.Anything, drv.ID()).Return(drv, nil).Once(),
		r.vehicles.On("Get", mock.Anything, veh.ID()).Return(veh, nil).Once(),
		r.drivers.On("Update", mock.Anything, drv).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewUpdateDriverCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
	assert.True(t, drv.IsOnDuty())
	require.NotNil(t, drv.VehicleID())
	assert.Equal(t, veh.ID(), *drv.VehicleID())
}

func TestUpdateProductCommandHandler_Handle_StockNeverNegative(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	p := mustProduct(t)
	cmd, err := commands.NewUpdateProductCommand(p.ID(), commands.ProductChanges{StockDelta: ptr(-1)})
	require.NoError(t, err)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateProductCommandHandler(MockProductUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidOperation)
	assert.Equal(t, 0, p.CurrentStock())
	r.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateProductCommandHandler_Handle_WithInitialStock(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), "Streuselkuchen", product.Pastry,
		product.Piece, 2.1, 40)
	require.NoError(t, err)

	var added *product.Product
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.products.On("Add", mock.Anything, mock.AnythingOfType("*product.Product")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*product.Product) }).
			Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateProductCommandHandler(MockProductUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, added)
	assert.Equal(t, 40, added.CurrentStock())
	assert.True(t, added.IsActive())
}

func TestDeleteProductCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteProductCommand(id)
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.products.On("Delete", mock.Anything, id).Return(errs.NewObjectNotFoundError("product", id)).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDeleteProductCommandHandler(MockProductUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	r.assertExpectations(t)
}
