package commands_test

import (
	"errors"
	"testing"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/village"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseEntityType(t *testing.T) {
	tests := map[string]commands.EntityType{
		"region":   commands.RegionEntity,
		"Villages": commands.VillageEntity,
		" VEHICLE": commands.VehicleEntity,
		"drivers":  commands.DriverEntity,
	}
	for in, want := range tests {
		got, err := commands.ParseEntityType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := commands.ParseEntityType("product")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSoftDeleteEntityCommandHandler_Region_ClearsReferences(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	reg := mustRegion(t)
	vil := mustVillage(t, reg.ID())
	otherVil := mustVillage(t, kernel.NewUUID())
	regionID := reg.ID()
	drv := mustDriver(t, driver.References{RegionID: &regionID})
	cmd, err := commands.NewSoftDeleteEntityCommand(commands.RegionEntity, reg.ID())
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.regions.On("GetIncludingDeleted", mock.Anything, reg.ID()).Return(reg, nil).Once(),
		r.villages.On("ListByRegion", mock.Anything, reg.ID()).
			Return([]*village.Village{vil, otherVil}, nil).Once(),
		r.drivers.On("ListByRegion", mock.Anything, reg.ID()).Return([]*driver.Driver{drv}, nil).Once(),
		r.villages.On("Update", mock.Anything, vil).Return(nil).Once(),
		r.drivers.On("Update", mock.Anything, drv).Return(nil).Once(),
		r.regions.On("Update", mock.Anything, reg).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSoftDeleteEntityCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)

	assert.True(t, reg.IsDeleted())
	assert.Nil(t, vil.RegionID())
	assert.Nil(t, drv.RegionID())
	assert.NotNil(t, otherVil.RegionID())
	r.villages.AssertNotCalled(t, "Update", mock.Anything, otherVil)
}

func TestSoftDeleteEntityCommandHandler_AlreadyDeletedIsNoOp(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	reg := mustRegion(t)
	require.True(t, reg.SoftDelete(start))
	cmd, err := commands.NewSoftDeleteEntityCommand(commands.RegionEntity, reg.ID())
	require.NoError(t, err)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.regions.On("GetIncludingDeleted", mock.Anything, reg.ID()).Return(reg, nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewSoftDeleteEntityCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, start, *reg.DeletedAt())
	r.regions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSoftDeleteEntityCommandHandler_Village_ClearsDrivers(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	vil := mustVillage(t, kernel.NewUUID())
	villageID := vil.ID()
	drv := mustDriver(t, driver.References{VillageID: &villageID})
	cmd, err := commands.NewSoftDeleteEntityCommand(commands.VillageEntity, vil.ID())
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.villages.On("GetIncludingDeleted", mock.Anything, vil.ID()).Return(vil, nil).Once(),
		r.drivers.On("ListByVillage", mock.Anything, vil.ID()).Return([]*driver.Driver{drv}, nil).Once(),
		r.drivers.On("Update", mock.Anything, drv).Return(nil).Once(),
		r.villages.On("Update", mock.Anything, vil).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSoftDeleteEntityCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
	assert.True(t, vil.IsDeleted())
	assert.Nil(t, drv.VillageID())
}

func TestSoftDeleteEntityCommandHandler_Vehicle_BlockedByOnDutyDriver(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	veh := mustVehicle(t)
	vehicleID := veh.ID()
	onDuty := mustDriver(t, driver.References{VehicleID: &vehicleID})
	require.NoError(t, onDuty.ChangeStatus(driver.OnDuty))
	offDuty := mustDriver(t, driver.References{VehicleID: &vehicleID})
	cmd, err := commands.NewSoftDeleteEntityCommand(commands.VehicleEntity, veh.ID())
	require.NoError(t, err)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.vehicles.On("GetIncludingDeleted", mock.Anything, veh.ID()).Return(veh, nil).Once()
	r.drivers.On("ListByVehicle", mock.Anything, veh.ID()).Return([]*driver.Driver{offDuty, onDuty}, nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewSoftDeleteEntityCommandHandler(MockUoWFactory{r.uow})
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)
	assert.Contains(t, err.Error(), onDuty.ID().String())

	assert.False(t, veh.IsDeleted())
	assert.NotNil(t, offDuty.VehicleID())
	r.drivers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSoftDeleteEntityCommandHandler_Vehicle_FailureRollsBack(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	veh := mustVehicle(t)
	vehicleID := veh.ID()
	drv := mustDriver(t, driver.References{VehicleID: &vehicleID})
	cmd, err := commands.NewSoftDeleteEntityCommand(commands.VehicleEntity, veh.ID())
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.vehicles.On("GetIncludingDeleted", mock.Anything, veh.ID()).Return(veh, nil).Once(),
		r.drivers.On("ListByVehicle", mock.Anything, veh.ID()).Return([]*driver.Driver{drv}, nil).Once(),
		r.drivers.On("Update", mock.Anything, drv).
			Return(errs.NewStorageFailureError("update driver", errors.New("connection reset"))).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSoftDeleteEntityCommandHandler(MockUoWFactory{r.uow})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrStorageFailure)
	r.assertExpectations(t)
	r.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSoftDeleteEntityCommandHandler_Driver_NoCascade(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	drv := mustDriver(t, driver.References{})
	cmd, err := commands.NewSoftDeleteEntityCommand(commands.DriverEntity, drv.ID())
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.drivers.On("GetIncludingDeleted", mock.Anything, drv.ID()).Return(drv, nil).Once(),
		r.drivers.On("Update", mock.Anything, drv).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSoftDeleteEntityCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
	assert.True(t, drv.IsDeleted())
}

func TestRestoreEntityCommandHandler_DoesNotReattach(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	vil := mustVillage(t, kernel.NewUUID())
	require.True(t, vil.DetachRegion(*vil.RegionID()))
	require.True(t, vil.SoftDelete(start))
	cmd, err := commands.NewRestoreEntityCommand(commands.VillageEntity, vil.ID())
	require.NoError(t, err)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.villages.On("GetIncludingDeleted", mock.Anything, vil.ID()).Return(vil, nil).Once(),
		r.villages.On("Update", mock.Anything, vil).Return(nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRestoreEntityCommandHandler(MockUoWFactory{r.uow})
	require.NoError(t, h.Handle(ctx, cmd))
	r.assertExpectations(t)
	assert.False(t, vil.IsDeleted())
	assert.Nil(t, vil.RegionID())
}

func TestRestoreEntityCommandHandler_LiveRecordIsNotFound(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	veh := mustVehicle(t)
	cmd, err := commands.NewRestoreEntityCommand(commands.VehicleEntity, veh.ID())
	require.NoError(t, err)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.vehicles.On("GetIncludingDeleted", mock.Anything, veh.ID()).Return(veh, nil).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewRestoreEntityCommandHandler(MockUoWFactory{r.uow})
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	r.vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewSoftDeleteEntityCommand_UnknownType(t *testing.T) {
	_, err := commands.NewSoftDeleteEntityCommand(commands.UnknownEntity, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
