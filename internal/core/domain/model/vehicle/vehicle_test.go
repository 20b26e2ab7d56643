package vehicle_test

import (
	"testing"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicle(t *testing.T) {
	t.Run("registration is normalised and status defaults", func(t *testing.T) {
		v, err := vehicle.NewVehicle(kernel.NewUUID(), " fr-ab 123 ", "Sprinter", vehicle.Capacity{Weight: 1200, Volume: 10})
		require.NoError(t, err)

		assert.Equal(t, "FR-AB 123", v.RegistrationNumber())
		assert.Equal(t, vehicle.Available, v.Status())
		assert.Nil(t, v.CurrentLocation())
		assert.True(t, v.MaintenanceSchedule().IsZero())
		assert.True(t, v.IsActive())
	})

	t.Run("negative capacity is rejected", func(t *testing.T) {
		_, err := vehicle.NewVehicle(kernel.NewUUID(), "FR-1", "Sprinter", vehicle.Capacity{Weight: -1, Volume: -1})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "capacity.weight")
		assert.Contains(t, err.Error(), "capacity.volume")
	})

	t.Run("registration and model are required", func(t *testing.T) {
		_, err := vehicle.NewVehicle(kernel.NewUUID(), " ", "", vehicle.Capacity{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "registrationNumber")
		assert.Contains(t, err.Error(), "model")
	})
}

func TestVehicle_ScheduleMaintenance(t *testing.T) {
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "FR-1", "Sprinter", vehicle.Capacity{})
	require.NoError(t, err)
	last := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	err = v.ScheduleMaintenance(vehicle.MaintenanceSchedule{LastService: last, NextService: last.AddDate(0, 0, -1)})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.True(t, v.MaintenanceSchedule().IsZero())

	schedule := vehicle.MaintenanceSchedule{LastService: last, NextService: last.AddDate(0, 6, 0), ServiceIntervalKm: 30000}
	require.NoError(t, v.ScheduleMaintenance(schedule))
	assert.Equal(t, schedule, v.MaintenanceSchedule())
	assert.False(t, schedule.IsDue(last.AddDate(0, 1, 0)))
	assert.True(t, schedule.IsDue(last.AddDate(0, 6, 0)))
}

func TestVehicle_StatusAndLocation(t *testing.T) {
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "FR-1", "Sprinter", vehicle.Capacity{})
	require.NoError(t, err)

	require.NoError(t, v.ChangeStatus(vehicle.Maintenance))
	assert.Equal(t, vehicle.Maintenance, v.Status())
	assert.ErrorIs(t, v.ChangeStatus(vehicle.Unknown), errs.ErrValueIsInvalid)

	loc, _ := kernel.NewLocation(7.8, 48.0)
	require.NoError(t, v.MoveTo(loc))
	require.NotNil(t, v.CurrentLocation())
	assert.InDelta(t, 7.8, v.CurrentLocation().Longitude(), 1e-9)
}

func TestParseStatus(t *testing.T) {
	s, err := vehicle.ParseStatus("out_of_service")
	require.NoError(t, err)
	assert.Equal(t, vehicle.OutOfService, s)

	s, err = vehicle.ParseStatus("in-use")
	require.NoError(t, err)
	assert.Equal(t, vehicle.InUse, s)

	_, err = vehicle.ParseStatus("BROKEN")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
