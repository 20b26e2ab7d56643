package services_test

import (
	"testing"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/services"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

func bookedTrip(t *testing.T, status trip.Status, start, eta time.Time, actualEnd *time.Time) *trip.Trip {
	t.Helper()
	loc, err := kernel.NewLocation(8.0, 48.0)
	require.NoError(t, err)
	line, err := trip.NewProductLine(kernel.NewUUID(), 1)
	require.NoError(t, err)
	dest, err := trip.NewDestination(kernel.NewUUID(), loc, kernel.NewUUID(), []trip.ProductLine{line}, eta)
	require.NoError(t, err)

	tr, err := trip.RestoreTrip(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), status,
		start, nil, actualEnd, loc, "", []*trip.Destination{dest}, 1, start, start)
	require.NoError(t, err)
	return tr
}

func window(t *testing.T, from, to time.Duration) kernel.Window {
	t.Helper()
	w, err := kernel.NewWindow(base.Add(from), base.Add(to))
	require.NoError(t, err)
	return w
}

func TestAvailabilityChecker_IsAvailable(t *testing.T) {
	checker := services.NewAvailabilityChecker()
	ended := base.Add(3 * time.Hour)

	tests := []struct {
		name      string
		existing  *trip.Trip
		window    kernel.Window
		available bool
	}{
		{
			name:      "scheduled trip starting inside the window overlaps",
			existing:  bookedTrip(t, trip.Scheduled, base.Add(time.Hour), base.Add(5*time.Hour), nil),
			window:    window(t, 0, 2*time.Hour),
			available: false,
		},
		{
			name:      "trip starting exactly at window end does not overlap",
			existing:  bookedTrip(t, trip.Scheduled, base.Add(2*time.Hour), base.Add(5*time.Hour), nil),
			window:    window(t, 0, 2*time.Hour),
			available: true,
		},
		{
			name:      "open-ended in-progress trip started earlier overlaps",
			existing:  bookedTrip(t, trip.InProgress, base.Add(-5*time.Hour), base.Add(-4*time.Hour), nil),
			window:    window(t, 0, time.Hour),
			available: false,
		},
		{
			name:      "trip that actually ended before the window does not overlap",
			existing:  bookedTrip(t, trip.InProgress, base.Add(-5*time.Hour), base.Add(-4*time.Hour), &ended),
			window:    window(t, 4*time.Hour, 5*time.Hour),
			available: true,
		},
		{
			name:      "trip that actually ended exactly at window start does not overlap",
			existing:  bookedTrip(t, trip.InProgress, base, base.Add(time.Hour), &ended),
			window:    window(t, 3*time.Hour, 5*time.Hour),
			available: true,
		},
		{
			name:      "completed trips never block",
			existing:  bookedTrip(t, trip.Completed, base, base.Add(time.Hour), nil),
			window:    window(t, 0, time.Hour),
			available: true,
		},
		{
			name:      "cancelled trips never block",
			existing:  bookedTrip(t, trip.Cancelled, base, base.Add(time.Hour), nil),
			window:    window(t, 0, time.Hour),
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := checker.IsAvailable(tt.window, []*trip.Trip{tt.existing})
			require.NoError(t, err)
			assert.Equal(t, tt.available, ok)
		})
	}

	t.Run("no trips means available", func(t *testing.T) {
		ok, err := checker.IsAvailable(window(t, 0, time.Hour), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("zero window is rejected", func(t *testing.T) {
		_, err := checker.IsAvailable(kernel.Window{}, nil)
		assert.ErrorIs(t, err, kernel.ErrWindowIsNotConstructed)
	})

	t.Run("invalid trip is rejected", func(t *testing.T) {
		_, err := checker.IsAvailable(window(t, 0, time.Hour), []*trip.Trip{nil})
		assert.ErrorIs(t, err, trip.ErrTripIsNotConstructed)
	})
}

func TestAvailabilityChecker_EnsureAvailable(t *testing.T) {
	checker := services.NewAvailabilityChecker()
	vehicleID := kernel.NewUUID()
	free := bookedTrip(t, trip.Completed, base, base.Add(time.Hour), nil)
	busy := bookedTrip(t, trip.Scheduled, base, base.Add(time.Hour), nil)

	require.NoError(t, checker.EnsureAvailable("vehicle", vehicleID, window(t, 0, time.Hour), []*trip.Trip{free}))

	err := checker.EnsureAvailable("vehicle", vehicleID, window(t, 0, time.Hour), []*trip.Trip{free, busy})
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), busy.ID().String())

	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "vehicle", conflict.Resource)
}
