package region_test

import (
	"testing"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/region"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegion(t *testing.T) *region.Region {
	t.Helper()
	addr, err := kernel.NewAddress("Marktplatz 1", "Freiburg", "79098", "")
	require.NoError(t, err)
	center, err := kernel.NewLocation(7.85, 47.99)
	require.NoError(t, err)
	r, err := region.NewRegion(kernel.NewUUID(), " Breisgau ", addr, center, 25)
	require.NoError(t, err)
	return r
}

func TestNewRegion(t *testing.T) {
	t.Run("valid region is active and live", func(t *testing.T) {
		r := newRegion(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, "Breisgau", r.Name())
		assert.Equal(t, "Germany", r.BaseAddress().Country)
		assert.True(t, r.IsActive())
		assert.False(t, r.IsDeleted())
		assert.Nil(t, r.DeletedAt())
	})

	t.Run("invalid fields are reported together", func(t *testing.T) {
		_, err := region.NewRegion(kernel.NewUUID(), "", kernel.Address{}, kernel.Location{}, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "baseAddress")
	})
}

func TestRegion_SoftDeleteAndRestore(t *testing.T) {
	r := newRegion(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.ErrorIs(t, r.Restore(), errs.ErrObjectNotFound)

	assert.True(t, r.SoftDelete(now))
	assert.True(t, r.IsDeleted())
	assert.Equal(t, now, *r.DeletedAt())

	assert.False(t, r.SoftDelete(now.Add(time.Hour)))
	assert.Equal(t, now, *r.DeletedAt())

	require.NoError(t, r.Restore())
	assert.False(t, r.IsDeleted())
	assert.Nil(t, r.DeletedAt())
}

func TestRegion_Mutators(t *testing.T) {
	r := newRegion(t)

	require.ErrorIs(t, r.Rename("  "), errs.ErrValueIsRequired)
	assert.Equal(t, "Breisgau", r.Name())

	require.ErrorIs(t, r.SetRadius(-0.5), errs.ErrValueIsOutOfRange)
	require.NoError(t, r.SetRadius(0))
	assert.Zero(t, r.RadiusKm())

	r.SetActive(false)
	assert.False(t, r.IsActive())
}

func TestRegion_Covers(t *testing.T) {
	r := newRegion(t)

	near, _ := kernel.NewLocation(7.9, 48.0)
	far, _ := kernel.NewLocation(13.4, 52.5)

	ok, err := r.Covers(near)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Covers(far)
	require.NoError(t, err)
	assert.False(t, ok)
}
