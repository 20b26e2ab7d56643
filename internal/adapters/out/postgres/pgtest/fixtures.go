package pgtest

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/region"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/model/vehicle"
	"fleet/internal/core/domain/model/village"

	"github.com/stretchr/testify/require"
)

// Now is the reference instant for fixtures. It has no sub-microsecond
// part so it survives a round trip through timestamptz unchanged.
var Now = time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

func Location(t testing.TB, lon, lat float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lon, lat)
	require.NoError(t, err)
	return loc
}

func Region(t testing.TB) *region.Region {
	t.Helper()
	addr, err := kernel.NewAddress("Hauptstr. 1", "Berlin", "10115", "")
	require.NoError(t, err)
	r, err := region.NewRegion(kernel.NewUUID(), fmt.Sprintf("Region %d", next()), addr, Location(t, 13.4, 52.5), 40)
	require.NoError(t, err)
	return r
}

func Village(t testing.TB, regionID kernel.UUID) *village.Village {
	t.Helper()
	v, err := village.NewVillage(kernel.NewUUID(), fmt.Sprintf("Village %d", next()), regionID, 1200,
		Location(t, 13.39, 52.87))
	require.NoError(t, err)
	return v
}

func Vehicle(t testing.TB) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), fmt.Sprintf("B-FL %d", next()), "Sprinter",
		vehicle.Capacity{Weight: 1200, Volume: 10})
	require.NoError(t, err)
	return v
}

func Driver(t testing.TB, refs driver.References) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), kernel.NewUUID(), "Jan Becker",
		fmt.Sprintf("LIC-%d", next()), Now.AddDate(2, 0, 0), refs)
	require.NoError(t, err)
	return d
}

func Product(t testing.TB) *product.Product {
	t.Helper()
	p, err := product.RestoreProduct(kernel.NewUUID(), fmt.Sprintf("Sourdough %d", next()),
		product.Bread, product.Piece, 3.5, 100, true)
	require.NoError(t, err)
	return p
}

// Trip plans a SCHEDULED trip with two destinations arriving one and two
// hours after scheduledStart.
func Trip(t testing.TB, vehicleID, driverID kernel.UUID, scheduledStart time.Time) *trip.Trip {
	t.Helper()
	dests := make([]*trip.Destination, 0, 2)
	for i := 1; i <= 2; i++ {
		line, err := trip.NewProductLine(kernel.NewUUID(), i*3)
		require.NoError(t, err)
		loc, err := kernel.NewLocationWithAddress(13.5+float64(i)/10, 52.5, kernel.Address{
			Street: fmt.Sprintf("Dorfstr. %d", i),
			City:   "Oranienburg",
		})
		require.NoError(t, err)
		d, err := trip.NewDestination(kernel.NewUUID(), loc, kernel.NewUUID(),
			[]trip.ProductLine{line}, scheduledStart.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		dests = append(dests, d)
	}

	tr, err := trip.NewTrip(kernel.NewUUID(), vehicleID, driverID, Location(t, 13.4, 52.5),
		dests, scheduledStart, "fragile", scheduledStart.Add(-time.Hour))
	require.NoError(t, err)
	return tr
}
