package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fleethttp "fleet/internal/adapters/in/http"
	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandFunc[C any] func(ctx context.Context, cmd C) error

func (f commandFunc[C]) Handle(ctx context.Context, cmd C) error {
	return f(ctx, cmd)
}

type queryFunc[Q, R any] func(ctx context.Context, query Q) (R, error)

func (f queryFunc[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	return f(ctx, query)
}

func newEcho(t *testing.T, h fleethttp.Handlers) (*echo.Echo, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return fleethttp.NewEcho(fleethttp.NewServer(h), log), hook
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) fleethttp.Error {
	t.Helper()
	var body fleethttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const tripBody = `{
	"vehicleId": "%s",
	"driverId": "%s",
	"startLocation": {"longitude": 13.4, "latitude": 52.5},
	"scheduledStart": "2024-05-06T08:00:00Z",
	"notes": "fragile",
	"destinations": [{
		"location": {"longitude": 13.6, "latitude": 52.6, "address": {"street": "Dorfstr. 1", "city": "Oranienburg", "postalCode": "16515"}},
		"villageId": "%s",
		"products": [{"productId": "%s", "quantity": 4}],
		"estimatedArrival": "2024-05-06T09:00:00Z"
	}]
}`

func TestHealth(t *testing.T) {
	e, _ := newEcho(t, fleethttp.Handlers{})

	rec := do(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateTrip(t *testing.T) {
	vehicleID, driverID, villageID, productID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	var got commands.CreateTripCommand
	e, _ := newEcho(t, fleethttp.Handlers{
		CreateTrip: commandFunc[commands.CreateTripCommand](func(_ context.Context, cmd commands.CreateTripCommand) error {
			got = cmd
			return nil
		}),
		GetTrip: queryFunc[queries.GetTripQuery, queries.TripView](
			func(_ context.Context, q queries.GetTripQuery) (queries.TripView, error) {
				return queries.TripView{ID: q.TripID().Bytes(), Status: "SCHEDULED", Version: 1}, nil
			}),
	})

	rec := do(e, http.MethodPost, "/api/v1/trips",
		fmt.Sprintf(tripBody, vehicleID, driverID, villageID, productID))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created queries.TripView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, got.TripID().Bytes(), created.ID)
	assert.Equal(t, "SCHEDULED", created.Status)
	assert.True(t, got.VehicleID().IsEqual(vehicleID))
	assert.True(t, got.DriverID().IsEqual(driverID))
	assert.Equal(t, "fragile", got.Notes())
	require.Len(t, got.Destinations(), 1)
	dest := got.Destinations()[0]
	assert.True(t, dest.VillageID.IsEqual(villageID))
	assert.Equal(t, "Dorfstr. 1", dest.Location.Address().Street)
	assert.Equal(t, "16515", dest.Location.Address().PostalCode)
	assert.Equal(t, 4, dest.Products[0].Quantity())
	assert.True(t, time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC).Equal(dest.EstimatedArrival))
}

func TestChangeTripStatus_ReturnsUpdatedTrip(t *testing.T) {
	id := kernel.NewUUID()
	var got commands.ChangeTripStatusCommand
	e, _ := newEcho(t, fleethttp.Handlers{
		ChangeTripStatus: commandFunc[commands.ChangeTripStatusCommand](
			func(_ context.Context, cmd commands.ChangeTripStatusCommand) error {
				got = cmd
				return nil
			}),
		GetTrip: queryFunc[queries.GetTripQuery, queries.TripView](
			func(_ context.Context, q queries.GetTripQuery) (queries.TripView, error) {
				return queries.TripView{ID: q.TripID().Bytes(), Status: "IN_PROGRESS", Version: 2}, nil
			}),
	})

	rec := do(e, http.MethodPatch, "/api/v1/trips/"+id.String()+"/status", `{"status":"in-progress"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "in-progress", got.Status())
	var view queries.TripView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, id.Bytes(), view.ID)
	assert.Equal(t, "IN_PROGRESS", view.Status)
	assert.Equal(t, int64(2), view.Version)
}

func TestUpdateDestinationStatus_ReturnsTrip(t *testing.T) {
	tripID, destID := kernel.NewUUID(), kernel.NewUUID()
	var got commands.UpdateDestinationStatusCommand
	e, _ := newEcho(t, fleethttp.Handlers{
		UpdateDestinationStatus: commandFunc[commands.UpdateDestinationStatusCommand](
			func(_ context.Context, cmd commands.UpdateDestinationStatusCommand) error {
				got = cmd
				return nil
			}),
		GetTrip: queryFunc[queries.GetTripQuery, queries.TripView](
			func(_ context.Context, q queries.GetTripQuery) (queries.TripView, error) {
				return queries.TripView{ID: q.TripID().Bytes(), Version: 3}, nil
			}),
	})

	rec := do(e, http.MethodPatch,
		"/api/v1/trips/"+tripID.String()+"/destinations/"+destID.String()+"/status", `{"status":"ARRIVED"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, got.DestinationID().IsEqual(destID))
	var view queries.TripView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, tripID.Bytes(), view.ID)
}

func TestCreateTrip_BadInput(t *testing.T) {
	e, _ := newEcho(t, fleethttp.Handlers{
		CreateTrip: commandFunc[commands.CreateTripCommand](func(context.Context, commands.CreateTripCommand) error {
			t.Fatal("handler must not run")
			return nil
		}),
	})

	tests := map[string]string{
		"malformed json": `{"vehicleId":`,
		"bad vehicle id": fmt.Sprintf(tripBody, "nope", kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()),
		"no destinations": `{"vehicleId":"` + kernel.NewUUID().String() + `","driverId":"` + kernel.NewUUID().String() +
			`","startLocation":{"longitude":1,"latitude":1},"scheduledStart":"2024-05-06T08:00:00Z","destinations":[]}`,
		"missing postal code": strings.Replace(
			fmt.Sprintf(tripBody, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()),
			`, "postalCode": "16515"`, "", 1),
		"latitude out of range": `{"vehicleId":"` + kernel.NewUUID().String() + `","driverId":"` + kernel.NewUUID().String() +
			`","startLocation":{"longitude":1,"latitude":91}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/v1/trips", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
		})
	}
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("trip", kernel.NewUUID()), http.StatusNotFound},
		{"conflict", errs.NewConflictError("trip", kernel.NewUUID(), "version 1 is stale"), http.StatusConflict},
		{"invalid transition", errs.NewInvalidTransitionError("COMPLETED", "IN_PROGRESS"), http.StatusBadRequest},
		{"invalid operation", errs.NewInvalidOperationError("trip is completed"), http.StatusBadRequest},
		{"invalid reference", errs.NewInvalidReferenceError("vehicleID", kernel.NewUUID()), http.StatusBadRequest},
		{"storage failure", errs.NewStorageFailureError("update trip", errors.New("conn reset")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newEcho(t, fleethttp.Handlers{
				ChangeTripStatus: commandFunc[commands.ChangeTripStatusCommand](
					func(context.Context, commands.ChangeTripStatusCommand) error { return tt.err }),
			})

			rec := do(e, http.MethodPatch, "/api/v1/trips/"+kernel.NewUUID().String()+"/status",
				`{"status":"IN_PROGRESS"}`)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want, fleethttp.StatusFor(tt.err))
		})
	}
}

func TestStorageFailureIsLoggedAndHidden(t *testing.T) {
	e, hook := newEcho(t, fleethttp.Handlers{
		GetTrip: queryFunc[queries.GetTripQuery, queries.TripView](
			func(context.Context, queries.GetTripQuery) (queries.TripView, error) {
				return queries.TripView{}, errs.NewStorageFailureError("get trip", errors.New("password=secret"))
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/trips/"+kernel.NewUUID().String(), "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel && entry.Message == "request failed" {
			logged = true
		}
	}
	assert.True(t, logged)
}

func TestGetTrip_NotFoundBody(t *testing.T) {
	id := kernel.NewUUID()
	e, _ := newEcho(t, fleethttp.Handlers{
		GetTrip: queryFunc[queries.GetTripQuery, queries.TripView](
			func(_ context.Context, q queries.GetTripQuery) (queries.TripView, error) {
				return queries.TripView{}, errs.NewObjectNotFoundError("trip", q.TripID())
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/trips/"+id.String(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Contains(t, body.Message, id.String())

	rec = do(e, http.MethodGet, "/api/v1/trips/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTrips_PassesFilterAndPaging(t *testing.T) {
	vehicleID := kernel.NewUUID()
	var got queries.ListTripsQuery
	e, _ := newEcho(t, fleethttp.Handlers{
		ListTrips: queryFunc[queries.ListTripsQuery, queries.PageResult[queries.TripView]](
			func(_ context.Context, q queries.ListTripsQuery) (queries.PageResult[queries.TripView], error) {
				got = q
				return queries.PageResult[queries.TripView]{Results: []queries.TripView{}, Page: 2, Limit: 5}, nil
			}),
	})

	rec := do(e, http.MethodGet,
		"/api/v1/trips?status=in_progress&vehicleId="+vehicleID.String()+"&page=2&limit=5&sortBy=scheduledStart:desc", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Filter().Status)
	assert.Equal(t, trip.InProgress, *got.Filter().Status)
	require.NotNil(t, got.Filter().VehicleID)
	assert.True(t, got.Filter().VehicleID.IsEqual(vehicleID))
	assert.Nil(t, got.Filter().DriverID)
	assert.Equal(t, 2, got.Page().Number())
	assert.Equal(t, 5, got.Page().Limit())
	assert.Equal(t, []string{"scheduled_start desc"}, got.SortColumns())

	for _, target := range []string{
		"/api/v1/trips?page=abc",
		"/api/v1/trips?page=-1",
		"/api/v1/trips?status=LOST",
		"/api/v1/trips?sortBy=mileage",
		"/api/v1/trips?driverId=42",
	} {
		assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, target, "").Code, target)
	}
}

func TestCheckAvailability(t *testing.T) {
	driverID := kernel.NewUUID()
	var got queries.CheckAvailabilityQuery
	e, _ := newEcho(t, fleethttp.Handlers{
		CheckAvailability: queryFunc[queries.CheckAvailabilityQuery, queries.CheckAvailabilityResponse](
			func(_ context.Context, q queries.CheckAvailabilityQuery) (queries.CheckAvailabilityResponse, error) {
				got = q
				return queries.CheckAvailabilityResponse{Available: true, ConflictingTrips: []string{}}, nil
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/availability?resourceType=driver&resourceId="+driverID.String()+
		"&start=2024-05-06T08:00:00Z&end=2024-05-06T12:00:00Z", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"available":true,"conflictingTrips":[]}`, rec.Body.String())
	assert.Equal(t, queries.DriverResource, got.ResourceType())
	assert.Equal(t, 4*time.Hour, got.Window().End().Sub(got.Window().Start()))

	rec = do(e, http.MethodGet, "/api/v1/availability?resourceType=driver&resourceId="+driverID.String()+
		"&start=2024-05-06T08:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSoftDeleteAndRestoreRoutes(t *testing.T) {
	var deleted commands.SoftDeleteEntityCommand
	var restored commands.RestoreEntityCommand
	e, _ := newEcho(t, fleethttp.Handlers{
		SoftDelete: commandFunc[commands.SoftDeleteEntityCommand](func(_ context.Context, cmd commands.SoftDeleteEntityCommand) error {
			deleted = cmd
			return nil
		}),
		Restore: commandFunc[commands.RestoreEntityCommand](func(_ context.Context, cmd commands.RestoreEntityCommand) error {
			restored = cmd
			return errs.NewObjectNotFoundError("vehicle", cmd.ID())
		}),
	})
	id := kernel.NewUUID()

	rec := do(e, http.MethodDelete, "/api/v1/villages/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, commands.VillageEntity, deleted.EntityType())
	assert.True(t, deleted.ID().IsEqual(id))

	rec = do(e, http.MethodPost, "/api/v1/vehicles/"+id.String()+"/restore", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, commands.VehicleEntity, restored.EntityType())
}

func TestListRegions_Scope(t *testing.T) {
	var got queries.ListEntitiesQuery[queries.RegionFilter]
	e, _ := newEcho(t, fleethttp.Handlers{
		ListRegions: queryFunc[queries.ListEntitiesQuery[queries.RegionFilter], queries.PageResult[queries.RegionView]](
			func(_ context.Context, q queries.ListEntitiesQuery[queries.RegionFilter]) (queries.PageResult[queries.RegionView], error) {
				got = q
				return queries.PageResult[queries.RegionView]{Results: []queries.RegionView{}}, nil
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/regions?scope=onlyDeleted&sortBy=name", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, queries.OnlyDeleted, got.Scope())
	assert.Equal(t, "name", got.SortBy())
	assert.Equal(t, queries.RegionFilter{}, got.Filter())

	rec = do(e, http.MethodGet, "/api/v1/regions?scope=everything", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRegions_Filter(t *testing.T) {
	var got queries.ListEntitiesQuery[queries.RegionFilter]
	e, _ := newEcho(t, fleethttp.Handlers{
		ListRegions: queryFunc[queries.ListEntitiesQuery[queries.RegionFilter], queries.PageResult[queries.RegionView]](
			func(_ context.Context, q queries.ListEntitiesQuery[queries.RegionFilter]) (queries.PageResult[queries.RegionView], error) {
				got = q
				return queries.PageResult[queries.RegionView]{Results: []queries.RegionView{}}, nil
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/regions?name=North&isActive=false", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Filter().Name)
	assert.Equal(t, "North", *got.Filter().Name)
	require.NotNil(t, got.Filter().IsActive)
	assert.False(t, *got.Filter().IsActive)

	rec = do(e, http.MethodGet, "/api/v1/regions?isActive=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListVillages_FilterByRegion(t *testing.T) {
	var got queries.ListEntitiesQuery[queries.VillageFilter]
	e, _ := newEcho(t, fleethttp.Handlers{
		ListVillages: queryFunc[queries.ListEntitiesQuery[queries.VillageFilter], queries.PageResult[queries.VillageView]](
			func(_ context.Context, q queries.ListEntitiesQuery[queries.VillageFilter]) (queries.PageResult[queries.VillageView], error) {
				got = q
				return queries.PageResult[queries.VillageView]{Results: []queries.VillageView{}}, nil
			}),
	})
	regionID := kernel.NewUUID()

	rec := do(e, http.MethodGet, "/api/v1/villages?regionId="+regionID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Filter().RegionID)
	assert.True(t, got.Filter().RegionID.IsEqual(regionID))
	assert.Nil(t, got.Filter().Name)

	rec = do(e, http.MethodGet, "/api/v1/villages?regionId=north", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDrivers_Filter(t *testing.T) {
	var got queries.ListEntitiesQuery[queries.DriverFilter]
	e, _ := newEcho(t, fleethttp.Handlers{
		ListDrivers: queryFunc[queries.ListEntitiesQuery[queries.DriverFilter], queries.PageResult[queries.DriverView]](
			func(_ context.Context, q queries.ListEntitiesQuery[queries.DriverFilter]) (queries.PageResult[queries.DriverView], error) {
				got = q
				return queries.PageResult[queries.DriverView]{Results: []queries.DriverView{}}, nil
			}),
	})

	rec := do(e, http.MethodGet, "/api/v1/drivers?licenseNumber=LIC-1&status=on-duty", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Filter().LicenseNumber)
	assert.Equal(t, "LIC-1", *got.Filter().LicenseNumber)
	require.NotNil(t, got.Filter().Status)
	assert.Equal(t, driver.OnDuty, *got.Filter().Status)

	rec = do(e, http.MethodGet, "/api/v1/drivers?status=asleep", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDriver_LicenseFieldsTravelTogether(t *testing.T) {
	var got commands.UpdateDriverCommand
	e, _ := newEcho(t, fleethttp.Handlers{
		UpdateDriver: commandFunc[commands.UpdateDriverCommand](func(_ context.Context, cmd commands.UpdateDriverCommand) error {
			got = cmd
			return nil
		}),
	})
	id := kernel.NewUUID()

	rec := do(e, http.MethodPatch, "/api/v1/drivers/"+id.String(), `{"licenseNumber":"LIC-9"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPatch, "/api/v1/drivers/"+id.String(),
		`{"licenseNumber":"LIC-9","licenseExpiry":"2027-01-01T00:00:00Z","status":"off_duty"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.True(t, got.DriverID().IsEqual(id))
}

func TestCreateProduct(t *testing.T) {
	var got commands.CreateProductCommand
	e, _ := newEcho(t, fleethttp.Handlers{
		CreateProduct: commandFunc[commands.CreateProductCommand](func(_ context.Context, cmd commands.CreateProductCommand) error {
			got = cmd
			return errs.NewConflictError("product", "Roggenbrot", "name is taken")
		}),
	})

	rec := do(e, http.MethodPost, "/api/v1/products",
		`{"name":"Roggenbrot","category":"bread","unit":"piece","unitPrice":2.9,"initialStock":10}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Roggenbrot", got.Name())

	rec = do(e, http.MethodPost, "/api/v1/products", `{"name":"Soup","category":"soup","unit":"piece"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
