package http

import (
	"strconv"
	"strings"

	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/core/domain/model/vehicle"

	"github.com/labstack/echo/v4"
)

// Listing filters come from the query string. Absent or blank parameters
// leave the field unset.

func regionFilter(c echo.Context) (queries.RegionFilter, error) {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return queries.RegionFilter{}, err
	}
	return queries.RegionFilter{Name: queryString(c, "name"), IsActive: isActive}, nil
}

func villageFilter(c echo.Context) (queries.VillageFilter, error) {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return queries.VillageFilter{}, err
	}
	filter := queries.VillageFilter{Name: queryString(c, "name"), IsActive: isActive}
	if raw := queryString(c, "regionId"); raw != nil {
		id, err := kernel.UUIDFromString(*raw)
		if err != nil {
			return queries.VillageFilter{}, badRequest("invalid regionId", err)
		}
		filter.RegionID = &id
	}
	return filter, nil
}

func vehicleFilter(c echo.Context) (queries.VehicleFilter, error) {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return queries.VehicleFilter{}, err
	}
	filter := queries.VehicleFilter{
		RegistrationNumber: queryString(c, "registrationNumber"),
		IsActive:           isActive,
	}
	if raw := queryString(c, "status"); raw != nil {
		status, err := vehicle.ParseStatus(*raw)
		if err != nil {
			return queries.VehicleFilter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}

func driverFilter(c echo.Context) (queries.DriverFilter, error) {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return queries.DriverFilter{}, err
	}
	filter := queries.DriverFilter{
		Name:          queryString(c, "name"),
		LicenseNumber: queryString(c, "licenseNumber"),
		IsActive:      isActive,
	}
	if raw := queryString(c, "status"); raw != nil {
		status, err := driver.ParseStatus(*raw)
		if err != nil {
			return queries.DriverFilter{}, err
		}
		filter.Status = &status
	}
	return filter, nil
}

func productFilter(c echo.Context) (queries.ProductFilter, error) {
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return queries.ProductFilter{}, err
	}
	filter := queries.ProductFilter{Name: queryString(c, "name"), IsActive: isActive}
	if raw := queryString(c, "category"); raw != nil {
		category, err := product.ParseCategory(*raw)
		if err != nil {
			return queries.ProductFilter{}, err
		}
		filter.Category = &category
	}
	return filter, nil
}

func queryString(c echo.Context, name string) *string {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func queryBool(c echo.Context, name string) (*bool, error) {
	raw := queryString(c, name)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, badRequest("invalid "+name, err)
	}
	return &v, nil
}
