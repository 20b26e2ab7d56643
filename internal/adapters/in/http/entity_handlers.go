package http

import (
	"net/http"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/vehicle"

	"github.com/labstack/echo/v4"
)

func getEntity[V any](h QueryHandler[queries.GetEntityQuery, V]) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		scope, err := queries.ParseScope(c.QueryParam("scope"))
		if err != nil {
			return err
		}
		query, err := queries.NewGetEntityQuery(id, scope)
		if err != nil {
			return err
		}

		view, err := h.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view)
	}
}

func listEntities[F queries.EntityFilter, V any](
	h QueryHandler[queries.ListEntitiesQuery[F], queries.PageResult[V]],
	parseFilter func(echo.Context) (F, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		scope, err := queries.ParseScope(c.QueryParam("scope"))
		if err != nil {
			return err
		}
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}
		page, limit, err := paging(c)
		if err != nil {
			return err
		}
		query, err := queries.NewListEntitiesQuery(scope, filter, page, limit, c.QueryParam("sortBy"))
		if err != nil {
			return err
		}

		result, err := h.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, result)
	}
}

// SoftDeleteEntity handles DELETE /api/v1/{regions,villages,vehicles,drivers}/:id.
func (s *Server) SoftDeleteEntity(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		entityType, err := commands.ParseEntityType(kind)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		cmd, err := commands.NewSoftDeleteEntityCommand(entityType, id)
		if err != nil {
			return err
		}
		if err := s.h.SoftDelete.Handle(c.Request().Context(), cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// RestoreEntity handles POST /api/v1/{regions,villages,vehicles,drivers}/:id/restore.
func (s *Server) RestoreEntity(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		entityType, err := commands.ParseEntityType(kind)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		cmd, err := commands.NewRestoreEntityCommand(entityType, id)
		if err != nil {
			return err
		}
		if err := s.h.Restore.Handle(c.Request().Context(), cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// CreateRegion handles POST /api/v1/regions.
func (s *Server) CreateRegion(c echo.Context) error {
	var body NewRegion
	if err := bind(c, &body); err != nil {
		return err
	}
	addr, err := body.BaseAddress.toDomain()
	if err != nil {
		return err
	}
	center, err := body.Center.toDomain()
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRegionCommand(id, body.Name, addr, center, body.RadiusKm)
	if err != nil {
		return err
	}
	if err := s.h.CreateRegion.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// UpdateRegion handles PATCH /api/v1/regions/:id.
func (s *Server) UpdateRegion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body RegionPatch
	if err := bind(c, &body); err != nil {
		return err
	}
	changes, err := body.toChanges()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateRegionCommand(id, changes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateRegion.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateVillage handles POST /api/v1/villages.
func (s *Server) CreateVillage(c echo.Context) error {
	var body NewVillage
	if err := bind(c, &body); err != nil {
		return err
	}
	regionID, err := kernel.UUIDFromString(body.RegionID)
	if err != nil {
		return err
	}
	coords, err := body.Coordinates.toDomain()
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateVillageCommand(id, body.Name, regionID, body.Inhabitants, coords)
	if err != nil {
		return err
	}
	if err := s.h.CreateVillage.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// UpdateVillage handles PATCH /api/v1/villages/:id.
func (s *Server) UpdateVillage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body VillagePatch
	if err := bind(c, &body); err != nil {
		return err
	}
	changes, err := body.toChanges()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateVillageCommand(id, changes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateVillage.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateVehicle handles POST /api/v1/vehicles.
func (s *Server) CreateVehicle(c echo.Context) error {
	var body NewVehicle
	if err := bind(c, &body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateVehicleCommand(id, body.RegistrationNumber, body.Model,
		vehicle.Capacity{Weight: body.Capacity.Weight, Volume: body.Capacity.Volume})
	if err != nil {
		return err
	}
	if err := s.h.CreateVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// UpdateVehicle handles PATCH /api/v1/vehicles/:id.
func (s *Server) UpdateVehicle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body VehiclePatch
	if err := bind(c, &body); err != nil {
		return err
	}
	changes, err := body.toChanges()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateVehicleCommand(id, changes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(c echo.Context) error {
	var body NewDriver
	if err := bind(c, &body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := body.toCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.CreateDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// UpdateDriver handles PATCH /api/v1/drivers/:id.
func (s *Server) UpdateDriver(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body DriverPatch
	if err := bind(c, &body); err != nil {
		return err
	}
	changes, err := body.toChanges()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateDriverCommand(id, changes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(c echo.Context) error {
	var body NewProduct
	if err := bind(c, &body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := body.toCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.CreateProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// UpdateProduct handles PATCH /api/v1/products/:id.
func (s *Server) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body ProductPatch
	if err := bind(c, &body); err != nil {
		return err
	}
	changes, err := body.toChanges()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateProductCommand(id, changes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/v1/products/:id. Products are removed
// for good.
func (s *Server) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteProductCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteProduct.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
