package http

import (
	"net/http"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"

	"github.com/labstack/echo/v4"
)

// defaultOverdueGrace applies when GET /trips/overdue has no grace parameter.
const defaultOverdueGrace = 30 * time.Minute

// CreateTrip handles POST /api/v1/trips - plans a new trip and answers 201
// with the stored trip.
func (s *Server) CreateTrip(c echo.Context) error {
	var body NewTrip
	if err := bind(c, &body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := body.toCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.CreateTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusCreated, id)
}

// respondTrip answers a committed trip command with the trip as it now reads.
func (s *Server) respondTrip(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetTripQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetTrip.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, view)
}

// GetTrip handles GET /api/v1/trips/:id.
func (s *Server) GetTrip(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTripQuery(id)
	if err != nil {
		return err
	}

	view, err := s.h.GetTrip.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// ListTrips handles GET /api/v1/trips - filters by status, vehicleId and
// driverId; pages with page, limit and sortBy.
func (s *Server) ListTrips(c echo.Context) error {
	var filter queries.TripFilter
	if raw := c.QueryParam("status"); raw != "" {
		status, err := trip.ParseStatus(raw)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	for param, target := range map[string]**kernel.UUID{
		"vehicleId": &filter.VehicleID,
		"driverId":  &filter.DriverID,
	} {
		if raw := c.QueryParam(param); raw != "" {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return badRequest("invalid "+param, err)
			}
			*target = &id
		}
	}

	page, limit, err := paging(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListTripsQuery(filter, page, limit, c.QueryParam("sortBy"))
	if err != nil {
		return err
	}

	result, err := s.h.ListTrips.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetOverdueTrips handles GET /api/v1/trips/overdue - SCHEDULED trips whose
// start lies more than grace (a Go duration, default 30m) in the past.
func (s *Server) GetOverdueTrips(c echo.Context) error {
	grace := defaultOverdueGrace
	if raw := c.QueryParam("grace"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return badRequest("invalid grace", err)
		}
		grace = d
	}
	query, err := queries.NewGetOverdueTripsQuery(time.Now(), grace)
	if err != nil {
		return err
	}

	views, err := s.h.GetOverdueTrips.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ChangeTripStatus handles PATCH /api/v1/trips/:id/status.
func (s *Server) ChangeTripStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body StatusChange
	if err := bind(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewChangeTripStatusCommand(id, body.Status)
	if err != nil {
		return err
	}
	if err := s.h.ChangeTripStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, id)
}

// UpdateDestinationStatus handles
// PATCH /api/v1/trips/:id/destinations/:destinationId/status.
func (s *Server) UpdateDestinationStatus(c echo.Context) error {
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	destinationID, err := pathID(c, "destinationId")
	if err != nil {
		return err
	}
	var body StatusChange
	if err := bind(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateDestinationStatusCommand(tripID, destinationID, body.Status)
	if err != nil {
		return err
	}
	if err := s.h.UpdateDestinationStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, tripID)
}

// UpdateTripNotes handles PATCH /api/v1/trips/:id/notes.
func (s *Server) UpdateTripNotes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body NotesChange
	if err := bind(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateTripNotesCommand(id, body.Notes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateTripNotes.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, id)
}

// DeleteTrip handles DELETE /api/v1/trips/:id.
func (s *Server) DeleteTrip(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteTripCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckAvailability handles GET /api/v1/availability with resourceType,
// resourceId, start and end (RFC 3339).
func (s *Server) CheckAvailability(c echo.Context) error {
	resourceType, err := queries.ParseResourceType(c.QueryParam("resourceType"))
	if err != nil {
		return err
	}
	resourceID, err := kernel.UUIDFromString(c.QueryParam("resourceId"))
	if err != nil {
		return badRequest("invalid resourceId", err)
	}
	start, err := queryTime(c, "start")
	if err != nil {
		return err
	}
	end, err := queryTime(c, "end")
	if err != nil {
		return err
	}
	query, err := queries.NewCheckAvailabilityQuery(resourceType, resourceID, start, end)
	if err != nil {
		return err
	}

	resp, err := s.h.CheckAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func paging(c echo.Context) (int, int, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}
