package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
)

// UpdateDestinationStatusCommandHandler changes one destination by loading
// and rewriting its whole trip under the trip's version check. Concurrent
// updates to two destinations of the same trip therefore never lose a write:
// the second one gets Conflict and can be retried by the caller.
type UpdateDestinationStatusCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewUpdateDestinationStatusCommandHandler(uowFactory TripUoWFactory) UpdateDestinationStatusCommandHandler {
	return UpdateDestinationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateDestinationStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDestinationStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TripRepository()
	t, err := repo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	next, parseErr := trip.ParseDestinationStatus(cmd.Status())
	if parseErr != nil {
		d, err := t.Destination(cmd.DestinationID())
		if err != nil {
			return err
		}
		return errs.NewInvalidTransitionErrorWithCause(d.Status().String(), cmd.Status(), parseErr)
	}

	if err = t.UpdateDestinationStatus(cmd.DestinationID(), next, time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
