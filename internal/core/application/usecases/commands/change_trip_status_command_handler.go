package commands

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
)

// ChangeTripStatusCommandHandler applies one status transition. The write is
// conditional on the version read at the start, so of two concurrent
// transitions from the same state at most one commits; the other gets
// Conflict.
type ChangeTripStatusCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewChangeTripStatusCommandHandler(uowFactory TripUoWFactory) ChangeTripStatusCommandHandler {
	return ChangeTripStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ChangeTripStatusCommandHandler) Handle(ctx context.Context, cmd ChangeTripStatusCommand) error {
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

	next, parseErr := trip.ParseStatus(cmd.Status())
	if parseErr != nil {
		return errs.NewInvalidTransitionErrorWithCause(t.Status().String(), cmd.Status(), parseErr)
	}

	if err = t.ChangeStatus(next, time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
