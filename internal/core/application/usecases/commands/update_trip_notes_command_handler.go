package commands

import (
	"context"
	"time"
)

type UpdateTripNotesCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewUpdateTripNotesCommandHandler(uowFactory TripUoWFactory) UpdateTripNotesCommandHandler {
	return UpdateTripNotesCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateTripNotesCommandHandler) Handle(ctx context.Context, cmd UpdateTripNotesCommand) error {
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

	t.UpdateNotes(cmd.Notes(), time.Now())

	if err = repo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
