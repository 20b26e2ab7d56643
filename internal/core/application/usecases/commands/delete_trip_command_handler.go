package commands

import (
	"context"
)

// DeleteTripCommandHandler hard-deletes a SCHEDULED trip and its
// destinations. The delete is version-checked, so a trip started
// concurrently is not removed.
type DeleteTripCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewDeleteTripCommandHandler(uowFactory TripUoWFactory) DeleteTripCommandHandler {
	return DeleteTripCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DeleteTripCommandHandler) Handle(ctx context.Context, cmd DeleteTripCommand) error {
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

	if err = t.CanBeDeleted(); err != nil {
		return err
	}

	if err = repo.Delete(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
