package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrDeleteTripCommandIsNotConstructed = errors.New(
	"DeleteTripCommand must be created via NewDeleteTripCommand constructor",
)

type DeleteTripCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteTripCommand(tripID kernel.UUID) (DeleteTripCommand, error) {
	if err := tripID.Validate(); err != nil {
		return DeleteTripCommand{}, err
	}
	return DeleteTripCommand{
		tripID: tripID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteTripCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTripCommandIsNotConstructed)
}

func (c DeleteTripCommand) TripID() kernel.UUID {
	return c.tripID
}
