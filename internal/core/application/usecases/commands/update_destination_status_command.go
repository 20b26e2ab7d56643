package commands

import (
	"errors"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrUpdateDestinationStatusCommandIsNotConstructed = errors.New(
	"UpdateDestinationStatusCommand must be created via NewUpdateDestinationStatusCommand constructor",
)

// UpdateDestinationStatusCommand keeps the requested status name as sent,
// like ChangeTripStatusCommand: an unknown name is a transition error
// reported against the destination's current status.
type UpdateDestinationStatusCommand struct { //nolint:recvcheck //using for validation
	tripID        kernel.UUID
	destinationID kernel.UUID
	status        string

	guard guard.ConstructorGuard
}

func NewUpdateDestinationStatusCommand(
	tripID kernel.UUID,
	destinationID kernel.UUID,
	status string,
) (UpdateDestinationStatusCommand, error) {
	if err := errors.Join(tripID.Validate(), destinationID.Validate()); err != nil {
		return UpdateDestinationStatusCommand{}, err
	}

	return UpdateDestinationStatusCommand{
		tripID:        tripID,
		destinationID: destinationID,
		status:        strings.TrimSpace(status),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDestinationStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDestinationStatusCommandIsNotConstructed)
}

func (c UpdateDestinationStatusCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c UpdateDestinationStatusCommand) DestinationID() kernel.UUID {
	return c.destinationID
}

func (c UpdateDestinationStatusCommand) Status() string {
	return c.status
}
