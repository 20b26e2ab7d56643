package commands

import (
	"errors"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrChangeTripStatusCommandIsNotConstructed = errors.New(
	"ChangeTripStatusCommand must be created via NewChangeTripStatusCommand constructor",
)

// ChangeTripStatusCommand asks to move a trip to another status. The status
// is kept as the raw requested name: an unknown name is a transition error,
// reported against the trip's current status.
type ChangeTripStatusCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID
	status string

	guard guard.ConstructorGuard
}

func NewChangeTripStatusCommand(tripID kernel.UUID, status string) (ChangeTripStatusCommand, error) {
	if err := tripID.Validate(); err != nil {
		return ChangeTripStatusCommand{}, err
	}
	return ChangeTripStatusCommand{
		tripID: tripID,
		status: strings.TrimSpace(status),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTripStatusCommandIsNotConstructed)
}

func (c ChangeTripStatusCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c ChangeTripStatusCommand) Status() string {
	return c.status
}
