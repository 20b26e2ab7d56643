package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrUpdateTripNotesCommandIsNotConstructed = errors.New(
	"UpdateTripNotesCommand must be created via NewUpdateTripNotesCommand constructor",
)

// UpdateTripNotesCommand edits the only free-form field of a trip.
type UpdateTripNotesCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID
	notes  string

	guard guard.ConstructorGuard
}

func NewUpdateTripNotesCommand(tripID kernel.UUID, notes string) (UpdateTripNotesCommand, error) {
	if err := tripID.Validate(); err != nil {
		return UpdateTripNotesCommand{}, err
	}
	return UpdateTripNotesCommand{
		tripID: tripID,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTripNotesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTripNotesCommandIsNotConstructed)
}

func (c UpdateTripNotesCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c UpdateTripNotesCommand) Notes() string {
	return c.notes
}
