package queries

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrGetTripQueryIsNotConstructed = errors.New(
	"GetTripQuery must be created via NewGetTripQuery constructor",
)

type GetTripQuery struct {
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTripQuery(tripID kernel.UUID) (GetTripQuery, error) {
	if err := tripID.Validate(); err != nil {
		return GetTripQuery{}, err
	}
	return GetTripQuery{tripID: tripID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTripQuery) Validate() error {
	return q.guard.Validate(ErrGetTripQueryIsNotConstructed)
}

func (q GetTripQuery) TripID() kernel.UUID {
	return q.tripID
}
