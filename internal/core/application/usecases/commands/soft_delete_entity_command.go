package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrSoftDeleteEntityCommandIsNotConstructed = errors.New(
	"SoftDeleteEntityCommand must be created via NewSoftDeleteEntityCommand constructor",
)

type SoftDeleteEntityCommand struct { //nolint:recvcheck //using for validation
	entityType EntityType
	id         kernel.UUID

	guard guard.ConstructorGuard
}

func NewSoftDeleteEntityCommand(entityType EntityType, id kernel.UUID) (SoftDeleteEntityCommand, error) {
	if err := errors.Join(entityType.Validate(), id.Validate()); err != nil {
		return SoftDeleteEntityCommand{}, err
	}
	return SoftDeleteEntityCommand{
		entityType: entityType,
		id:         id,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SoftDeleteEntityCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteEntityCommandIsNotConstructed)
}

func (c SoftDeleteEntityCommand) EntityType() EntityType {
	return c.entityType
}

func (c SoftDeleteEntityCommand) ID() kernel.UUID {
	return c.id
}
