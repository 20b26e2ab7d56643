package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrRestoreEntityCommandIsNotConstructed = errors.New(
	"RestoreEntityCommand must be created via NewRestoreEntityCommand constructor",
)

type RestoreEntityCommand struct { //nolint:recvcheck //using for validation
	entityType EntityType
	id         kernel.UUID

	guard guard.ConstructorGuard
}

func NewRestoreEntityCommand(entityType EntityType, id kernel.UUID) (RestoreEntityCommand, error) {
	if err := errors.Join(entityType.Validate(), id.Validate()); err != nil {
		return RestoreEntityCommand{}, err
	}
	return RestoreEntityCommand{
		entityType: entityType,
		id:         id,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RestoreEntityCommand) Validate() error {
	return c.guard.Validate(ErrRestoreEntityCommandIsNotConstructed)
}

func (c RestoreEntityCommand) EntityType() EntityType {
	return c.entityType
}

func (c RestoreEntityCommand) ID() kernel.UUID {
	return c.id
}
