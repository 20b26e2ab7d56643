package queries

import (
	"errors"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var (
	ErrGetEntityQueryIsNotConstructed = errors.New(
		"GetEntityQuery must be created via NewGetEntityQuery constructor",
	)
	ErrListEntitiesQueryIsNotConstructed = errors.New(
		"ListEntitiesQuery must be created via NewListEntitiesQuery constructor",
	)
)

// GetEntityQuery reads one region, village, vehicle, driver or product by
// id. Products ignore the scope since they are never soft-deleted.
type GetEntityQuery struct {
	id    kernel.UUID
	scope Scope

	guard guard.ConstructorGuard
}

func NewGetEntityQuery(id kernel.UUID, scope Scope) (GetEntityQuery, error) {
	if err := id.Validate(); err != nil {
		return GetEntityQuery{}, err
	}
	return GetEntityQuery{id: id, scope: scope, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEntityQuery) Validate() error {
	return q.guard.Validate(ErrGetEntityQueryIsNotConstructed)
}

func (q GetEntityQuery) ID() kernel.UUID {
	return q.id
}

func (q GetEntityQuery) Scope() Scope {
	return q.scope
}

// ListEntitiesQuery pages through one entity table. sortBy is checked
// against the table's allow-list by the handler.
type ListEntitiesQuery[F EntityFilter] struct {
	scope  Scope
	filter F
	page   Page
	sortBy string

	guard guard.ConstructorGuard
}

func NewListEntitiesQuery[F EntityFilter](scope Scope, filter F, page, limit int, sortBy string) (ListEntitiesQuery[F], error) {
	p, err := NewPage(page, limit)
	if err != nil {
		return ListEntitiesQuery[F]{}, err
	}
	return ListEntitiesQuery[F]{
		scope:  scope,
		filter: filter,
		page:   p,
		sortBy: strings.TrimSpace(sortBy),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListEntitiesQuery[F]) Validate() error {
	return q.guard.Validate(ErrListEntitiesQueryIsNotConstructed)
}

func (q ListEntitiesQuery[F]) Scope() Scope {
	return q.scope
}

func (q ListEntitiesQuery[F]) Filter() F {
	return q.filter
}

func (q ListEntitiesQuery[F]) Page() Page {
	return q.page
}

func (q ListEntitiesQuery[F]) SortBy() string {
	return q.sortBy
}
