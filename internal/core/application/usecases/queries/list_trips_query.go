package queries

import (
	"errors"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/guard"
)

var ErrListTripsQueryIsNotConstructed = errors.New(
	"ListTripsQuery must be created via NewListTripsQuery constructor",
)

// tripSortColumns is the sortBy allow-list for trips.
var tripSortColumns = map[string]string{
	"scheduledStart": "scheduled_start",
	"createdAt":      "created_at",
	"status":         "status",
}

// TripFilter narrows a listing. Nil fields do not filter.
type TripFilter struct {
	Status    *trip.Status
	VehicleID *kernel.UUID
	DriverID  *kernel.UUID
}

// ListTripsQuery pages through trips.
//
// Example:
//
//	q, err := NewListTripsQuery(TripFilter{Status: &scheduled}, 2, 20, "scheduledStart:desc")
type ListTripsQuery struct {
	filter TripFilter
	page   Page
	sortBy []sortField

	guard guard.ConstructorGuard
}

func NewListTripsQuery(filter TripFilter, page, limit int, sortBy string) (ListTripsQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListTripsQuery{}, err
		}
	}
	var idErrs []error
	if filter.VehicleID != nil {
		idErrs = append(idErrs, filter.VehicleID.Validate())
	}
	if filter.DriverID != nil {
		idErrs = append(idErrs, filter.DriverID.Validate())
	}
	p, pageErr := NewPage(page, limit)
	fields, sortErr := parseSortBy(sortBy, tripSortColumns)
	if err := errors.Join(append(idErrs, pageErr, sortErr)...); err != nil {
		return ListTripsQuery{}, err
	}

	return ListTripsQuery{
		filter: filter,
		page:   p,
		sortBy: fields,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListTripsQuery) Validate() error {
	return q.guard.Validate(ErrListTripsQueryIsNotConstructed)
}

func (q ListTripsQuery) Filter() TripFilter {
	return q.filter
}

func (q ListTripsQuery) Page() Page {
	return q.page
}

// SortColumns lists the resolved ORDER BY columns, mostly for tests.
func (q ListTripsQuery) SortColumns() []string {
	out := make([]string, 0, len(q.sortBy))
	for _, f := range q.sortBy {
		dir := "asc"
		if f.desc {
			dir = "desc"
		}
		out = append(out, strings.Join([]string{f.column, dir}, " "))
	}
	return out
}
