package queries

import (
	"errors"
	"time"

	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrGetOverdueTripsQueryIsNotConstructed = errors.New(
	"GetOverdueTripsQuery must be created via NewGetOverdueTripsQuery constructor",
)

// GetOverdueTripsQuery finds SCHEDULED trips whose start lies more than
// grace before now.
type GetOverdueTripsQuery struct {
	now   time.Time
	grace time.Duration

	guard guard.ConstructorGuard
}

func NewGetOverdueTripsQuery(now time.Time, grace time.Duration) (GetOverdueTripsQuery, error) {
	var errList []error
	if now.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("now"))
	}
	if grace < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("grace", grace, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOverdueTripsQuery{}, err
	}
	return GetOverdueTripsQuery{now: now.UTC(), grace: grace, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOverdueTripsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueTripsQueryIsNotConstructed)
}

// Cutoff is the latest scheduled start that is not yet overdue.
func (q GetOverdueTripsQuery) Cutoff() time.Time {
	return q.now.Add(-q.grace)
}
