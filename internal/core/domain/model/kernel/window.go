package kernel

import (
	"fmt"
	"time"

	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrWindowIsNotConstructed = errs.NewValueIsRequiredError("window must be created via NewWindow")

// Window is the half-open interval [start, end) a vehicle or driver would be
// committed for.
type Window struct {
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewWindow requires end to be strictly after start.
func NewWindow(start, end time.Time) (Window, error) {
	if start.IsZero() {
		return Window{}, errs.NewValueIsRequiredError("start")
	}
	if !end.After(start) {
		return Window{}, errs.NewValueIsInvalidErrorWithCause(
			"window", fmt.Errorf("end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}
	return Window{
		start: start.UTC(),
		end:   end.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (w Window) Validate() error {
	return w.guard.Validate(ErrWindowIsNotConstructed)
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
