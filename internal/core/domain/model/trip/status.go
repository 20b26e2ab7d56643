package trip

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"
)

// Status is the lifecycle state of a trip.
//
// State transitions:
//
//	SCHEDULED ──> IN_PROGRESS ──> COMPLETED
//
//	CANCELLED (reserved, terminal, unreachable)
type Status int

const (
	// Unknown catches zero values and unparseable input.
	Unknown Status = iota
	Scheduled
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Scheduled:  "SCHEDULED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

// getTransitions is the single source of truth for legal trip moves.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no transitions
	return map[Status][]Status{
		Scheduled:  {InProgress},
		InProgress: {Completed},
		Completed:  {},
		Cancelled:  {},
	}
}

// ParseStatus maps the wire name (case-insensitive, "-" for "_") to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid trip status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid trip status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the trip is finished. Terminal trips never
// block availability and have frozen destinations.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether next is reachable in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is legal, or InvalidTransition
// carrying both state names. Same-state moves are illegal.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
