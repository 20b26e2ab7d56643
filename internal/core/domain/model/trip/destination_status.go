package trip

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"
)

// DestinationStatus is the progress of a single stop.
//
//	PENDING ──> ARRIVED ──> COMPLETED
//	   └────────────────────────^
type DestinationStatus int

const (
	DestinationUnknown DestinationStatus = iota
	Pending
	Arrived
	DestinationCompleted
)

func getDestinationStatusStrings() map[DestinationStatus]string {
	return map[DestinationStatus]string{
		DestinationUnknown:   "UNKNOWN",
		Pending:              "PENDING",
		Arrived:              "ARRIVED",
		DestinationCompleted: "COMPLETED",
	}
}

func getDestinationTransitions() map[DestinationStatus][]DestinationStatus {
	//nolint:exhaustive // DestinationUnknown has no transitions
	return map[DestinationStatus][]DestinationStatus{
		Pending:              {Arrived, DestinationCompleted},
		Arrived:              {DestinationCompleted},
		DestinationCompleted: {},
	}
}

func ParseDestinationStatus(s string) (DestinationStatus, error) {
	name := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for status, str := range getDestinationStatusStrings() {
		if status != DestinationUnknown && str == name {
			return status, nil
		}
	}
	return DestinationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid destination status", s))
}

func (s DestinationStatus) Validate() error {
	if _, ok := getDestinationTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid destination status", s))
	}
	return nil
}

func (s DestinationStatus) String() string {
	if str, ok := getDestinationStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s DestinationStatus) CanTransitionTo(next DestinationStatus) bool {
	for _, allowed := range getDestinationTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s DestinationStatus) TransitionTo(next DestinationStatus) (DestinationStatus, error) {
	if !s.CanTransitionTo(next) {
		return DestinationUnknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
