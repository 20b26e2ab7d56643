package driver

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"
)

// Status is the duty state of a driver. An ON_DUTY driver pins the
// vehicle it holds: the vehicle cannot be deleted.
type Status int

const (
	Unknown Status = iota
	Available
	OnDuty
	OffDuty
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Available: "AVAILABLE",
		OnDuty:    "ON_DUTY",
		OffDuty:   "OFF_DUTY",
	}
}

// ParseStatus accepts the canonical names and the dashed lower-case
// spelling ("on-duty") older clients send.
func ParseStatus(s string) (Status, error) {
	name := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid driver status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > OffDuty {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
