package vehicle

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"
)

// Status is the operational state of a vehicle. Vehicles move freely
// between the known states; there is no transition table.
type Status int

const (
	Unknown Status = iota
	Available
	InUse
	Maintenance
	OutOfService
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		Available:    "AVAILABLE",
		InUse:        "IN_USE",
		Maintenance:  "MAINTENANCE",
		OutOfService: "OUT_OF_SERVICE",
	}
}

func ParseStatus(s string) (Status, error) {
	name := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid vehicle status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > OutOfService {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
