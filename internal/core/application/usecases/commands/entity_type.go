package commands

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"
)

// EntityType names the soft-deletable entity kinds.
type EntityType int

const (
	UnknownEntity EntityType = iota
	RegionEntity
	VillageEntity
	VehicleEntity
	DriverEntity
)

func getEntityTypeStrings() map[EntityType]string {
	return map[EntityType]string{
		UnknownEntity: "unknown",
		RegionEntity:  "region",
		VillageEntity: "village",
		VehicleEntity: "vehicle",
		DriverEntity:  "driver",
	}
}

// ParseEntityType accepts singular and plural names in any case.
func ParseEntityType(s string) (EntityType, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for t, str := range getEntityTypeStrings() {
		if t != UnknownEntity && str == name {
			return t, nil
		}
	}
	return UnknownEntity, errs.NewValueIsInvalidErrorWithCause("entityType",
		fmt.Errorf("%q is not a soft-deletable entity", s))
}

func (t EntityType) Validate() error {
	if t <= UnknownEntity || t > DriverEntity {
		return errs.NewValueIsInvalidErrorWithCause("entityType", fmt.Errorf("%d is not a soft-deletable entity", t))
	}
	return nil
}

func (t EntityType) String() string {
	if str, ok := getEntityTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
