package services

import (
	"fmt"
	"strings"

	"fleet/internal/core/domain/model/driver"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/village"
	"fleet/internal/pkg/errs"
)

// Detachments lists the dependents whose references were cleared and
// therefore need to be saved.
type Detachments struct {
	Villages []*village.Village
	Drivers  []*driver.Driver
}

func (d Detachments) IsEmpty() bool {
	return len(d.Villages) == 0 && len(d.Drivers) == 0
}

// ReferenceCoordinator clears references held by dependents when a region,
// village or vehicle is soft-deleted. It runs inside the same unit of work
// as the deletion itself. Restoration never re-attaches anything.
//
//	region  -> villages.region, drivers.region
//	village -> drivers.village
//	vehicle -> drivers.vehicle (blocked while a holder is ON_DUTY)
type ReferenceCoordinator struct{}

func NewReferenceCoordinator() ReferenceCoordinator {
	return ReferenceCoordinator{}
}

func (ReferenceCoordinator) RegionDeleted(
	regionID kernel.UUID,
	villages []*village.Village,
	drivers []*driver.Driver,
) Detachments {
	var out Detachments
	for _, v := range villages {
		if v.DetachRegion(regionID) {
			out.Villages = append(out.Villages, v)
		}
	}
	for _, d := range drivers {
		if d.DetachRegion(regionID) {
			out.Drivers = append(out.Drivers, d)
		}
	}
	return out
}

func (ReferenceCoordinator) VillageDeleted(villageID kernel.UUID, drivers []*driver.Driver) Detachments {
	var out Detachments
	for _, d := range drivers {
		if d.DetachVillage(villageID) {
			out.Drivers = append(out.Drivers, d)
		}
	}
	return out
}

// VehicleDeleted fails with InvalidOperation, without touching any driver,
// when a live driver holding the vehicle is ON_DUTY. Soft-deleted drivers
// never block but still lose the reference.
func (ReferenceCoordinator) VehicleDeleted(vehicleID kernel.UUID, drivers []*driver.Driver) (Detachments, error) {
	var onDuty []string
	for _, d := range drivers {
		if vehicleID.RefersTo(d.VehicleID()) && d.IsOnDuty() && !d.IsDeleted() {
			onDuty = append(onDuty, d.ID().String())
		}
	}
	if len(onDuty) > 0 {
		return Detachments{}, errs.NewInvalidOperationError(fmt.Sprintf(
			"vehicle %s is held by on-duty driver(s) %s", vehicleID, strings.Join(onDuty, ", ")))
	}

	var out Detachments
	for _, d := range drivers {
		if d.DetachVehicle(vehicleID) {
			out.Drivers = append(out.Drivers, d)
		}
	}
	return out, nil
}
