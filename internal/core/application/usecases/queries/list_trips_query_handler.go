package queries

import (
	"context"

	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListTripsQueryHandler struct {
	db *gorm.DB
}

func NewListTripsQueryHandler(db *gorm.DB) ListTripsQueryHandler {
	return ListTripsQueryHandler{db: db}
}

func (h ListTripsQueryHandler) Handle(ctx context.Context, query ListTripsQuery) (PageResult[TripView], error) {
	if err := query.Validate(); err != nil {
		return PageResult[TripView]{}, err
	}

	base := h.db.WithContext(ctx).Table("trips")
	f := query.Filter()
	if f.Status != nil {
		base = base.Where("status = ?", f.Status.String())
	}
	if f.VehicleID != nil {
		base = base.Where("vehicle_id = ?", f.VehicleID.Bytes())
	}
	if f.DriverID != nil {
		base = base.Where("driver_id = ?", f.DriverID.Bytes())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return PageResult[TripView]{}, errs.NewStorageFailureError("count trips", err)
	}

	var rows []tripRow
	err := applyPage(applyOrder(base.Session(&gorm.Session{}), query.sortBy), query.Page()).
		Find(&rows).Error
	if err != nil {
		return PageResult[TripView]{}, errs.NewStorageFailureError("list trips", err)
	}

	return newPageResult(tripViews(rows), query.Page(), total), nil
}
