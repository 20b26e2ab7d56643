package queries

import (
	"context"

	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOverdueTripsQueryHandler struct {
	db *gorm.DB
}

func NewGetOverdueTripsQueryHandler(db *gorm.DB) GetOverdueTripsQueryHandler {
	return GetOverdueTripsQueryHandler{db: db}
}

// Handle returns overdue trips, oldest scheduled start first.
func (h GetOverdueTripsQueryHandler) Handle(ctx context.Context, query GetOverdueTripsQuery) ([]TripView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []tripRow
	err := h.db.WithContext(ctx).
		Table("trips").
		Where("status = ? AND scheduled_start < ?", trip.Scheduled.String(), query.Cutoff()).
		Order("scheduled_start ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.NewStorageFailureError("list overdue trips", err)
	}
	return tripViews(rows), nil
}
