package queries

import (
	"context"
	"encoding/json"
	"errors"

	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetTripQueryHandler reads one trip. With a cache configured it is
// read-through: a hit skips the database, a miss fills the cache with the
// version it read, which the cache refuses once a newer commit invalidated
// the trip. The cache is advisory, so its failures fall back to the
// database silently.
type GetTripQueryHandler struct {
	db    *gorm.DB
	cache ports.TripCache
}

// NewGetTripQueryHandler accepts a nil cache.
func NewGetTripQueryHandler(db *gorm.DB, cache ports.TripCache) GetTripQueryHandler {
	return GetTripQueryHandler{db: db, cache: cache}
}

func (h GetTripQueryHandler) Handle(ctx context.Context, query GetTripQuery) (TripView, error) {
	if err := query.Validate(); err != nil {
		return TripView{}, err
	}

	if h.cache != nil {
		if payload, ok, err := h.cache.Get(ctx, query.TripID()); err == nil && ok {
			var view TripView
			if json.Unmarshal(payload, &view) == nil {
				return view, nil
			}
		}
	}

	var row tripRow
	err := h.db.WithContext(ctx).
		Table("trips").
		Where("id = ?", query.TripID().Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TripView{}, errs.NewObjectNotFoundError("trip", query.TripID())
	}
	if err != nil {
		return TripView{}, errs.NewStorageFailureError("get trip", err)
	}

	view := row.toView()
	if h.cache != nil {
		if payload, marshalErr := json.Marshal(view); marshalErr == nil {
			_ = h.cache.Set(ctx, query.TripID(), view.Version, payload)
		}
	}
	return view, nil
}
