package ports

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// TripChange describes a trip written by a committed unit of work. Trip is
// nil when the trip was deleted.
type TripChange struct {
	TripID kernel.UUID
	Trip   *trip.Trip
}

// TripChangeNotifier is told about trip changes after commit. It is
// best-effort: an error is reported to the caller's logs and never undoes
// the commit.
type TripChangeNotifier interface {
	TripsChanged(ctx context.Context, changes []TripChange) error
}

// TripCache holds serialized trip read models keyed by trip id. Writes are
// fenced by trip version: after Invalidate(id, v) a Set carrying a version
// below v is ignored, so a fill that read the row before a commit cannot
// overwrite the invalidation that followed the commit.
type TripCache interface {
	Get(ctx context.Context, id kernel.UUID) ([]byte, bool, error)
	Set(ctx context.Context, id kernel.UUID, version int64, payload []byte) error
	Invalidate(ctx context.Context, id kernel.UUID, committed int64) error
}
