package kernel

import (
	"errors"
	"time"
)

// ErrIsNotSoftDeleted is the cause attached when restoring a live record.
var ErrIsNotSoftDeleted = errors.New("record is not soft-deleted")

// SoftDelete is the deletion marker shared by regions, villages, vehicles
// and drivers. A record is deleted exactly when deletedAt is set.
type SoftDelete struct {
	deletedAt *time.Time
}

// RestoreSoftDelete rebuilds the marker from storage.
func RestoreSoftDelete(deletedAt *time.Time) SoftDelete {
	if deletedAt == nil {
		return SoftDelete{}
	}
	at := deletedAt.UTC()
	return SoftDelete{deletedAt: &at}
}

func (s SoftDelete) IsDeleted() bool {
	return s.deletedAt != nil
}

// DeletedAt returns a copy of the deletion timestamp, nil while live.
func (s SoftDelete) DeletedAt() *time.Time {
	if s.deletedAt == nil {
		return nil
	}
	at := *s.deletedAt
	return &at
}

// MarkDeleted stamps the marker. Marking an already deleted record is a
// no-op that keeps the original timestamp; the return value reports whether
// anything changed.
func (s *SoftDelete) MarkDeleted(now time.Time) bool {
	if s.deletedAt != nil {
		return false
	}
	at := now.UTC()
	s.deletedAt = &at
	return true
}

// Restore clears the marker. It fails with ErrIsNotSoftDeleted on a live record.
func (s *SoftDelete) Restore() error {
	if s.deletedAt == nil {
		return ErrIsNotSoftDeleted
	}
	s.deletedAt = nil
	return nil
}
