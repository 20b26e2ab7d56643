// Package pgutil holds the pieces every gorm repository shares: error
// classification and the column layout of locations and addresses.
package pgutil

import (
	"errors"

	"fleet/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation recognizes duplicate keys from either driver gorm may
// be running on: lib/pq in the service, pgx in tests.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

// WrapWrite classifies an insert or update error. Duplicate keys become
// Conflict on resource/id, everything else StorageFailure.
func WrapWrite(op, resource string, id any, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause(resource, id, "duplicate key", err)
	}
	return errs.NewStorageFailureError(op, err)
}

// WrapRead classifies a lookup error: a missing row is NotFound.
func WrapRead(op, resource string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(resource, id)
	}
	return errs.NewStorageFailureError(op, err)
}

// Wrap marks any non-nil error as a storage failure.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewStorageFailureError(op, err)
}
