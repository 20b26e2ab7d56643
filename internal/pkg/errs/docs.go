// Package errs provides the error kinds shared by the fleet trip service.
//
// Every kind follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrInvalidTransition, ...) used with errors.Is
//   - a struct carrying the details, reachable with errors.As
//   - New<Kind>Error and New<Kind>ErrorWithCause constructors
//   - Unwrap returning the sentinel
//
// Kinds used by the trip lifecycle and the reference cascade:
//   - ObjectNotFoundError: the trip, destination or entity does not exist
//   - InvalidReferenceError: a referenced vehicle/driver/village/product is missing or inactive
//   - InvalidTransitionError: a status change not allowed from the current status
//   - InvalidOperationError: an operation disallowed by the current state
//   - ConflictError: double booking, duplicate key or stale version
//   - StorageFailureError: the persistence layer failed
//
// Value validation kinds (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) are returned by constructors and commands.
package errs
