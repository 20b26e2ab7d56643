// Package services contains stateless domain services that span several
// aggregates:
//   - AvailabilityChecker: double-booking detection for vehicles and drivers
//   - ReferenceCoordinator: reference clearing when referenced records are soft-deleted
package services
