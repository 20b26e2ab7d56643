// Package trip implements the Trip aggregate root: a planned vehicle+driver
// run from a start location through an ordered list of destinations.
//
// The package includes:
//   - Trip: the aggregate root owning its destinations and lifecycle
//   - Destination: a stop inside a trip, addressable only through its trip
//   - Status / DestinationStatus: table-driven state machines
//
// Key business rules:
//   - A trip has at least one destination, each with at least one product line
//   - Trip status follows SCHEDULED -> IN_PROGRESS -> COMPLETED
//   - CANCELLED is reserved: it is terminal and nothing transitions into it
//   - Destinations follow PENDING -> ARRIVED -> COMPLETED (ARRIVED may be skipped)
//   - Destinations of a finished trip are frozen
//   - Only SCHEDULED trips can be deleted
//   - Every persisted change bumps the trip version used for optimistic concurrency
package trip
