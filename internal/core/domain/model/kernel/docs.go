// Package kernel holds the value objects shared by every fleet aggregate:
//   - UUID: identifiers for aggregates and for destinations inside a trip
//   - Location: a WGS84 point with an optional postal address
//   - SoftDelete: the deletion marker used by regions, villages, vehicles and drivers
//   - Window: a half-open time interval used for availability checks
package kernel
