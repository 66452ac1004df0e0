package venue

import "errors"

var (
	// ErrVenueNotFound is returned when no venue has the requested id
	ErrVenueNotFound = errors.New("venue.repository: venue not found")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("venue.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("venue.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("venue.repository: failed to scan row")
)
