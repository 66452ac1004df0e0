package screening

import "errors"

var (
	// ErrScreeningNotFound is returned when no screening has the requested id
	ErrScreeningNotFound = errors.New("screening.repository: screening not found")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("screening.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("screening.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("screening.repository: failed to scan row")
)
