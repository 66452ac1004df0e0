package patron

import "errors"

var (
	// ErrPatronNotFound is returned when the patron has no balance record
	ErrPatronNotFound = errors.New("patron.repository: patron not found")

	// ErrInsufficientFunds is returned when a debit would make the balance negative
	ErrInsufficientFunds = errors.New("patron.repository: insufficient funds")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("patron.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("patron.repository: failed to execute query")
)
