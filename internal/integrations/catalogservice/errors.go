package catalogservice

import "errors"

var (
	// ErrTitleNotFound is returned when the catalog has no such title
	ErrTitleNotFound = errors.New("catalogservice client: title not found")

	// ErrInternal is returned when the request could not be sent
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse is returned when the catalog answered with something unexpected
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
