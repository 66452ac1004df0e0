package domain

import (
	"errors"
	"fmt"
)

// Rejection kinds. Use-case packages wrap these so callers can match either the
// specific error or its kind with errors.Is.
var (
	ErrTimeConflict        = errors.New("time conflict with an existing screening")
	ErrTitleAlreadyInCity  = errors.New("title already screened in this city on this date")
	ErrSeatUnavailable     = errors.New("seat unavailable")
	ErrEmptySelection      = errors.New("no seats selected")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInterval     = errors.New("end must be after start")
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("access denied")

	// ErrUnavailable marks transient store failures; the caller may retry.
	ErrUnavailable = errors.New("store unavailable")
	// ErrDataIntegrity marks malformed stored data.
	ErrDataIntegrity = errors.New("stored data is malformed")
)

// Reason codes reported to callers.
const (
	ReasonTimeConflict        = "TimeConflict"
	ReasonTitleAlreadyInCity  = "TitleAlreadyInCity"
	ReasonSeatUnavailable     = "SeatUnavailable"
	ReasonEmptySelection      = "EmptySelection"
	ReasonInsufficientBalance = "InsufficientBalance"
	ReasonNotFound            = "NotFound"
	ReasonInvalidInterval     = "InvalidInterval"
	ReasonInvalidInput        = "InvalidInput"
	ReasonForbidden           = "Forbidden"
	ReasonUnavailable         = "Unavailable"
	ReasonInternal            = "Internal"
)

// SeatUnavailableError names the first requested seat that is already taken.
type SeatUnavailableError struct {
	Label string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSeatUnavailable.Error(), e.Label)
}

func (e *SeatUnavailableError) Is(target error) bool {
	return target == ErrSeatUnavailable
}

// ReasonOf maps an error to its reason code.
func ReasonOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeConflict):
		return ReasonTimeConflict
	case errors.Is(err, ErrTitleAlreadyInCity):
		return ReasonTitleAlreadyInCity
	case errors.Is(err, ErrSeatUnavailable):
		return ReasonSeatUnavailable
	case errors.Is(err, ErrEmptySelection):
		return ReasonEmptySelection
	case errors.Is(err, ErrInsufficientBalance):
		return ReasonInsufficientBalance
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrInvalidInterval):
		return ReasonInvalidInterval
	case errors.Is(err, ErrInvalidInput):
		return ReasonInvalidInput
	case errors.Is(err, ErrForbidden):
		return ReasonForbidden
	case errors.Is(err, ErrUnavailable):
		return ReasonUnavailable
	default:
		return ReasonInternal
	}
}

// IsRejection reports whether err is a business outcome rather than a fault.
func IsRejection(err error) bool {
	switch ReasonOf(err) {
	case ReasonInternal, ReasonUnavailable, "":
		return false
	default:
		return true
	}
}
