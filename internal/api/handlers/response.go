// Package handlers holds the response helpers shared by the per-route handler packages.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

const (
	msgInternalError = "internal server error"
	msgUnavailable   = "service temporarily unavailable, retry later"
)

// Reasons that are not part of the domain taxonomy
const (
	ReasonUnauthenticated = "Unauthenticated"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error      string      `json:"error"`
	Reason     string      `json:"reason"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
}

// Suggestion is the next free slot offered with a TimeConflict rejection
type Suggestion struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// RespondJSON writes data as JSON with the given status
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError writes an error body
func RespondError(w http.ResponseWriter, status int, reason, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Reason: reason})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, domain.ReasonInvalidInput, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, ReasonUnauthenticated, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, domain.ReasonForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, domain.ReasonNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, domain.ReasonInternal, msgInternalError)
}

// StatusFor maps a reason code to its HTTP status
func StatusFor(reason string) int {
	switch reason {
	case domain.ReasonNotFound:
		return http.StatusNotFound
	case domain.ReasonTimeConflict, domain.ReasonTitleAlreadyInCity, domain.ReasonSeatUnavailable:
		return http.StatusConflict
	case domain.ReasonInsufficientBalance:
		return http.StatusPaymentRequired
	case domain.ReasonEmptySelection, domain.ReasonInvalidInterval, domain.ReasonInvalidInput:
		return http.StatusBadRequest
	case domain.ReasonForbidden:
		return http.StatusForbidden
	case ReasonUnauthenticated:
		return http.StatusUnauthorized
	case domain.ReasonUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError maps err to status and reason. Faults are reported without details.
// Returns the written status.
func RespondDomainError(w http.ResponseWriter, err error) int {
	reason := domain.ReasonOf(err)
	status := StatusFor(reason)

	message := err.Error()
	switch reason {
	case domain.ReasonInternal:
		message = msgInternalError
	case domain.ReasonUnavailable:
		w.Header().Set("Retry-After", "1")
		message = msgUnavailable
	}

	RespondError(w, status, reason, message)
	return status
}
