package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"love-diary-backend/internal/repository"
	"love-diary-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// statusFor maps domain errors to HTTP status codes. Validation failures
// are 400, precondition races 409, missing entities 404; everything else
// is a generic 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrEmptyLoveDate),
		errors.Is(err, services.ErrMissingTitle),
		errors.Is(err, services.ErrMissingDate),
		errors.Is(err, services.ErrMissingImage),
		errors.Is(err, services.ErrMissingReason),
		errors.Is(err, services.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotInvitee):
		return http.StatusForbidden
	case errors.Is(err, services.ErrSelfBind),
		errors.Is(err, services.ErrAlreadyPaired),
		errors.Is(err, services.ErrPartnerAlreadyPaired),
		errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrPhoneTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrWrongPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
