package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/dto"
	"github.com/bluezonesai/fake-bank-turso/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes. Transient storage
// failures come back 503 so clients know to retry; everything the caller did
// wrong is a 4xx.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidCustomerCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrAccountNotOwned),
		errors.Is(err, domain.ErrSourceAccountNotFound),
		errors.Is(err, domain.ErrDestinationAccountNotFound),
		errors.Is(err, domain.ErrBusinessAccountNotFound),
		errors.Is(err, domain.ErrCustomerAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrMissingReason),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidPIN),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrCustomerInsufficientFunds):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrTransient):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
