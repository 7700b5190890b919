// Package handlers contains the HTTP layer: request decoding, response
// encoding and the mapping from service errors to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
)

// ApiResponse wraps data in the format expected by the frontend.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// writeServiceError maps a service error to an HTTP response. Validation,
// not-found and conflict errors carry their message to the client; anything
// else is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, apperrors.ErrFormNotLive):
		status, code = http.StatusConflict, "form_not_live"
	case errors.Is(err, apperrors.ErrSeedsDisabled):
		status, code = http.StatusForbidden, "seeds_disabled"
	default:
		logger.Error("Request failed", zap.Error(err))
		if werr := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "An internal error occurred"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	if werr := ErrorResponse(w, status, code, err.Error()); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}

// decodeJSON decodes the request body into dst, answering 400 itself on
// failure. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
		return false
	}
	return true
}
