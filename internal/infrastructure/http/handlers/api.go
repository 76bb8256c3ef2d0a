// Package handlers provides the HTTP handlers for the JSON API.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse is the envelope for every JSON API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeAppError maps application errors onto HTTP responses. Unknown
// errors become opaque 500s so internals never leak to clients.
func writeAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		message := appErr.Message
		if appErr.Code == apperrors.CodeValidationFailed && appErr.Details != "" {
			message = appErr.Details
		}
		writeJSON(w, appErr.StatusCode(), APIResponse{
			Success: false,
			Error:   message,
		})
		return
	}
	logger.Error("Unhandled error", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   "Internal server error",
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   message,
	})
}
