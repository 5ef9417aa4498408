// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/culina/v2/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Error    string      `json:"error,omitempty"`
	Message  string      `json:"message,omitempty"`
	Fallback bool        `json:"fallback,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps an application error onto the response envelope.
func writeError(w http.ResponseWriter, logger *zap.Logger, appErr *apperrors.AppError) {
	writeJSON(w, logger, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   appErr.Message,
	})
}

// decodeJSON decodes a request body, rejecting unknown payload shapes
// early with a client error.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Invalid JSON body",
		})
		return false
	}
	return true
}

// HealthHandlers exposes the service health endpoint.
type HealthHandlers struct {
	version string
	logger  *zap.Logger
}

// NewHealthHandlers creates the health handlers.
func NewHealthHandlers(version string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{version: version, logger: logger}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
	})
}
