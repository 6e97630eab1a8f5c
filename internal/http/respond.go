package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mahedy25/storefront-api/internal/apperr"
)

// ActionResponse is the uniform success/failure shape every user-facing
// action resolves to. Nothing propagates past the handler boundary as an
// unhandled fault.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ActionResponse{Success: false, Message: message})
}

// respondActionError converts a service error into the uniform failure shape,
// mapping error kinds onto HTTP statuses.
func respondActionError(w http.ResponseWriter, err error) {
	var status int
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuthentication:
		status = http.StatusUnauthorized
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindDownstream:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		slog.Error("action failed", "error", err)
	}
	respondFailure(w, status, apperr.UserMessage(err))
}
