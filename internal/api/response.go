package api

import (
	"encoding/json"
	"net/http"

	"github.com/strefethen/spotify-remote-go/internal/apperrors"
)

// ErrorResponse wraps errors in Stripe format.
type ErrorResponse struct {
	Error apperrors.ErrorBody `json:"error"`
}

// WriteJSON sends a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteError serializes an AppError into the Stripe-style error response.
// Response format: {"error": {"type": "...", "code": "...", "message": "..."}}
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.EnsureAppError(err)

	response := ErrorResponse{
		Error: appErr.ErrorBody(),
	}

	_ = WriteJSON(w, appErr.StatusCode, response)
}

// WriteResource writes a single resource directly (Stripe-style, no wrapper).
// The resource should already have an "object" field set.
// Example: WriteResource(w, http.StatusOK, run)
// Produces: {"object": "activation_run", "id": "...", "status": "...", ...}
func WriteResource(w http.ResponseWriter, status int, resource any) error {
	return WriteJSON(w, status, resource)
}

// WriteAction writes an action result directly (Stripe-style, no wrapper).
// Example: WriteAction(w, http.StatusAccepted, result)
// Produces: {"object": "activation", "run_id": "...", "status": "started"}
func WriteAction(w http.ResponseWriter, status int, result any) error {
	return WriteJSON(w, status, result)
}
