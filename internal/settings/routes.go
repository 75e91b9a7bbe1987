package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/strefethen/spotify-remote-go/internal/api"
	"github.com/strefethen/spotify-remote-go/internal/apperrors"
)

// RegisterRoutes wires settings routes to the router.
func RegisterRoutes(router chi.Router, service *Service) {
	router.Method(http.MethodGet, "/v1/settings/activation", api.Handler(getActivationSettings(service)))
	router.Method(http.MethodPut, "/v1/settings/activation", api.Handler(updateActivationSettings(service)))
}

// getActivationSettings handles GET /v1/settings/activation
func getActivationSettings(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		current, err := service.Get()
		if err != nil {
			return apperrors.NewInternalError("Failed to get activation settings")
		}

		return api.WriteResource(w, http.StatusOK, formatSettings(current))
	}
}

// updateActivationSettings handles PUT /v1/settings/activation
func updateActivationSettings(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		var input UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return apperrors.NewValidationError("invalid request body", nil)
		}

		if input.VolumePercent != nil && (*input.VolumePercent < 0 || *input.VolumePercent > 100) {
			return apperrors.NewValidationError("volume_percent must be between 0 and 100", map[string]any{
				"volume_percent": *input.VolumePercent,
			})
		}
		if input.TargetDeviceName != nil && *input.TargetDeviceName == "" {
			return apperrors.NewValidationError("target_device_name must not be empty", nil)
		}

		current, err := service.Update(input)
		if err != nil {
			return apperrors.NewInternalError("Failed to update activation settings")
		}

		return api.WriteResource(w, http.StatusOK, formatSettings(current))
	}
}

func formatSettings(s *ActivationSettings) map[string]any {
	return map[string]any{
		"object":             "activation_settings",
		"target_device_name": s.TargetDeviceName,
		"playback_uri":       s.PlaybackURI,
		"volume_percent":     s.VolumePercent,
		"autostart_enabled":  s.AutostartEnabled,
		"updated_at":         s.UpdatedAt,
	}
}
