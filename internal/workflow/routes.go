package workflow

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/strefethen/spotify-remote-go/internal/api"
	"github.com/strefethen/spotify-remote-go/internal/apperrors"
)

// RegisterRoutes wires the trigger and run routes to the router.
func RegisterRoutes(router chi.Router, service *Service) {
	router.Method(http.MethodPost, "/v1/trigger", api.Handler(triggerHandler(service)))
	router.Method(http.MethodGet, "/v1/runs/last", api.Handler(lastRunHandler(service)))
}

// triggerHandler handles POST /v1/trigger.
// Fire-and-acknowledge: the 202 is sent before the workflow completes and the
// protocol has no completion callback. Callers poll /v1/runs/last or watch
// the status feed.
func triggerHandler(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		run, err := service.Trigger()
		if err != nil {
			if errors.Is(err, ErrRunInProgress) {
				return apperrors.NewWorkflowBusyError()
			}
			return apperrors.NewInternalError("Failed to start activation")
		}

		return api.WriteAction(w, http.StatusAccepted, map[string]any{
			"object": "activation",
			"run_id": run.RunID,
			"status": "started",
			"target": run.Request.TargetDeviceName,
		})
	}
}

// lastRunHandler handles GET /v1/runs/last.
func lastRunHandler(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		run := service.LastRun()
		if run == nil {
			return apperrors.NewAppError(apperrors.ErrorCodeNoRunsYet, "No activation has run yet", 404, nil)
		}

		return api.WriteResource(w, http.StatusOK, map[string]any{
			"object":       "activation_run",
			"run_id":       run.RunID,
			"status":       run.Status,
			"request":      run.Request,
			"started_at":   run.StartedAt,
			"completed_at": run.CompletedAt,
			"stages":       run.Stages,
			"playing":      run.Playing,
			"last_error":   run.LastError,
		})
	}
}
