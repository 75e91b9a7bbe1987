package server

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
	"github.com/strefethen/spotify-remote-go/internal/actuator/shell"
	"github.com/strefethen/spotify-remote-go/internal/api"
	"github.com/strefethen/spotify-remote-go/internal/apperrors"
	"github.com/strefethen/spotify-remote-go/internal/config"
	"github.com/strefethen/spotify-remote-go/internal/db"
	"github.com/strefethen/spotify-remote-go/internal/scheduler"
	"github.com/strefethen/spotify-remote-go/internal/settings"
	"github.com/strefethen/spotify-remote-go/internal/startup"
	"github.com/strefethen/spotify-remote-go/internal/status"
	"github.com/strefethen/spotify-remote-go/internal/workflow"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLoggerMiddleware logs all incoming HTTP requests
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, wrapped.status, time.Since(start).Round(time.Millisecond))
	})
}

// Actuators bundles the capability ports the workflow drives. Tests inject
// fakes here; production wiring builds the shell implementations.
type Actuators struct {
	Radio      actuator.RadioController
	Peripheral actuator.PeripheralConnector
	Audio      actuator.AudioController
	Media      actuator.MediaController
}

// Options controls server wiring.
type Options struct {
	// Actuators overrides the shell actuators (for tests).
	Actuators *Actuators
	// SettleWindows overrides the resolver waits (for tests).
	SettleWindows workflow.SettleWindows
	// Startup overrides the login registration manager (for tests).
	Startup settings.StartupRegistrar
	// DisableScheduler skips scheduled activation regardless of config.
	DisableScheduler bool
}

// NewHandler builds the HTTP handler and returns a shutdown function.
func NewHandler(cfg config.Config, options Options) (http.Handler, func(context.Context) error, error) {
	log.Printf("Using database: %s", cfg.SQLiteDBPath)
	dbPair, err := db.Init(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Use(requestLoggerMiddleware)
	router.Use(api.RequestIDMiddleware)
	router.Use(api.RecovererMiddleware)

	// Any unrecognized path/method yields a JSON not-found, never a workflow.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, apperrors.NewNotFoundError("Route not found", nil))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, apperrors.NewNotFoundError("Route not found", nil))
	})

	registerHealthRoutes(router)

	acts := options.Actuators
	if acts == nil {
		profile, err := shell.LoadProfile(cfg.CommandProfilePath)
		if err != nil {
			// Fall back to the defaults; a bad profile must not block startup.
			log.Printf("Command profile error: %v", err)
		}
		runner := shell.NewExecRunner(time.Duration(cfg.ActuatorTimeoutMs) * time.Millisecond)
		bluetooth := shell.NewBluetooth(runner, profile, nil)
		acts = &Actuators{
			Radio:      bluetooth,
			Peripheral: bluetooth,
			Audio:      shell.NewAudio(runner, profile, cfg.ConfirmationCuePath, nil),
			Media:      shell.NewMedia(runner, profile, nil),
		}
	}

	registrar := options.Startup
	if registrar == nil {
		manager, err := startup.NewManager("", nil)
		if err != nil {
			log.Printf("Startup registration unavailable: %v", err)
		} else {
			registrar = manager
		}
	}

	settingsService := settings.NewService(dbPair, cfg, registrar, nil)
	settings.RegisterRoutes(router, settingsService)
	settingsService.ReconcileAutostart()

	broadcaster := status.NewBroadcaster(nil)
	status.RegisterRoutes(router, broadcaster)

	windows := options.SettleWindows
	if windows == (workflow.SettleWindows{}) {
		windows = workflow.SettleWindows{
			Resume: time.Duration(cfg.ResumeSettleMs) * time.Millisecond,
			Launch: time.Duration(cfg.LaunchSettleMs) * time.Millisecond,
			Force:  time.Duration(cfg.ForceSettleMs) * time.Millisecond,
		}
	}
	resolver := workflow.NewResolver(acts.Media, windows, nil)
	executor := workflow.NewExecutor(acts.Radio, acts.Peripheral, acts.Audio, acts.Media, resolver, nil)
	gate := workflow.NewRunGate(nil)
	workflowService := workflow.NewService(gate, executor, settingsService, broadcaster, nil)
	workflow.RegisterRoutes(router, workflowService)

	schedulerService := scheduler.NewService(cfg.ActivationSchedule, workflowService, nil)
	if !options.DisableScheduler {
		if err := schedulerService.Start(); err != nil {
			log.Printf("Scheduled activation not started: %v", err)
		}
	}

	shutdown := func(ctx context.Context) error {
		schedulerService.Stop()
		return dbPair.Close()
	}

	return router, shutdown, nil
}

func registerHealthRoutes(router chi.Router) {
	router.Method(http.MethodGet, "/v1/health", api.Handler(func(w http.ResponseWriter, r *http.Request) error {
		response := map[string]any{
			"status":    "healthy",
			"service":   "spotify-remote",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		return api.WriteJSON(w, http.StatusOK, response)
	}))
	router.Method(http.MethodGet, "/v1/health/live", api.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return api.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}))
}
