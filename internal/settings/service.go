package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/strefethen/spotify-remote-go/internal/config"
	"github.com/strefethen/spotify-remote-go/internal/workflow"
)

const activationKey = "activation"

// ActivationSettings is the out-of-band configuration the trigger consumes:
// which device to drive, what to play, and how loud. Persisted so it survives
// restarts; the request body of a trigger never carries it.
type ActivationSettings struct {
	TargetDeviceName string    `json:"target_device_name"`
	PlaybackURI      string    `json:"playback_uri"`
	VolumePercent    int       `json:"volume_percent"`
	AutostartEnabled bool      `json:"autostart_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DBPair interface for dependency injection (matches db.DBPair).
type DBPair interface {
	Reader() *sql.DB
	Writer() *sql.DB
}

// StartupRegistrar manages launch-at-login registration. Consulted when the
// autostart setting changes and once at application start; never part of the
// activation workflow.
type StartupRegistrar interface {
	IsEnabled() bool
	SetEnabled(enabled bool) error
}

// Service provides activation settings management.
type Service struct {
	reader   *sql.DB
	writer   *sql.DB
	defaults ActivationSettings
	startup  StartupRegistrar
	logger   *log.Logger
}

// NewService creates a settings service. Defaults come from the environment
// config and are returned until the first PUT persists a row.
func NewService(dbPair DBPair, cfg config.Config, startup StartupRegistrar, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		reader: dbPair.Reader(),
		writer: dbPair.Writer(),
		defaults: ActivationSettings{
			TargetDeviceName: cfg.TargetDeviceName,
			PlaybackURI:      cfg.PlaybackURI,
			VolumePercent:    cfg.VolumePercent,
		},
		startup: startup,
		logger:  logger,
	}
}

// Get retrieves the current activation settings, falling back to the
// configured defaults when nothing has been persisted yet.
func (s *Service) Get() (*ActivationSettings, error) {
	var valueJSON string
	var updatedAt string

	err := s.reader.QueryRow(`
		SELECT value_json, updated_at
		FROM settings
		WHERE setting_key = ?
	`, activationKey).Scan(&valueJSON, &updatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			defaults := s.defaults
			defaults.UpdatedAt = time.Now().UTC()
			return &defaults, nil
		}
		return nil, err
	}

	var result ActivationSettings
	if err := json.Unmarshal([]byte(valueJSON), &result); err != nil {
		return nil, fmt.Errorf("parse settings row: %w", err)
	}
	result.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &result, nil
}

// UpdateInput is a partial update; nil fields keep their current value.
type UpdateInput struct {
	TargetDeviceName *string `json:"target_device_name,omitempty"`
	PlaybackURI      *string `json:"playback_uri,omitempty"`
	VolumePercent    *int    `json:"volume_percent,omitempty"`
	AutostartEnabled *bool   `json:"autostart_enabled,omitempty"`
}

// Update applies a partial update and persists the result. Changing the
// autostart flag also updates the login registration; a registration failure
// only logs, since the persisted intent is what the next start reconciles.
func (s *Service) Update(input UpdateInput) (*ActivationSettings, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	if input.TargetDeviceName != nil {
		current.TargetDeviceName = *input.TargetDeviceName
	}
	if input.PlaybackURI != nil {
		current.PlaybackURI = *input.PlaybackURI
	}
	if input.VolumePercent != nil {
		current.VolumePercent = *input.VolumePercent
	}
	if input.AutostartEnabled != nil {
		current.AutostartEnabled = *input.AutostartEnabled
	}
	current.UpdatedAt = time.Now().UTC()

	valueJSON, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}

	_, err = s.writer.Exec(`
		INSERT INTO settings (setting_key, value_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(setting_key) DO UPDATE SET
			value_json = excluded.value_json,
			updated_at = excluded.updated_at
	`, activationKey, string(valueJSON), current.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	if input.AutostartEnabled != nil && s.startup != nil {
		if err := s.startup.SetEnabled(*input.AutostartEnabled); err != nil {
			s.logger.Printf("Failed to update startup registration: %v", err)
		}
	}

	return current, nil
}

// ActivationRequest implements workflow.SettingsSource: the immutable request
// bound to a run at trigger time.
func (s *Service) ActivationRequest() (workflow.ActivationRequest, error) {
	current, err := s.Get()
	if err != nil {
		return workflow.ActivationRequest{}, err
	}
	return workflow.ActivationRequest{
		TargetDeviceName: current.TargetDeviceName,
		PlaybackURI:      current.PlaybackURI,
		VolumePercent:    current.VolumePercent,
	}, nil
}

// ReconcileAutostart aligns the login registration with the persisted
// autostart setting. Called once at application start.
func (s *Service) ReconcileAutostart() {
	if s.startup == nil {
		return
	}
	current, err := s.Get()
	if err != nil {
		s.logger.Printf("Failed to read settings for autostart reconcile: %v", err)
		return
	}
	if s.startup.IsEnabled() == current.AutostartEnabled {
		return
	}
	if err := s.startup.SetEnabled(current.AutostartEnabled); err != nil {
		s.logger.Printf("Failed to reconcile startup registration: %v", err)
	}
}
