package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the base server configuration.
type Config struct {
	Host         string
	Port         string
	SQLiteDBPath string

	// Activation defaults, used to seed persisted settings on first read.
	TargetDeviceName string
	PlaybackURI      string
	VolumePercent    int

	// Resolver settle windows. The resolver polls the player after each
	// escalation action; these bound how long each escalation waits.
	ResumeSettleMs int
	LaunchSettleMs int
	ForceSettleMs  int

	// ActuatorTimeoutMs bounds each shell actuator invocation.
	ActuatorTimeoutMs int

	// CommandProfilePath optionally overrides the shell actuator argv
	// templates (YAML file). Empty means built-in defaults.
	CommandProfilePath string

	// ConfirmationCuePath is the sound file played once activation settles.
	ConfirmationCuePath string

	// ActivationSchedule is an optional standard cron expression that fires
	// the trigger on a schedule. Empty disables scheduled activation.
	ActivationSchedule string
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	return Config{
		Host:                envString("HOST", "0.0.0.0"),
		Port:                envString("PORT", "8765"),
		SQLiteDBPath:        envString("SQLITE_DB_PATH", "./data/spotify-remote.db"),
		TargetDeviceName:    envString("TARGET_DEVICE_NAME", "Echo Show 5"),
		PlaybackURI:         envString("PLAYBACK_URI", "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M"),
		VolumePercent:       envInt("VOLUME_PERCENT", 100),
		ResumeSettleMs:      envInt("RESUME_SETTLE_MS", 3000),
		LaunchSettleMs:      envInt("LAUNCH_SETTLE_MS", 8000),
		ForceSettleMs:       envInt("FORCE_SETTLE_MS", 5000),
		ActuatorTimeoutMs:   envInt("ACTUATOR_TIMEOUT_MS", 10000),
		CommandProfilePath:  envString("COMMAND_PROFILE_PATH", ""),
		ConfirmationCuePath: envString("CONFIRMATION_CUE_PATH", "./assets/chime.wav"),
		ActivationSchedule:  envString("ACTIVATION_SCHEDULE", ""),
	}, nil
}

func envString(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return strings.EqualFold(val, "true")
}
