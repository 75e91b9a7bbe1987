package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Host)
	require.Equal(t, "8765", cfg.Port)
	require.Equal(t, 100, cfg.VolumePercent)
	require.Equal(t, 3000, cfg.ResumeSettleMs)
	require.Equal(t, 8000, cfg.LaunchSettleMs)
	require.Equal(t, 5000, cfg.ForceSettleMs)
	require.Empty(t, cfg.ActivationSchedule)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("TARGET_DEVICE_NAME", "Kitchen Speaker")
	t.Setenv("RESUME_SETTLE_MS", "10")
	t.Setenv("ACTIVATION_SCHEDULE", "0 7 * * *")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9100", cfg.Port)
	require.Equal(t, "Kitchen Speaker", cfg.TargetDeviceName)
	require.Equal(t, 10, cfg.ResumeSettleMs)
	require.Equal(t, "0 7 * * *", cfg.ActivationSchedule)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("RESUME_SETTLE_MS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.ResumeSettleMs)
}
