// Package actuator defines the capability ports the activation workflow
// drives: short-range radio control, peripheral connection, audio routing and
// volume, and media-player control. Implementations live in subpackages; the
// workflow only sees these interfaces.
package actuator

import "context"

// Outcome is the typed result of one actuator call. Actuator calls are
// side-effecting and best-effort; Detail carries the human-readable trace
// that ends up in stage outcomes and the status surface.
type Outcome struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Success builds a successful outcome.
func Success(detail string) Outcome {
	return Outcome{OK: true, Detail: detail}
}

// Failure builds a failed outcome from an error.
func Failure(err error) Outcome {
	if err == nil {
		return Outcome{OK: false}
	}
	return Outcome{OK: false, Detail: err.Error()}
}

// RadioController enables the short-range radio. Enable is idempotent: a
// radio that is already on reports success.
type RadioController interface {
	Enable(ctx context.Context) Outcome
}

// PeripheralConnector connects a paired peripheral by name. Best-effort: the
// device may already be connected, or may not be in range.
type PeripheralConnector interface {
	Connect(ctx context.Context, deviceName string) Outcome
}

// AudioController routes and shapes the default audio output.
type AudioController interface {
	SwitchOutput(ctx context.Context, deviceName string) Outcome
	Unmute(ctx context.Context) Outcome
	// SetVolume clamps percent into [0,100] before applying it.
	SetVolume(ctx context.Context, percent int) Outcome
	PlayConfirmationCue(ctx context.Context) Outcome
}

// MediaController controls and inspects the media player.
type MediaController interface {
	// IsPlaying reports whether the player is confirmed playing. Any
	// uncertainty (player not running, session API unavailable) reports
	// false; absence of observable state is not evidence of playback.
	IsPlaying(ctx context.Context) bool
	TogglePlayPause(ctx context.Context) Outcome
	Launch(ctx context.Context, uri string) Outcome
	BringToForeground(ctx context.Context) Outcome
}
