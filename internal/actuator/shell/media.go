package shell

import (
	"context"
	"log"
	"strings"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
)

// Media controls the Spotify desktop client through playerctl and the
// spotify: URI scheme. Implements actuator.MediaController.
type Media struct {
	runner  Runner
	profile Profile
	logger  *log.Logger
}

// NewMedia creates a Media actuator.
func NewMedia(runner Runner, profile Profile, logger *log.Logger) *Media {
	if logger == nil {
		logger = log.Default()
	}
	return &Media{runner: runner, profile: profile, logger: logger}
}

// IsPlaying queries playerctl for the player status. Any failure (player not
// running, no MPRIS session) reports false rather than an error: the caller
// escalates on "not playing" and absence of state is not playback.
func (m *Media) IsPlaying(ctx context.Context) bool {
	out, err := run(ctx, m.runner, m.profile.PlayerStatus)
	if err != nil {
		m.logger.Printf("player status unavailable: %v", err)
		return false
	}
	return strings.EqualFold(strings.TrimSpace(out), "Playing")
}

// TogglePlayPause sends the stateless play/pause toggle.
func (m *Media) TogglePlayPause(ctx context.Context) actuator.Outcome {
	if _, err := run(ctx, m.runner, m.profile.PlayerToggle); err != nil {
		return actuator.Failure(err)
	}
	return actuator.Success("play/pause sent")
}

// Launch opens the playback URI, deep-linking the player into the configured
// playlist. Starts the player if it is not running.
func (m *Media) Launch(ctx context.Context, uri string) actuator.Outcome {
	if _, err := run(ctx, m.runner, m.profile.LaunchURI, uri); err != nil {
		return actuator.Failure(err)
	}
	return actuator.Success("launched " + uri)
}

// BringToForeground raises the player window.
func (m *Media) BringToForeground(ctx context.Context) actuator.Outcome {
	if _, err := run(ctx, m.runner, m.profile.Foreground); err != nil {
		return actuator.Failure(err)
	}
	return actuator.Success("player foregrounded")
}
