package shell

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
)

// Audio routes and shapes the default output via pactl. Implements
// actuator.AudioController.
type Audio struct {
	runner  Runner
	profile Profile
	cuePath string
	logger  *log.Logger
}

// NewAudio creates an Audio actuator. cuePath is the confirmation sound file.
func NewAudio(runner Runner, profile Profile, cuePath string, logger *log.Logger) *Audio {
	if logger == nil {
		logger = log.Default()
	}
	return &Audio{runner: runner, profile: profile, cuePath: cuePath, logger: logger}
}

// sink is one PulseAudio sink from `pactl list sinks`.
type sink struct {
	Name        string
	Description string
}

// SwitchOutput makes the sink matching deviceName the default output.
// Matching runs against the sink description first (human-readable, e.g.
// "Echo Show 5"), then the internal sink name.
func (a *Audio) SwitchOutput(ctx context.Context, deviceName string) actuator.Outcome {
	out, err := run(ctx, a.runner, a.profile.ListSinks)
	if err != nil {
		return actuator.Failure(err)
	}

	target, found := findSink(parseSinks(out), deviceName)
	if !found {
		return actuator.Failure(fmt.Errorf("no audio sink matches %q", deviceName))
	}

	if _, err := run(ctx, a.runner, a.profile.SetDefaultSink, target.Name); err != nil {
		return actuator.Failure(fmt.Errorf("set default sink %s: %w", target.Name, err))
	}
	return actuator.Success(fmt.Sprintf("default output is now %s", target.Description))
}

// Unmute unmutes the default sink.
func (a *Audio) Unmute(ctx context.Context) actuator.Outcome {
	if _, err := run(ctx, a.runner, a.profile.UnmuteSink); err != nil {
		return actuator.Failure(err)
	}
	return actuator.Success("unmuted")
}

// SetVolume sets the default sink volume, clamping percent into [0,100].
func (a *Audio) SetVolume(ctx context.Context, percent int) actuator.Outcome {
	percent = actuator.ClampPercent(percent)
	if _, err := run(ctx, a.runner, a.profile.SetSinkVolume, fmt.Sprintf("%d%%", percent)); err != nil {
		return actuator.Failure(err)
	}
	return actuator.Success(fmt.Sprintf("volume %d%%", percent))
}

// PlayConfirmationCue plays the configured cue file on the default sink.
func (a *Audio) PlayConfirmationCue(ctx context.Context) actuator.Outcome {
	if _, err := run(ctx, a.runner, a.profile.PlayCue, a.cuePath); err != nil {
		return actuator.Failure(err)
	}
	return actuator.Success("confirmation cue played")
}

// parseSinks extracts sink name/description pairs from `pactl list sinks`
// output. Relevant lines:
//
//	Name: bluez_output.AA_BB_CC_DD_EE_FF.1
//	Description: Echo Show 5
func parseSinks(output string) []sink {
	var sinks []sink
	var current *sink
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Name: "):
			sinks = append(sinks, sink{Name: strings.TrimPrefix(line, "Name: ")})
			current = &sinks[len(sinks)-1]
		case strings.HasPrefix(line, "Description: ") && current != nil:
			current.Description = strings.TrimPrefix(line, "Description: ")
		}
	}
	return sinks
}

// findSink returns the first sink matching the target device name.
func findSink(sinks []sink, target string) (sink, bool) {
	for _, s := range sinks {
		if actuator.MatchesDeviceName(s.Description, target) || actuator.MatchesDeviceName(s.Name, target) {
			return s, true
		}
	}
	return sink{}, false
}
