package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/strefethen/spotify-remote-go/internal/actuator"
)

// Executor runs the ordered activation stages against the actuator ports.
// Every stage failure is non-fatal: it is recorded as a StageOutcome and the
// next stage runs regardless. Partial success (volume fixed even though the
// Bluetooth connect failed) is still useful to the person at the other end,
// and no stage has a hard precondition enforced here — only a soft ordering.
type Executor struct {
	radio      actuator.RadioController
	peripheral actuator.PeripheralConnector
	audio      actuator.AudioController
	media      actuator.MediaController
	resolver   *Resolver
	logger     *log.Logger
}

// NewExecutor creates an Executor.
func NewExecutor(
	radio actuator.RadioController,
	peripheral actuator.PeripheralConnector,
	audio actuator.AudioController,
	media actuator.MediaController,
	resolver *Resolver,
	logger *log.Logger,
) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{
		radio:      radio,
		peripheral: peripheral,
		audio:      audio,
		media:      media,
		resolver:   resolver,
		logger:     logger,
	}
}

// Execute runs all seven stages in order and returns their outcomes plus the
// playback resolution result.
func (e *Executor) Execute(ctx context.Context, req ActivationRequest) ([]StageOutcome, ResolveResult) {
	stages := make([]StageOutcome, 0, 7)
	record := func(stage Stage, outcome actuator.Outcome) {
		if !outcome.OK {
			e.logger.Printf("Stage %s failed: %s", stage, outcome.Detail)
		}
		stages = append(stages, StageOutcome{
			Stage:     stage,
			Succeeded: outcome.OK,
			Detail:    outcome.Detail,
		})
	}

	record(StageEnableRadio, e.radio.Enable(ctx))
	record(StageConnectDevice, e.peripheral.Connect(ctx, req.TargetDeviceName))
	record(StageSwitchAudioOutput, e.audio.SwitchOutput(ctx, req.TargetDeviceName))
	record(StageSetVolume, e.setVolume(ctx, req.VolumePercent))

	resolve := e.resolver.Resolve(ctx, req.PlaybackURI)
	record(StageResolvePlayback, actuator.Outcome{
		OK:     resolve.State == StatePlaying,
		Detail: resolve.Summary(),
	})

	record(StageConfirmationCue, e.audio.PlayConfirmationCue(ctx))
	record(StageForegroundPlayer, e.media.BringToForeground(ctx))

	return stages, resolve
}

// setVolume unmutes and then normalizes the volume. Routing has already been
// switched by the previous stage, so the default sink is the target device.
func (e *Executor) setVolume(ctx context.Context, percent int) actuator.Outcome {
	unmute := e.audio.Unmute(ctx)
	set := e.audio.SetVolume(ctx, percent)
	if !unmute.OK {
		return actuator.Outcome{OK: false, Detail: fmt.Sprintf("unmute failed: %s", unmute.Detail)}
	}
	return set
}
