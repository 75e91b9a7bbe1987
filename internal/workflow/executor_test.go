package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRequest() ActivationRequest {
	return ActivationRequest{
		TargetDeviceName: "Echo Show 5",
		PlaybackURI:      "spotify:playlist:abc",
		VolumePercent:    100,
	}
}

func newTestExecutor(radio *fakeRadio, peripheral *fakePeripheral, audio *fakeAudio, media *fakeMedia) *Executor {
	return NewExecutor(radio, peripheral, audio, media, newTestResolver(media), nil)
}

func TestExecutor_AllStagesRun_InOrder(t *testing.T) {
	radio := &fakeRadio{}
	peripheral := &fakePeripheral{}
	audio := &fakeAudio{}
	media := &fakeMedia{playing: []bool{true}}
	executor := newTestExecutor(radio, peripheral, audio, media)

	stages, resolve := executor.Execute(context.Background(), testRequest())

	require.Len(t, stages, 7)
	order := make([]Stage, 0, len(stages))
	for _, stage := range stages {
		order = append(order, stage.Stage)
	}
	require.Equal(t, []Stage{
		StageEnableRadio,
		StageConnectDevice,
		StageSwitchAudioOutput,
		StageSetVolume,
		StageResolvePlayback,
		StageConfirmationCue,
		StageForegroundPlayer,
	}, order)

	require.Equal(t, StatePlaying, resolve.State)
	require.Equal(t, 1, media.checks)
	require.Equal(t, 1, audio.cues)
	require.Equal(t, 1, media.foregrounds)
	require.Equal(t, "Echo Show 5", peripheral.lastName)
	require.Equal(t, "Echo Show 5", audio.switchTarget)
	require.Equal(t, []int{100}, audio.volumes)
}

func TestExecutor_ConnectFailure_RemainingStagesStillRun(t *testing.T) {
	radio := &fakeRadio{}
	peripheral := &fakePeripheral{broken: true}
	audio := &fakeAudio{}
	media := &fakeMedia{playing: []bool{true}}
	executor := newTestExecutor(radio, peripheral, audio, media)

	stages, _ := executor.Execute(context.Background(), testRequest())

	require.Len(t, stages, 7)
	require.False(t, stages[1].Succeeded)
	require.Equal(t, "device out of range", stages[1].Detail)

	// Stages 3-7 still executed.
	require.Equal(t, 1, audio.switches)
	require.Equal(t, 1, audio.unmutes)
	require.Equal(t, []int{100}, audio.volumes)
	require.Equal(t, 1, audio.cues)
	require.Equal(t, 1, media.foregrounds)
}

func TestExecutor_EveryStageFailing_NeverAborts(t *testing.T) {
	radio := &fakeRadio{broken: true}
	peripheral := &fakePeripheral{broken: true}
	audio := &fakeAudio{unmuteBroken: true}
	media := &fakeMedia{playing: []bool{false}}
	executor := newTestExecutor(radio, peripheral, audio, media)

	stages, resolve := executor.Execute(context.Background(), testRequest())

	require.Len(t, stages, 7)
	require.False(t, stages[0].Succeeded)
	require.False(t, stages[1].Succeeded)
	require.False(t, stages[3].Succeeded)
	require.Equal(t, StateExhausted, resolve.State)
}

func TestExecutor_SetVolume_UnmuteFailureRecorded(t *testing.T) {
	audio := &fakeAudio{unmuteBroken: true}
	media := &fakeMedia{playing: []bool{true}}
	executor := newTestExecutor(&fakeRadio{}, &fakePeripheral{}, audio, media)

	stages, _ := executor.Execute(context.Background(), testRequest())

	require.False(t, stages[3].Succeeded)
	require.Contains(t, stages[3].Detail, "unmute failed")
	// Volume was still attempted after the failed unmute.
	require.Equal(t, []int{100}, audio.volumes)
}

func TestExecutor_ResolveOutcome_ReflectsExhaustion(t *testing.T) {
	media := &fakeMedia{playing: []bool{false}}
	executor := newTestExecutor(&fakeRadio{}, &fakePeripheral{}, &fakeAudio{}, media)

	stages, resolve := executor.Execute(context.Background(), testRequest())

	require.Equal(t, StateExhausted, resolve.State)
	require.False(t, stages[4].Succeeded)
	require.Contains(t, stages[4].Detail, "exhausted")
}
