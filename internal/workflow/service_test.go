package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService(peripheral *fakePeripheral, media *fakeMedia, status *fakeStatus) *Service {
	executor := NewExecutor(&fakeRadio{}, peripheral, &fakeAudio{}, media, newTestResolver(media), nil)
	settings := &fakeSettings{req: testRequest()}
	return NewService(NewRunGate(nil), executor, settings, status, nil)
}

func waitForCompletion(t *testing.T, service *Service) *Run {
	t.Helper()
	require.Eventually(t, func() bool {
		run := service.LastRun()
		return run != nil && run.Status != RunStatusRunning
	}, 2*time.Second, 5*time.Millisecond)
	return service.LastRun()
}

func TestService_Trigger_AcknowledgesImmediately(t *testing.T) {
	blockCh := make(chan struct{})
	peripheral := &fakePeripheral{blockCh: blockCh}
	service := newTestService(peripheral, &fakeMedia{playing: []bool{true}}, &fakeStatus{})

	run, err := service.Trigger()
	require.NoError(t, err)
	require.NotEmpty(t, run.RunID)
	require.Equal(t, RunStatusRunning, run.Status)
	require.True(t, service.Busy())

	close(blockCh)
	final := waitForCompletion(t, service)
	require.Equal(t, RunStatusSucceeded, final.Status)
	require.False(t, service.Busy())
}

func TestService_Trigger_WhileRunning_Rejected(t *testing.T) {
	blockCh := make(chan struct{})
	peripheral := &fakePeripheral{blockCh: blockCh}
	media := &fakeMedia{playing: []bool{true}}
	service := newTestService(peripheral, media, &fakeStatus{})

	first, err := service.Trigger()
	require.NoError(t, err)

	before := service.LastRun()

	_, err = service.Trigger()
	require.ErrorIs(t, err, ErrRunInProgress)

	// The in-flight run is untouched: same run id, same status.
	after := service.LastRun()
	require.Equal(t, first.RunID, after.RunID)
	require.Equal(t, before.Status, after.Status)

	close(blockCh)
	waitForCompletion(t, service)

	// The rejected trigger caused no extra actuator calls.
	require.Equal(t, 1, peripheral.connects)
}

func TestService_Trigger_AllowedAgainAfterCompletion(t *testing.T) {
	service := newTestService(&fakePeripheral{}, &fakeMedia{playing: []bool{true}}, &fakeStatus{})

	first, err := service.Trigger()
	require.NoError(t, err)
	waitForCompletion(t, service)

	second, err := service.Trigger()
	require.NoError(t, err)
	require.NotEqual(t, first.RunID, second.RunID)
	waitForCompletion(t, service)
}

func TestService_Run_RecordsAllStageOutcomes(t *testing.T) {
	status := &fakeStatus{}
	media := &fakeMedia{playing: []bool{true}}
	service := newTestService(&fakePeripheral{}, media, status)

	_, err := service.Trigger()
	require.NoError(t, err)
	run := waitForCompletion(t, service)

	require.Equal(t, RunStatusSucceeded, run.Status)
	require.Len(t, run.Stages, 7)
	require.True(t, run.Playing)
	require.NotNil(t, run.CompletedAt)

	lines := status.all()
	require.NotEmpty(t, lines)
	require.Contains(t, lines[0], "Activating")
	require.Contains(t, lines[len(lines)-1], "Ready — playing on Echo Show 5")
}

func TestService_StageFailure_StillSucceedsWithIssueCount(t *testing.T) {
	status := &fakeStatus{}
	media := &fakeMedia{playing: []bool{true}}
	service := newTestService(&fakePeripheral{broken: true}, media, status)

	_, err := service.Trigger()
	require.NoError(t, err)
	run := waitForCompletion(t, service)

	require.Equal(t, RunStatusSucceeded, run.Status)

	lines := status.all()
	require.Contains(t, lines[len(lines)-1], "1 stage issue")
}

func TestService_ActuatorPanic_ClearsGateAndFailsRun(t *testing.T) {
	status := &fakeStatus{}
	peripheral := &fakePeripheral{panicWith: "bluetoothctl wedged"}
	service := newTestService(peripheral, &fakeMedia{playing: []bool{true}}, status)

	_, err := service.Trigger()
	require.NoError(t, err)
	run := waitForCompletion(t, service)

	require.Equal(t, RunStatusFailed, run.Status)
	require.Contains(t, run.LastError, "bluetoothctl wedged")
	require.False(t, service.Busy())

	// The gate is usable again.
	_, err = service.Trigger()
	require.NoError(t, err)
	waitForCompletion(t, service)
}

func TestService_SettingsFailure_ReleasesGate(t *testing.T) {
	executor := NewExecutor(&fakeRadio{}, &fakePeripheral{}, &fakeAudio{}, &fakeMedia{}, newTestResolver(&fakeMedia{}), nil)
	settings := &fakeSettings{err: errSettingsUnavailable}
	service := NewService(NewRunGate(nil), executor, settings, &fakeStatus{}, nil)

	_, err := service.Trigger()
	require.Error(t, err)
	require.False(t, service.Busy())
}

func TestService_LastRun_NilBeforeFirstTrigger(t *testing.T) {
	service := newTestService(&fakePeripheral{}, &fakeMedia{}, &fakeStatus{})
	require.Nil(t, service.LastRun())
}
