package workflow

import "time"

// RunStatus is the lifecycle state of an activation run.
type RunStatus string

const (
	RunStatusIdle      RunStatus = "idle"
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Stage identifies one step of the activation workflow.
type Stage string

const (
	StageEnableRadio       Stage = "enable_radio"
	StageConnectDevice     Stage = "connect_device"
	StageSwitchAudioOutput Stage = "switch_audio_output"
	StageSetVolume         Stage = "set_volume"
	StageResolvePlayback   Stage = "resolve_playback"
	StageConfirmationCue   Stage = "confirmation_cue"
	StageForegroundPlayer  Stage = "foreground_player"
)

// StageOutcome records how one stage went. Stage failures are informational:
// the workflow always proceeds to the next stage.
type StageOutcome struct {
	Stage     Stage  `json:"stage"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail,omitempty"`
}

// ActivationRequest is the immutable input to one workflow run, bound from
// the persisted settings at trigger time. Settings changes after the trigger
// do not affect an in-flight run.
type ActivationRequest struct {
	TargetDeviceName string `json:"target_device_name"`
	PlaybackURI      string `json:"playback_uri"`
	VolumePercent    int    `json:"volume_percent"`
}

// Run is the bookkeeping record for one activation. Exactly one run may be
// in status Running at a time; the RunGate enforces this.
type Run struct {
	RunID       string            `json:"run_id"`
	Status      RunStatus         `json:"status"`
	Request     ActivationRequest `json:"request"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Stages      []StageOutcome    `json:"stages"`
	Playing     bool              `json:"playing"`
	LastError   string            `json:"last_error,omitempty"`
}
