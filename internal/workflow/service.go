package workflow

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SettingsSource supplies the activation request bound at trigger time.
type SettingsSource interface {
	ActivationRequest() (ActivationRequest, error)
}

// StatusSink receives human-readable status updates for the display surface.
type StatusSink interface {
	Set(status string)
}

// Service accepts triggers, enforces the single-run discipline, and runs the
// workflow on a detached goroutine. The trigger response never waits for the
// workflow: the caller gets an immediate acknowledgement and the run outcome
// surfaces only through the status sink and the last-run record.
type Service struct {
	gate     *RunGate
	executor *Executor
	settings SettingsSource
	status   StatusSink
	logger   *log.Logger

	mu      sync.Mutex
	lastRun *Run
}

// NewService creates a workflow Service.
func NewService(gate *RunGate, executor *Executor, settings SettingsSource, status StatusSink, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		gate:     gate,
		executor: executor,
		settings: settings,
		status:   status,
		logger:   logger,
	}
}

// Trigger starts an activation run. Returns ErrRunInProgress if a run already
// holds the gate; the in-flight run is untouched. On success the returned Run
// is a snapshot taken before the detached execution starts.
func (s *Service) Trigger() (*Run, error) {
	if !s.gate.TryAcquire() {
		return nil, ErrRunInProgress
	}

	req, err := s.settings.ActivationRequest()
	if err != nil {
		s.gate.Release()
		return nil, fmt.Errorf("load activation settings: %w", err)
	}

	run := &Run{
		RunID:     uuid.NewString(),
		Status:    RunStatusRunning,
		Request:   req,
		StartedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.lastRun = run
	s.mu.Unlock()

	s.logger.Printf("Activation %s started (target=%q)", run.RunID, req.TargetDeviceName)
	s.status.Set(fmt.Sprintf("Activating %s…", req.TargetDeviceName))

	// Snapshot before detaching; the goroutine owns run from here on.
	accepted := snapshotRun(run)
	go s.execute(run, req)

	return accepted, nil
}

// execute runs the workflow to completion. The gate is released on every exit
// path, including panics from a misbehaving actuator.
func (s *Service) execute(run *Run, req ActivationRequest) {
	defer s.gate.Release()
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Printf("Activation %s panicked: %v", run.RunID, recovered)
			s.complete(run, nil, ResolveResult{}, fmt.Sprintf("unexpected fault: %v", recovered))
			s.status.Set("Activation failed unexpectedly")
		}
	}()

	stages, resolve := s.executor.Execute(context.Background(), req)
	s.complete(run, stages, resolve, "")

	issues := 0
	for _, stage := range stages {
		if !stage.Succeeded {
			issues++
		}
	}
	switch {
	case resolve.State == StatePlaying && issues == 0:
		s.status.Set(fmt.Sprintf("Ready — playing on %s", req.TargetDeviceName))
	case resolve.State == StatePlaying:
		s.status.Set(fmt.Sprintf("Playing on %s (%d stage issue(s))", req.TargetDeviceName, issues))
	default:
		s.status.Set(fmt.Sprintf("Activation finished; player silent (%d stage issue(s))", issues))
	}
	s.logger.Printf("Activation %s finished: %s, %d stage issue(s)", run.RunID, resolve.Summary(), issues)
}

// complete records the run outcome. A run that executed all stages counts as
// succeeded even when stages failed along the way; failed is reserved for an
// unexpected fault that prevented the workflow from finishing.
func (s *Service) complete(run *Run, stages []StageOutcome, resolve ResolveResult, lastError string) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	run.CompletedAt = &now
	run.Stages = stages
	run.Playing = resolve.Playing
	if lastError != "" {
		run.Status = RunStatusFailed
		run.LastError = lastError
	} else {
		run.Status = RunStatusSucceeded
	}
}

// LastRun returns a snapshot of the most recent run, or nil if none started yet.
func (s *Service) LastRun() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRun == nil {
		return nil
	}
	return snapshotRun(s.lastRun)
}

// Busy reports whether an activation currently holds the gate.
func (s *Service) Busy() bool {
	return s.gate.IsHeld()
}

func snapshotRun(run *Run) *Run {
	copied := *run
	copied.Stages = append([]StageOutcome(nil), run.Stages...)
	return &copied
}
