// Package scheduler optionally fires the activation trigger on a cron
// schedule, so the speaker can come up before anyone reaches for the remote.
// A scheduled fire while a run is in flight is skipped, exactly like a
// rejected HTTP trigger.
package scheduler

import (
	"errors"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/strefethen/spotify-remote-go/internal/workflow"
)

// ActivationTrigger starts an activation run. Implemented by workflow.Service.
type ActivationTrigger interface {
	Trigger() (*workflow.Run, error)
}

// Service runs the scheduled activation.
type Service struct {
	schedule string
	trigger  ActivationTrigger
	cron     *cron.Cron
	logger   *log.Logger
}

// NewService creates a scheduler service. An empty schedule disables it.
func NewService(schedule string, trigger ActivationTrigger, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		schedule: schedule,
		trigger:  trigger,
		logger:   logger,
	}
}

// Start begins firing the trigger per the configured schedule.
// Standard 5-field cron expressions (minute hour dom month dow).
func (s *Service) Start() error {
	if s.schedule == "" {
		s.logger.Printf("Scheduled activation disabled")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.fire); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Printf("Scheduled activation enabled: %q", s.schedule)
	return nil
}

// Stop halts the schedule. Safe to call when never started.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Service) fire() {
	run, err := s.trigger.Trigger()
	if err != nil {
		if errors.Is(err, workflow.ErrRunInProgress) {
			s.logger.Printf("Scheduled activation skipped: run already in progress")
			return
		}
		s.logger.Printf("Scheduled activation failed to start: %v", err)
		return
	}
	s.logger.Printf("Scheduled activation started: %s", run.RunID)
}
