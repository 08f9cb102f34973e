package services

import (
	"fmt"
	"log"
	"time"

	"github.com/themizzi/shopcheck/internal/models"
)

// RunRepository defines the interface for run persistence
type RunRepository interface {
	CreateRun(run *models.Run) error
	GetRun(id string) (*models.Run, error)
	UpdateRunStatus(run *models.Run) error
	CreateCheckResult(check *models.CheckResult) error
	ListCheckResults(runID string) ([]models.CheckResult, error)
}

// RunService records browser runs and the checks they perform
type RunService interface {
	StartRun(suite, baseURL, username string) (*models.Run, error)
	RecordCheck(runID, name string, passed bool, attempts int, elapsed time.Duration, detail string) (*models.CheckResult, error)
	FinishRun(runID string) (*models.Run, error)
}

// RunServiceImpl implements RunService
type RunServiceImpl struct {
	runRepo RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository) RunService {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// StartRun creates and stores a running run
func (s *RunServiceImpl) StartRun(suite, baseURL, username string) (*models.Run, error) {
	run, err := models.NewRun(suite, baseURL, username)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	log.Printf("Started run %s (%s as %s against %s)", run.ID, suite, username, baseURL)
	return run, nil
}

// RecordCheck stores the outcome of one check of a running run
func (s *RunServiceImpl) RecordCheck(runID, name string, passed bool, attempts int, elapsed time.Duration, detail string) (*models.CheckResult, error) {
	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	check, err := run.NewCheckResult(name, passed, attempts, elapsed, detail)
	if err != nil {
		return nil, err
	}

	if err := s.runRepo.CreateCheckResult(check); err != nil {
		return nil, fmt.Errorf("failed to record check: %w", err)
	}

	return check, nil
}

// FinishRun marks the run passed when every recorded check passed, failed otherwise
func (s *RunServiceImpl) FinishRun(runID string) (*models.Run, error) {
	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	checks, err := s.runRepo.ListCheckResults(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}

	passed := true
	for _, c := range checks {
		if !c.Passed {
			passed = false
			break
		}
	}

	if err := run.Finish(passed); err != nil {
		return nil, err
	}

	if err := s.runRepo.UpdateRunStatus(run); err != nil {
		return nil, fmt.Errorf("failed to finish run: %w", err)
	}

	log.Printf("Run %s %s with %d checks in %s", run.ID, run.Status, len(checks), run.Duration().Round(time.Millisecond))
	return run, nil
}
