package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one execution of the browser checks against a storefront
type Run struct {
	ID         string
	Suite      string
	BaseURL    string
	Username   string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
}

// CheckResult is the outcome of a single check within a run
type CheckResult struct {
	ID        string
	RunID     string
	Name      string
	Passed    bool
	Attempts  int
	ElapsedMs int64
	Detail    string
	CreatedAt time.Time
}

// Domain errors
var (
	ErrInvalidSuite            = errors.New("suite name cannot be empty")
	ErrInvalidBaseURL          = errors.New("base URL cannot be empty")
	ErrInvalidUsername         = errors.New("username cannot be empty")
	ErrInvalidCheckName        = errors.New("check name cannot be empty")
	ErrInvalidAttempts         = errors.New("attempts cannot be negative")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrRunFinished             = errors.New("run is already finished")
)

// NewRun creates a running run with validation
func NewRun(suite, baseURL, username string) (*Run, error) {
	switch {
	case strings.TrimSpace(suite) == "":
		return nil, ErrInvalidSuite
	case strings.TrimSpace(baseURL) == "":
		return nil, ErrInvalidBaseURL
	case strings.TrimSpace(username) == "":
		return nil, ErrInvalidUsername
	}

	return &Run{
		ID:        uuid.New().String(),
		Suite:     suite,
		BaseURL:   baseURL,
		Username:  username,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// NewCheckResult creates a check result belonging to run
func (r *Run) NewCheckResult(name string, passed bool, attempts int, elapsed time.Duration, detail string) (*CheckResult, error) {
	if !r.IsRunning() {
		return nil, fmt.Errorf("%w: cannot record %q", ErrRunFinished, name)
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidCheckName
	}
	if attempts < 0 {
		return nil, ErrInvalidAttempts
	}

	return &CheckResult{
		ID:        uuid.New().String(),
		RunID:     r.ID,
		Name:      name,
		Passed:    passed,
		Attempts:  attempts,
		ElapsedMs: elapsed.Milliseconds(),
		Detail:    detail,
		CreatedAt: time.Now(),
	}, nil
}

// Finish moves a running run to passed or failed
func (r *Run) Finish(passed bool) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot finish run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusFailed
	if passed {
		r.Status = RunStatusPassed
	}
	r.FinishedAt = time.Now()
	return nil
}

// IsRunning returns true while checks can still be recorded
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Duration returns how long the run took, or has taken so far
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
