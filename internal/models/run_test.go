package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	tests := []struct {
		name     string
		suite    string
		baseURL  string
		username string
		wantErr  error
	}{
		{name: "valid run", suite: "smoke", baseURL: "http://localhost:8080", username: "standard_user", wantErr: nil},
		{name: "missing suite", suite: "", baseURL: "http://localhost:8080", username: "standard_user", wantErr: ErrInvalidSuite},
		{name: "blank base URL", suite: "smoke", baseURL: "  ", username: "standard_user", wantErr: ErrInvalidBaseURL},
		{name: "missing username", suite: "smoke", baseURL: "http://localhost:8080", username: "", wantErr: ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewRun(tt.suite, tt.baseURL, tt.username)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if run.ID == "" {
				t.Error("Run ID should not be empty")
			}
			if run.Status != RunStatusRunning {
				t.Errorf("Expected status %s, got %s", RunStatusRunning, run.Status)
			}
			if run.StartedAt.IsZero() || !run.FinishedAt.IsZero() {
				t.Errorf("Unexpected timestamps %v / %v", run.StartedAt, run.FinishedAt)
			}
		})
	}
}

func TestRun_Finish(t *testing.T) {
	tests := []struct {
		name       string
		passed     bool
		wantStatus RunStatus
	}{
		{name: "passed", passed: true, wantStatus: RunStatusPassed},
		{name: "failed", passed: false, wantStatus: RunStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			run, _ := NewRun("smoke", "http://localhost:8080", "standard_user")

			// WHEN
			err := run.Finish(tt.passed)

			// THEN
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if run.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, run.Status)
			}
			if run.FinishedAt.IsZero() {
				t.Error("FinishedAt should be set")
			}
			if err := run.Finish(true); !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("Expected ErrInvalidStatusTransition on second finish, got %v", err)
			}
		})
	}
}

func TestRun_NewCheckResult(t *testing.T) {
	run, _ := NewRun("smoke", "http://localhost:8080", "standard_user")

	check, err := run.NewCheckResult("add to cart", true, 2, 350*time.Millisecond, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if check.RunID != run.ID || check.Attempts != 2 || check.ElapsedMs != 350 {
		t.Errorf("Unexpected check %+v", check)
	}

	if _, err := run.NewCheckResult("", true, 1, 0, ""); !errors.Is(err, ErrInvalidCheckName) {
		t.Errorf("Expected ErrInvalidCheckName, got %v", err)
	}
	if _, err := run.NewCheckResult("x", true, -1, 0, ""); !errors.Is(err, ErrInvalidAttempts) {
		t.Errorf("Expected ErrInvalidAttempts, got %v", err)
	}

	_ = run.Finish(false)
	if _, err := run.NewCheckResult("late", true, 1, 0, ""); !errors.Is(err, ErrRunFinished) {
		t.Errorf("Expected ErrRunFinished, got %v", err)
	}
}

func TestRun_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	run := &Run{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}

	if got := run.Duration(); got != 90*time.Second {
		t.Errorf("Expected 90s, got %v", got)
	}
}
