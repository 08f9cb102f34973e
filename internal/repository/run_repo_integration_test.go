//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/themizzi/shopcheck/internal/models"
	"github.com/themizzi/shopcheck/internal/repository/testutil"
)

func newRun(t *testing.T) *models.Run {
	t.Helper()
	run, err := models.NewRun("smoke", "http://localhost:8080", "standard_user")
	if err != nil {
		t.Fatalf("Failed to build run: %v", err)
	}
	// Postgres TIMESTAMP keeps microseconds
	run.StartedAt = run.StartedAt.Truncate(time.Microsecond)
	return run
}

func TestRunRepository_CreateAndGet_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)
	run := newRun(t)

	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	retrieved, err := repo.GetRun(run.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve created run: %v", err)
	}
	if retrieved.Suite != run.Suite || retrieved.BaseURL != run.BaseURL || retrieved.Username != run.Username {
		t.Errorf("Run mismatch: got %+v, want %+v", retrieved, run)
	}
	if retrieved.Status != models.RunStatusRunning {
		t.Errorf("Status mismatch: got %v, want %v", retrieved.Status, models.RunStatusRunning)
	}
	if !retrieved.FinishedAt.IsZero() {
		t.Errorf("FinishedAt should be empty, got %v", retrieved.FinishedAt)
	}
}

func TestRunRepository_GetRun_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	_, err := repo.GetRun(uuid.New().String())
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_UpdateRunStatus_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)
	run := newRun(t)
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	if err := run.Finish(false); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if err := repo.UpdateRunStatus(run); err != nil {
		t.Fatalf("UpdateRunStatus() error = %v", err)
	}

	retrieved, err := repo.GetRun(run.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve run: %v", err)
	}
	if retrieved.Status != models.RunStatusFailed {
		t.Errorf("Status mismatch: got %v, want %v", retrieved.Status, models.RunStatusFailed)
	}
	if retrieved.FinishedAt.IsZero() {
		t.Error("FinishedAt should be set")
	}

	missing := &models.Run{ID: uuid.New().String(), Status: models.RunStatusPassed}
	if err := repo.UpdateRunStatus(missing); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_CheckResults_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)
	run := newRun(t)
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	names := []string{"login", "add to cart", "order totals"}
	for i, name := range names {
		check, err := run.NewCheckResult(name, i != 2, i+1, time.Duration(i*100)*time.Millisecond, "")
		if err != nil {
			t.Fatalf("NewCheckResult() error = %v", err)
		}
		check.CreatedAt = run.StartedAt.Add(time.Duration(i) * time.Second)
		if err := repo.CreateCheckResult(check); err != nil {
			t.Fatalf("CreateCheckResult() error = %v", err)
		}
	}

	checks, err := repo.ListCheckResults(run.ID)
	if err != nil {
		t.Fatalf("ListCheckResults() error = %v", err)
	}
	if len(checks) != len(names) {
		t.Fatalf("Expected %d checks, got %d", len(names), len(checks))
	}
	for i, c := range checks {
		if c.Name != names[i] {
			t.Errorf("Check %d: got %s, want %s", i, c.Name, names[i])
		}
		if c.Attempts != i+1 {
			t.Errorf("Check %d attempts: got %d, want %d", i, c.Attempts, i+1)
		}
	}
	if checks[2].Passed {
		t.Error("Expected last check to be failed")
	}

	orphan := &models.CheckResult{ID: uuid.New().String(), RunID: uuid.New().String(), Name: "orphan", CreatedAt: time.Now()}
	if err := repo.CreateCheckResult(orphan); err == nil {
		t.Error("Expected foreign key violation for unknown run")
	}
}
