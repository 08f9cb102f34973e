package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/themizzi/shopcheck/internal/database"
	"github.com/themizzi/shopcheck/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for runs and their check results
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, suite, base_url, username, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.Suite,
		run.BaseURL,
		run.Username,
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by id
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, suite, base_url, username, status, started_at, finished_at
		FROM runs
		WHERE id = $1
	`

	run := &models.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Suite,
		&run.BaseURL,
		&run.Username,
		&run.Status,
		&run.StartedAt,
		&finishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return run, nil
}

// UpdateRunStatus stores the final status of a run
func (r *RunRepository) UpdateRunStatus(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, finished_at = $2
		WHERE id = $3
	`

	var finishedAt sql.NullTime
	if !run.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: run.FinishedAt, Valid: true}
	}

	result, err := r.db.Exec(query, run.Status, finishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}

	return nil
}

// CreateCheckResult inserts a check result
func (r *RunRepository) CreateCheckResult(check *models.CheckResult) error {
	query := `
		INSERT INTO check_results (id, run_id, name, passed, attempts, elapsed_ms, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		check.ID,
		check.RunID,
		check.Name,
		check.Passed,
		check.Attempts,
		check.ElapsedMs,
		check.Detail,
		check.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create check result: %w", err)
	}

	return nil
}

// ListCheckResults returns the checks of a run in the order they were recorded
func (r *RunRepository) ListCheckResults(runID string) ([]models.CheckResult, error) {
	query := `
		SELECT id, run_id, name, passed, attempts, elapsed_ms, detail, created_at
		FROM check_results
		WHERE run_id = $1
		ORDER BY created_at, name
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check results: %w", err)
	}
	defer rows.Close()

	var checks []models.CheckResult
	for rows.Next() {
		var c models.CheckResult
		if err := rows.Scan(&c.ID, &c.RunID, &c.Name, &c.Passed, &c.Attempts, &c.ElapsedMs, &c.Detail, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check result: %w", err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read check results: %w", err)
	}

	return checks, nil
}
