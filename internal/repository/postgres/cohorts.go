package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/google/uuid"
)

const cohortColumns = `id, cohort_slug, cohort_name, program, format, campus, start_date, end_date,
		in_progress, program_manager, lead_teacher, total_hours, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCohort(row rowScanner) (*models.Cohort, error) {
	c := &models.Cohort{}
	var start, end sql.NullTime
	err := row.Scan(&c.ID, &c.CohortSlug, &c.CohortName, &c.Program, &c.Format, &c.Campus, &start, &end,
		&c.InProgress, &c.ProgramManager, &c.LeadTeacher, &c.TotalHours, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.StartDate, c.EndDate = timePtr(start), timePtr(end)
	return c, nil
}

// ListCohorts returns every cohort ordered by creation time
func (r *Repository) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	query := `SELECT ` + cohortColumns + ` FROM cohorts ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	defer rows.Close()

	cohorts := []models.Cohort{}
	for rows.Next() {
		c, err := scanCohort(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohorts = append(cohorts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	return cohorts, nil
}

// FindCohortByID retrieves a cohort by identifier
func (r *Repository) FindCohortByID(ctx context.Context, id string) (*models.Cohort, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	query := `SELECT ` + cohortColumns + ` FROM cohorts WHERE id = $1`
	c, err := scanCohort(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cohort: %w", err)
	}
	return c, nil
}

// CreateCohort creates a new cohort in the database
func (r *Repository) CreateCohort(ctx context.Context, c *models.Cohort) error {
	query := `
		INSERT INTO cohorts (` + cohortColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	id := uuid.NewString()
	now := r.now()
	_, err := r.db.ExecContext(ctx, query, id, c.CohortSlug, c.CohortName, c.Program, c.Format, c.Campus,
		nullTime(c.StartDate), nullTime(c.EndDate), c.InProgress, c.ProgramManager, c.LeadTeacher, c.TotalHours, now, now)
	if err != nil {
		return fmt.Errorf("failed to create cohort: %w", err)
	}
	c.ID = id
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

// ReplaceCohort overwrites every mutable column of a cohort
func (r *Repository) ReplaceCohort(ctx context.Context, c *models.Cohort) error {
	if !validID(c.ID) {
		return repository.ErrNotFound
	}
	query := `
		UPDATE cohorts SET cohort_slug = $2, cohort_name = $3, program = $4, format = $5, campus = $6,
			start_date = $7, end_date = $8, in_progress = $9, program_manager = $10, lead_teacher = $11,
			total_hours = $12, updated_at = $13
		WHERE id = $1
		RETURNING created_at`
	now := r.now()
	err := r.db.QueryRowContext(ctx, query, c.ID, c.CohortSlug, c.CohortName, c.Program, c.Format, c.Campus,
		nullTime(c.StartDate), nullTime(c.EndDate), c.InProgress, c.ProgramManager, c.LeadTeacher, c.TotalHours, now).
		Scan(&c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to replace cohort: %w", err)
	}
	c.UpdatedAt = now
	return nil
}

// DeleteCohort removes a cohort
func (r *Repository) DeleteCohort(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cohorts WHERE id = $1`, id)
	return expectAffected(res, err, "delete cohort")
}
