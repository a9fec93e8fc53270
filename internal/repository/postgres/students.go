package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const studentColumns = `id, first_name, last_name, email, phone, linkedin_url, languages, program,
		background, image, projects, cohort, created_at, updated_at`

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.LinkedinURL, pq.Array(&s.Languages), &s.Program,
		&s.Background, &s.Image, pq.Array(&s.Projects), &s.Cohort, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) queryStudents(ctx context.Context, query string, args ...any) ([]models.Student, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// ListStudents returns every student ordered by creation time
func (r *Repository) ListStudents(ctx context.Context) ([]models.Student, error) {
	return r.queryStudents(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at`)
}

// ListStudentsByCohort returns the students referencing cohortID
func (r *Repository) ListStudentsByCohort(ctx context.Context, cohortID string) ([]models.Student, error) {
	return r.queryStudents(ctx, `SELECT `+studentColumns+` FROM students WHERE cohort = $1 ORDER BY created_at`, cohortID)
}

// CountStudentsByCohort counts the students referencing cohortID
func (r *Repository) CountStudentsByCohort(ctx context.Context, cohortID string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students WHERE cohort = $1`, cohortID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return n, nil
}

// FindStudentByID retrieves a student by identifier
func (r *Repository) FindStudentByID(ctx context.Context, id string) (*models.Student, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	s, err := scanStudent(r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return s, nil
}

// CreateStudent creates a new student in the database
func (r *Repository) CreateStudent(ctx context.Context, s *models.Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	id := uuid.NewString()
	now := r.now()
	_, err := r.db.ExecContext(ctx, query, id, s.FirstName, s.LastName, s.Email, s.Phone, s.LinkedinURL, textArray(s.Languages),
		s.Program, s.Background, s.Image, textArray(s.Projects), s.Cohort, now, now)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	s.ID = id
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

// ReplaceStudent overwrites every mutable column of a student
func (r *Repository) ReplaceStudent(ctx context.Context, s *models.Student) error {
	if !validID(s.ID) {
		return repository.ErrNotFound
	}
	query := `
		UPDATE students SET first_name = $2, last_name = $3, email = $4, phone = $5, linkedin_url = $6,
			languages = $7, program = $8, background = $9, image = $10, projects = $11, cohort = $12,
			updated_at = $13
		WHERE id = $1
		RETURNING created_at`
	now := r.now()
	err := r.db.QueryRowContext(ctx, query, s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.LinkedinURL, textArray(s.Languages),
		s.Program, s.Background, s.Image, textArray(s.Projects), s.Cohort, now).Scan(&s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to replace student: %w", err)
	}
	s.UpdatedAt = now
	return nil
}

// DeleteStudent removes a student
func (r *Repository) DeleteStudent(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	return expectAffected(res, err, "delete student")
}
