// Package repository declares the storage contracts used by the services.
// Implementations live in the mongo, postgres and memory subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/Dan9191/cohort-tools/internal/models"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("repository: duplicate key")
)

// UserRepository persists user accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// CohortRepository persists cohorts
type CohortRepository interface {
	ListCohorts(ctx context.Context) ([]models.Cohort, error)
	FindCohortByID(ctx context.Context, id string) (*models.Cohort, error)
	CreateCohort(ctx context.Context, cohort *models.Cohort) error
	ReplaceCohort(ctx context.Context, cohort *models.Cohort) error
	DeleteCohort(ctx context.Context, id string) error
}

// StudentRepository persists students
type StudentRepository interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListStudentsByCohort(ctx context.Context, cohortID string) ([]models.Student, error)
	CountStudentsByCohort(ctx context.Context, cohortID string) (int64, error)
	FindStudentByID(ctx context.Context, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) error
	ReplaceStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id string) error
}

// Store bundles every repository behind one connection
type Store interface {
	UserRepository
	CohortRepository
	StudentRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
