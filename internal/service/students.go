package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
)

const entityStudent = "Student"

func (s *Service) prepareStudent(st *models.Student) error {
	if err := s.validate.Struct(st); err != nil {
		return validationMessage(err)
	}
	if st.Languages == nil {
		st.Languages = []string{}
	}
	if st.Projects == nil {
		st.Projects = []string{}
	}
	return nil
}

// ListStudents returns all students
func (s *Service) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// ListStudentsByCohort returns the students of one cohort, possibly none
func (s *Service) ListStudentsByCohort(ctx context.Context, cohortID string) ([]models.Student, error) {
	students, err := s.store.ListStudentsByCohort(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohort students: %w", err)
	}
	return students, nil
}

// GetStudent returns one student
func (s *Service) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	st, err := s.store.FindStudentByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(entityStudent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return st, nil
}

// CreateStudent validates and stores a student
func (s *Service) CreateStudent(ctx context.Context, st *models.Student) error {
	if err := s.prepareStudent(st); err != nil {
		return err
	}
	if err := s.store.CreateStudent(ctx, st); err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	s.log.WithField("student_id", st.ID).Info("Student created")
	return nil
}

// ReplaceStudent overwrites student id with st
func (s *Service) ReplaceStudent(ctx context.Context, id string, st *models.Student) error {
	if err := s.prepareStudent(st); err != nil {
		return err
	}
	st.ID = id
	err := s.store.ReplaceStudent(ctx, st)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entityStudent)
	}
	if err != nil {
		return fmt.Errorf("failed to replace student: %w", err)
	}
	s.log.WithField("student_id", id).Info("Student replaced")
	return nil
}

// DeleteStudent removes a student
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	err := s.store.DeleteStudent(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entityStudent)
	}
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	s.log.WithField("student_id", id).Info("Student deleted")
	return nil
}
