package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
)

const entityCohort = "Cohort"

func (s *Service) validateCohort(c *models.Cohort) error {
	if err := s.validate.Struct(c); err != nil {
		return validationMessage(err)
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return invalid("endDate must not be before startDate")
	}
	return nil
}

// ListCohorts returns all cohorts
func (s *Service) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	cohorts, err := s.store.ListCohorts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	return cohorts, nil
}

// GetCohort returns one cohort
func (s *Service) GetCohort(ctx context.Context, id string) (*models.Cohort, error) {
	c, err := s.store.FindCohortByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(entityCohort)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cohort: %w", err)
	}
	return c, nil
}

// CreateCohort validates and stores a cohort
func (s *Service) CreateCohort(ctx context.Context, c *models.Cohort) error {
	if err := s.validateCohort(c); err != nil {
		return err
	}
	if err := s.store.CreateCohort(ctx, c); err != nil {
		return fmt.Errorf("failed to create cohort: %w", err)
	}
	s.log.WithField("cohort_id", c.ID).Info("Cohort created")
	return nil
}

// ReplaceCohort overwrites cohort id with c
func (s *Service) ReplaceCohort(ctx context.Context, id string, c *models.Cohort) error {
	if err := s.validateCohort(c); err != nil {
		return err
	}
	c.ID = id
	err := s.store.ReplaceCohort(ctx, c)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entityCohort)
	}
	if err != nil {
		return fmt.Errorf("failed to replace cohort: %w", err)
	}
	s.log.WithField("cohort_id", id).Info("Cohort replaced")
	return nil
}

// DeleteCohort removes a cohort that no student references
func (s *Service) DeleteCohort(ctx context.Context, id string) error {
	n, err := s.store.CountStudentsByCohort(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count cohort students: %w", err)
	}
	if n > 0 {
		return &ConflictError{Message: "Cohort has students"}
	}
	err = s.store.DeleteCohort(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(entityCohort)
	}
	if err != nil {
		return fmt.Errorf("failed to delete cohort: %w", err)
	}
	s.log.WithField("cohort_id", id).Info("Cohort deleted")
	return nil
}
