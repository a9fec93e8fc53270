// Package memory is an in-process Store used for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/google/uuid"
)

// Store keeps every collection in maps guarded by a single lock
type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	emails   map[string]string
	cohorts  map[string]models.Cohort
	students map[string]models.Student
	now      func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store
func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		cohorts:  make(map[string]models.Cohort),
		students: make(map[string]models.Student),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Close is a no-op
func (s *Store) Close(context.Context) error { return nil }

// CreateUser inserts a user, rejecting duplicate emails
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[user.Email]; taken {
		return repository.ErrDuplicate
	}
	now := s.now()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

// FindUserByEmail looks a user up by exact email
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

// FindUserByID looks a user up by identifier
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// ListCohorts returns all cohorts in creation order
func (s *Store) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Cohort, 0, len(s.cohorts))
	for _, c := range s.cohorts {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// FindCohortByID looks a cohort up by identifier
func (s *Store) FindCohortByID(ctx context.Context, id string) (*models.Cohort, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cohorts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

// CreateCohort inserts a cohort and assigns its identifier
func (s *Store) CreateCohort(ctx context.Context, cohort *models.Cohort) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	cohort.ID = uuid.NewString()
	cohort.CreatedAt, cohort.UpdatedAt = now, now
	s.cohorts[cohort.ID] = *cohort
	return nil
}

// ReplaceCohort overwrites an existing cohort, keeping its creation time
func (s *Store) ReplaceCohort(ctx context.Context, cohort *models.Cohort) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.cohorts[cohort.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cohort.CreatedAt = existing.CreatedAt
	cohort.UpdatedAt = s.now()
	s.cohorts[cohort.ID] = *cohort
	return nil
}

// DeleteCohort removes a cohort
func (s *Store) DeleteCohort(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cohorts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.cohorts, id)
	return nil
}

// ListStudents returns all students in creation order
func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.filterStudents(func(models.Student) bool { return true }), nil
}

// ListStudentsByCohort returns the students referencing cohortID
func (s *Store) ListStudentsByCohort(ctx context.Context, cohortID string) ([]models.Student, error) {
	return s.filterStudents(func(st models.Student) bool { return st.Cohort == cohortID }), nil
}

// CountStudentsByCohort counts the students referencing cohortID
func (s *Store) CountStudentsByCohort(ctx context.Context, cohortID string) (int64, error) {
	return int64(len(s.filterStudents(func(st models.Student) bool { return st.Cohort == cohortID }))), nil
}

func (s *Store) filterStudents(keep func(models.Student) bool) []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, 0)
	for _, st := range s.students {
		if keep(st) {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// FindStudentByID looks a student up by identifier
func (s *Store) FindStudentByID(ctx context.Context, id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

// CreateStudent inserts a student and assigns its identifier
func (s *Store) CreateStudent(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	student.ID = uuid.NewString()
	student.CreatedAt, student.UpdatedAt = now, now
	s.students[student.ID] = *student
	return nil
}

// ReplaceStudent overwrites an existing student, keeping its creation time
func (s *Store) ReplaceStudent(ctx context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.students[student.ID]
	if !ok {
		return repository.ErrNotFound
	}
	student.CreatedAt = existing.CreatedAt
	student.UpdatedAt = s.now()
	s.students[student.ID] = *student
	return nil
}

// DeleteStudent removes a student
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.students, id)
	return nil
}
