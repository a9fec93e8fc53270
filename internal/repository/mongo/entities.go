package mongo

import (
	"context"
	"fmt"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CreateUser inserts a user; the unique email index rejects duplicates
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := s.now()
	user.ID = newID()
	user.CreatedAt, user.UpdatedAt = now, now
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := findOne(ctx, s.users, bson.M{"email": email}, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByID retrieves a user by identifier
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	if err := findOne(ctx, s.users, byID(id), user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListCohorts returns every cohort
func (s *Store) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	cohorts := []models.Cohort{}
	if err := findAll(ctx, s.cohorts, bson.M{}, &cohorts); err != nil {
		return nil, err
	}
	if cohorts == nil {
		cohorts = []models.Cohort{}
	}
	return cohorts, nil
}

// FindCohortByID retrieves a cohort by identifier
func (s *Store) FindCohortByID(ctx context.Context, id string) (*models.Cohort, error) {
	cohort := &models.Cohort{}
	if err := findOne(ctx, s.cohorts, byID(id), cohort); err != nil {
		return nil, err
	}
	return cohort, nil
}

// CreateCohort inserts a cohort
func (s *Store) CreateCohort(ctx context.Context, cohort *models.Cohort) error {
	now := s.now()
	cohort.ID = newID()
	cohort.CreatedAt, cohort.UpdatedAt = now, now
	if _, err := s.cohorts.InsertOne(ctx, cohort); err != nil {
		return fmt.Errorf("failed to create cohort: %w", err)
	}
	return nil
}

// ReplaceCohort replaces the stored cohort document
func (s *Store) ReplaceCohort(ctx context.Context, cohort *models.Cohort) error {
	created, err := createdAt(ctx, s.cohorts, cohort.ID)
	if err != nil {
		return err
	}
	cohort.CreatedAt = created
	cohort.UpdatedAt = s.now()
	return replaceOne(ctx, s.cohorts, cohort.ID, cohort)
}

// DeleteCohort removes a cohort
func (s *Store) DeleteCohort(ctx context.Context, id string) error {
	return deleteOne(ctx, s.cohorts, id)
}

// ListStudents returns every student
func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.listStudents(ctx, bson.M{})
}

// ListStudentsByCohort returns students referencing cohortID
func (s *Store) ListStudentsByCohort(ctx context.Context, cohortID string) ([]models.Student, error) {
	return s.listStudents(ctx, bson.M{"cohort": cohortID})
}

func (s *Store) listStudents(ctx context.Context, filter bson.M) ([]models.Student, error) {
	students := []models.Student{}
	if err := findAll(ctx, s.students, filter, &students); err != nil {
		return nil, err
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// CountStudentsByCohort counts students referencing cohortID
func (s *Store) CountStudentsByCohort(ctx context.Context, cohortID string) (int64, error) {
	n, err := s.students.CountDocuments(ctx, bson.M{"cohort": cohortID})
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return n, nil
}

// FindStudentByID retrieves a student by identifier
func (s *Store) FindStudentByID(ctx context.Context, id string) (*models.Student, error) {
	student := &models.Student{}
	if err := findOne(ctx, s.students, byID(id), student); err != nil {
		return nil, err
	}
	return student, nil
}

// CreateStudent inserts a student
func (s *Store) CreateStudent(ctx context.Context, student *models.Student) error {
	now := s.now()
	student.ID = newID()
	student.CreatedAt, student.UpdatedAt = now, now
	if _, err := s.students.InsertOne(ctx, student); err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// ReplaceStudent replaces the stored student document
func (s *Store) ReplaceStudent(ctx context.Context, student *models.Student) error {
	created, err := createdAt(ctx, s.students, student.ID)
	if err != nil {
		return err
	}
	student.CreatedAt = created
	student.UpdatedAt = s.now()
	return replaceOne(ctx, s.students, student.ID, student)
}

// DeleteStudent removes a student
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	return deleteOne(ctx, s.students, id)
}
