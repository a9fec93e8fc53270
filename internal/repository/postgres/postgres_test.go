package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

const validUUID = "5b7c1f1e-8a4e-4d8e-9a57-3a6f1f0c2b11"

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+users\s*\(id,\s*email,\s*name,\s*password,\s*created_at,\s*updated_at\)`).
		WithArgs(sqlmock.AnyArg(), "a@b.com", "A", "hash", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{Email: "a@b.com", Name: "A", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	assert.True(t, validID(u.ID))
	assert.Equal(t, fixedNow, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+users`).
		WillReturnError(&pq.Error{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"})

	err := repo.CreateUser(context.Background(), &models.User{Email: "a@b.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateUser_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	err := repo.CreateUser(context.Background(), &models.User{Email: "a@b.com"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`failed to create user: .*db down`), err.Error())
	assert.NotErrorIs(t, err, repository.ErrDuplicate)
}

func TestFindUserByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "password", "created_at", "updated_at"}).
		AddRow(validUUID, "a@b.com", "A", "hash", fixedNow, fixedNow)
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*email,\s*name,\s*password.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("a@b.com").
		WillReturnRows(rows)

	u, err := repo.FindUserByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, validUUID, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).WithArgs("ghost@b.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "ghost@b.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindUserByID_MalformedIDSkipsQuery(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.FindUserByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func cohortRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "cohort_slug", "cohort_name", "program", "format", "campus", "start_date", "end_date",
		"in_progress", "program_manager", "lead_teacher", "total_hours", "created_at", "updated_at"}).
		AddRow(validUUID, "ft-wd-2026", "FT Web Dev", "Web Dev", "Full Time", "Berlin", fixedNow, nil,
			true, "Alice", "Bob", 360, fixedNow, fixedNow)
}

func TestListCohorts(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*cohort_slug.*FROM\s+cohorts\s+ORDER\s+BY\s+created_at`).WillReturnRows(cohortRow())

	cohorts, err := repo.ListCohorts(context.Background())
	require.NoError(t, err)
	require.Len(t, cohorts, 1)
	assert.Equal(t, "FT Web Dev", cohorts[0].CohortName)
	require.NotNil(t, cohorts[0].StartDate)
	assert.Nil(t, cohorts[0].EndDate)
	assert.Equal(t, 360, cohorts[0].TotalHours)
}

func TestFindCohortByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+cohorts\s+WHERE\s+id`).WithArgs(validUUID).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindCohortByID(context.Background(), validUUID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReplaceCohort(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := fixedNow.Add(-24 * time.Hour)

	mock.ExpectQuery(`(?s)UPDATE\s+cohorts\s+SET.*WHERE\s+id\s*=\s*\$1\s+RETURNING\s+created_at`).
		WithArgs(validUUID, "", "PT Web Dev", "", "", "", sqlmock.AnyArg(), sqlmock.AnyArg(), false, "", "", 0, fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	c := &models.Cohort{ID: validUUID, CohortName: "PT Web Dev"}
	require.NoError(t, repo.ReplaceCohort(context.Background(), c))
	assert.Equal(t, created, c.CreatedAt)
	assert.Equal(t, fixedNow, c.UpdatedAt)
}

func TestReplaceCohort_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE\s+cohorts`).WillReturnError(sql.ErrNoRows)

	err := repo.ReplaceCohort(context.Background(), &models.Cohort{ID: validUUID, CohortName: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCohort(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+cohorts\s+WHERE\s+id\s*=\s*\$1`).WithArgs(validUUID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+cohorts`).WithArgs(validUUID).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteCohort(context.Background(), validUUID))
	assert.ErrorIs(t, repo.DeleteCohort(context.Background(), validUUID), repository.ErrNotFound)
}

func TestListStudentsByCohort(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "linkedin_url", "languages", "program",
		"background", "image", "projects", "cohort", "created_at", "updated_at"}).
		AddRow(validUUID, "Ada", "Lovelace", "ada@b.com", "", "", []byte("{English,French}"), "Web Dev",
			"", "", []byte("{}"), "c-1", fixedNow, fixedNow)
	mock.ExpectQuery(`(?s)FROM\s+students\s+WHERE\s+cohort\s*=\s*\$1\s+ORDER\s+BY\s+created_at`).
		WithArgs("c-1").
		WillReturnRows(rows)

	students, err := repo.ListStudentsByCohort(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, []string{"English", "French"}, students[0].Languages)
	assert.Equal(t, "c-1", students[0].Cohort)
}

func TestListStudents_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+students\s+ORDER\s+BY`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	students, err := repo.ListStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestCountStudentsByCohort(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+students\s+WHERE\s+cohort\s*=\s*\$1`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := repo.CountStudentsByCohort(context.Background(), "c-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestCreateStudent(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+students`).
		WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace", "ada@b.com", "", "", sqlmock.AnyArg(),
			"", "", "", sqlmock.AnyArg(), "c-1", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &models.Student{FirstName: "Ada", LastName: "Lovelace", Email: "ada@b.com", Cohort: "c-1"}
	require.NoError(t, repo.CreateStudent(context.Background(), s))
	assert.True(t, validID(s.ID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStudent_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+students`).WithArgs(validUUID).WillReturnError(errors.New("db err"))

	err := repo.DeleteStudent(context.Background(), validUUID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete student")
}
