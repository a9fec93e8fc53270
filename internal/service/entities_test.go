package service

import (
	"context"
	"testing"
	"time"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCohort_Validation(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	tests := []struct {
		name   string
		cohort models.Cohort
		msg    string
	}{
		{"missing name", models.Cohort{}, "cohortName is required"},
		{"unknown program", models.Cohort{CohortName: "X", Program: "Cooking"}, "program must be one of 'Web Dev' 'UX/UI' 'Data Analytics' 'Cybersecurity'"},
		{"negative hours", models.Cohort{CohortName: "X", TotalHours: -1}, "totalHours must be at least 0"},
		{"end before start", models.Cohort{CohortName: "X", StartDate: &start, EndDate: &end}, "endDate must not be before startDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cohort
			err := svc.CreateCohort(context.Background(), &c)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.Message)
		})
	}
}

func TestCohortLifecycle(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	c := &models.Cohort{CohortName: "FT Web Dev", Program: "Web Dev", Format: "Full Time"}
	require.NoError(t, svc.CreateCohort(ctx, c))
	require.NotEmpty(t, c.ID)

	got, err := svc.GetCohort(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "FT Web Dev", got.CohortName)

	repl := &models.Cohort{CohortName: "PT Web Dev", Format: "Part Time"}
	require.NoError(t, svc.ReplaceCohort(ctx, c.ID, repl))
	assert.Equal(t, c.ID, repl.ID)
	assert.Equal(t, c.CreatedAt, repl.CreatedAt)
	assert.Empty(t, repl.Program)

	list, err := svc.ListCohorts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PT Web Dev", list[0].CohortName)

	require.NoError(t, svc.DeleteCohort(ctx, c.ID))
	_, err = svc.GetCohort(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Cohort not found")
}

func TestCohortNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ReplaceCohort(ctx, "missing", &models.Cohort{CohortName: "X"}), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteCohort(ctx, "missing"), ErrNotFound)
}

func TestDeleteCohort_WithStudentsIsForbidden(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	c := &models.Cohort{CohortName: "FT Data"}
	require.NoError(t, svc.CreateCohort(ctx, c))
	st := &models.Student{FirstName: "Ada", LastName: "Lovelace", Email: "ada@b.com", Cohort: c.ID}
	require.NoError(t, svc.CreateStudent(ctx, st))

	err := svc.DeleteCohort(ctx, c.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Cohort has students")

	_, err = svc.GetCohort(ctx, c.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(ctx, st.ID))
	assert.NoError(t, svc.DeleteCohort(ctx, c.ID))
}

func TestStudentsByCohort(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	for _, cohort := range []string{"c-1", "c-1", "c-2"} {
		st := &models.Student{FirstName: "F", LastName: "L", Email: "s@b.com", Cohort: cohort}
		require.NoError(t, svc.CreateStudent(ctx, st))
		assert.NotNil(t, st.Languages)
		assert.NotNil(t, st.Projects)
	}

	got, err := svc.ListStudentsByCohort(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	none, err := svc.ListStudentsByCohort(ctx, "c-9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := svc.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStudentValidationAndReplace(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	err := svc.CreateStudent(ctx, &models.Student{FirstName: "F", LastName: "L", Email: "bad", Cohort: "c"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email must be a valid email address", verr.Message)

	err = svc.CreateStudent(ctx, &models.Student{})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "firstName is required")
	assert.Contains(t, verr.Message, "cohort is required")

	st := &models.Student{FirstName: "F", LastName: "L", Email: "s@b.com", Cohort: "c-1", Languages: []string{"English"}}
	require.NoError(t, svc.CreateStudent(ctx, st))

	repl := &models.Student{FirstName: "G", LastName: "L", Email: "s@b.com", Cohort: "c-2"}
	require.NoError(t, svc.ReplaceStudent(ctx, st.ID, repl))
	got, err := svc.GetStudent(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "G", got.FirstName)
	assert.Equal(t, "c-2", got.Cohort)
	assert.Empty(t, got.Languages)

	assert.ErrorIs(t, svc.ReplaceStudent(ctx, "missing", repl), ErrNotFound)
	_, err = svc.GetStudent(ctx, "missing")
	assert.EqualError(t, err, "Student not found")
}
