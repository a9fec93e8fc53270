package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNewID_IsObjectIDHex(t *testing.T) {
	id := newID()
	assert.Len(t, id, 24)
	_, err := bson.ObjectIDFromHex(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, newID())
}

// newIntegrationStore connects to MONGO_TEST_URI and uses a throwaway database.
func newIntegrationStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "cohort_tools_test_" + newID()
	s, err := NewStore(ctx, uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.client.Database(dbName).Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestStore_Integration_UsersUniqueEmail(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@b.com", Name: "A", PasswordHash: "h"}))
	err := s.CreateUser(ctx, &models.User{Email: "a@b.com", Name: "B", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := s.FindUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "h", u.PasswordHash)

	_, err = s.FindUserByID(ctx, "000000000000000000000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_Integration_StudentsByCohort(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	c := &models.Cohort{CohortName: "FT"}
	require.NoError(t, s.CreateCohort(ctx, c))
	st := &models.Student{FirstName: "A", LastName: "B", Email: "s@b.com", Cohort: c.ID}
	require.NoError(t, s.CreateStudent(ctx, st))

	got, err := s.ListStudentsByCohort(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, st.ID, got[0].ID)

	n, err := s.CountStudentsByCohort(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.ReplaceStudent(ctx, &models.Student{ID: st.ID, FirstName: "Z", Cohort: c.ID}))
	updated, err := s.FindStudentByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Z", updated.FirstName)
	assert.Empty(t, updated.Email)

	require.NoError(t, s.DeleteStudent(ctx, st.ID))
	assert.ErrorIs(t, s.DeleteStudent(ctx, st.ID), repository.ErrNotFound)
}
