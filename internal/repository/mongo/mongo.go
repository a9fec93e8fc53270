// Package mongo implements the repository contracts on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/cohort-tools/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection    = "users"
	cohortsCollection  = "cohorts"
	studentsCollection = "students"

	connectTimeout = 10 * time.Second
)

// Store provides MongoDB backed persistence
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	cohorts  *mongo.Collection
	students *mongo.Collection
	now      func() time.Time
}

var _ repository.Store = (*Store)(nil)

// NewStore connects to uri, selects database and ensures indexes
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	s := newStore(client, client.Database(database))

	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func newStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		cohorts:  db.Collection(cohortsCollection),
		students: db.Collection(studentsCollection),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// ensureIndexes makes email uniqueness a storage guarantee and speeds up
// the student-by-cohort lookup.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	_, err = s.students.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cohort", Value: 1}},
		Options: options.Index().SetName("students_cohort"),
	})
	if err != nil {
		return fmt.Errorf("failed to create students index: %w", err)
	}
	return nil
}

// Ping checks connectivity with the primary
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}
	return nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func newID() string {
	return bson.NewObjectID().Hex()
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

var sortByCreated = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

// findOne decodes the single document matching filter into out
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", coll.Name(), err)
	}
	return nil
}

// findAll decodes every document matching filter into out, a pointer to a slice
func findAll(ctx context.Context, coll *mongo.Collection, filter any, out any) error {
	cur, err := coll.Find(ctx, filter, sortByCreated)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}

// createdAt returns the creation time of the document with id
func createdAt(ctx context.Context, coll *mongo.Collection, id string) (time.Time, error) {
	var doc struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	if err := findOne(ctx, coll, byID(id), &doc); err != nil {
		return time.Time{}, err
	}
	return doc.CreatedAt, nil
}

func replaceOne(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	res, err := coll.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
