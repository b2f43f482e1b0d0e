// internal/app/store/applications/applicationstore.go
package applicationstore

import (
	"context"
	"errors"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an application id does not exist.
var ErrNotFound = errors.New("application not found")

// Store provides access to the membership_applications collection.
// Applications are append-only from the public site; duplicates with the
// same derived membership id are stored as distinct documents and left to
// coordinators to reconcile.
type Store struct {
	c *mongo.Collection
}

// New creates a new application store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("membership_applications")}
}

// Create inserts a new application and returns it with its assigned id.
// Status starts as pending.
func (s *Store) Create(ctx context.Context, app models.MembershipApplication) (models.MembershipApplication, error) {
	app.ID = primitive.NewObjectID()
	app.Status = models.ApplicationPending
	app.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.MembershipApplication{}, err
	}
	return app, nil
}

// List returns all applications, newest first.
func (s *Store) List(ctx context.Context) ([]models.MembershipApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []models.MembershipApplication{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListPage returns up to limit applications starting at the given zero-based
// offset, newest first. Callers fetch limit+1 rows for look-ahead paging.
func (s *Store) ListPage(ctx context.Context, skip, limit int64) ([]models.MembershipApplication, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []models.MembershipApplication{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SetStatus moves an application between pending, approved, and rejected.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of applications.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
