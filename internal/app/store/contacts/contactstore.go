// internal/app/store/contacts/contactstore.go
package contactstore

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

// ErrNotFound is returned when a contact submission id does not exist.
var ErrNotFound = errors.New("contact submission not found")

// Store provides access to the contact_submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contact_submissions")}
}

// Create inserts a new submission with status new.
func (s *Store) Create(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	sub.ID = primitive.NewObjectID()
	sub.Status = models.ContactNew
	sub.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.ContactSubmission{}, err
	}
	return sub, nil
}

// List returns all submissions, newest first.
func (s *Store) List(ctx context.Context) ([]models.ContactSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.ContactSubmission{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListPage returns up to limit submissions starting at the given zero-based
// offset, newest first. Callers fetch limit+1 rows for look-ahead paging.
func (s *Store) ListPage(ctx context.Context, skip, limit int64) ([]models.ContactSubmission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.ContactSubmission{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// SetStatus marks a submission as new, read, or responded.
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

// Count returns the total number of submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
