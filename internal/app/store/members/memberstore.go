// internal/app/store/members/memberstore.go
package memberstore

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

// ErrNotFound is returned when a member id does not exist.
var ErrNotFound = errors.New("member not found")

// Store provides access to the club_members collection. These are the
// members shown on the public site, curated by coordinators, distinct
// from raw membership applications.
type Store struct {
	c *mongo.Collection
}

// New creates a new member store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("club_members")}
}

// Create inserts a new member and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, m models.ClubMember) (models.ClubMember, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ClubMember{}, err
	}
	return m, nil
}

// List returns all members, newest first.
func (s *Store) List(ctx context.Context) ([]models.ClubMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	members := []models.ClubMember{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Delete removes a member from the roster.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the roster size.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
