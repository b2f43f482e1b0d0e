// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an event id does not exist.
var ErrNotFound = errors.New("event not found")

// Store provides access to the events collection. List and Snapshot always
// return events in created_at-descending order; the database owns that
// ordering and downstream consumers preserve it.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

// New creates a new event store.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{c: db.Collection("events"), log: logger}
}

// Create inserts a new event and returns it with its assigned id and
// timestamps. Status defaults to upcoming when absent or invalid.
func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if !models.ValidEventStatus(ev.Status) {
		ev.Status = models.StatusUpcoming
	}
	if ev.Date.IsZero() {
		ev.Date = now
	}

	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// Update applies a partial field replace by id. Only the keys present in
// fields are touched; updated_at is always refreshed.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if status, ok := fields["status"].(string); ok && !models.ValidEventStatus(status) {
		fields["status"] = models.StatusUpcoming
	}
	fields["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes an event. There is no soft delete.
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

// GetByID loads a single event.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var raw bson.M
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return models.Event{}, ErrNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return s.decode(raw), nil
}

// List returns all events ordered by creation instant, newest first.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	return s.list(ctx, bson.M{})
}

// ListByStatus returns events with the given status, newest first.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]models.Event, error) {
	return s.list(ctx, bson.M{"status": status})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		events = append(events, s.decode(raw))
	}
	return events, cur.Err()
}

// IncrementLikes bumps the likes counter by one.
func (s *Store) IncrementLikes(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// StatusCounts aggregates the per-status summary in the database.
func (s *Store) StatusCounts(ctx context.Context) (models.EventCounts, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return models.EventCounts{}, err
	}
	defer cur.Close(ctx)

	var counts models.EventCounts
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return models.EventCounts{}, err
		}
		switch row.ID {
		case models.StatusUpcoming:
			counts.Upcoming = row.Count
		case models.StatusLive:
			counts.Live = row.Count
		case models.StatusCompleted:
			counts.Completed = row.Count
		}
	}
	counts.Total = counts.Upcoming + counts.Live + counts.Completed
	return counts, cur.Err()
}
