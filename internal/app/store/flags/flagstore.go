// internal/app/store/flags/flagstore.go
package flagstore

import (
	"context"
	"time"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the admin_flags collection, which holds a
// single well-known document controlling site-wide switches.
type Store struct {
	c *mongo.Collection
}

// New creates a new flags store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_flags")}
}

// Get returns the global flags document. A missing document means the
// site runs on defaults (live responses enabled); absence is not an error.
func (s *Store) Get(ctx context.Context) (models.AdminFlags, error) {
	var flags models.AdminFlags
	err := s.c.FindOne(ctx, bson.M{"_id": models.AdminFlagsDocID}).Decode(&flags)
	if err == mongo.ErrNoDocuments {
		return models.DefaultAdminFlags(), nil
	}
	if err != nil {
		return models.AdminFlags{}, err
	}
	return flags, nil
}

// SetLiveResponses flips the live-responses switch. Uses upsert so the
// first toggle creates the document.
func (s *Store) SetLiveResponses(ctx context.Context, enabled bool, updatedBy string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"live_responses_enabled": enabled,
			"updated_at":             now,
			"updated_by_name":        updatedBy,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": models.AdminFlagsDocID}, update, opts)
	return err
}

// Watch opens a change stream over the flags collection so the admin UI
// can react to toggles made in another session.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	stream, err := s.c.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, nil, err
	}

	wctx, cancel := context.WithCancel(ctx)
	notify := make(chan struct{}, 1)

	go func() {
		defer close(notify)
		defer stream.Close(context.Background())
		for stream.Next(wctx) {
			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	return notify, cancel, nil
}
