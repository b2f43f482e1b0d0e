// internal/app/store/events/feed.go
package eventstore

import (
	"context"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func statusProjection() *options.FindOptions {
	return options.Find().SetProjection(bson.M{"status": 1})
}

// Feed exposes the events collection as a live snapshot source: a change
// stream signals that something changed, and Snapshot re-reads the full
// ordered list. Rapid bursts of writes may coalesce into a single
// notification; each notification always yields a complete fresh snapshot,
// so nothing is lost.
type Feed struct {
	store *Store
}

// NewFeed wraps a store for live subscription use.
func NewFeed(store *Store) *Feed {
	return &Feed{store: store}
}

// Snapshot returns the current complete event list, newest first.
func (f *Feed) Snapshot(ctx context.Context) ([]models.Event, error) {
	return f.store.List(ctx)
}

// Watch opens a change stream over the events collection and returns a
// channel that receives a signal for each batch of changes. The channel is
// closed when the stream ends. The returned stop func tears the stream down.
func (f *Feed) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	return watchCollection(ctx, f.store.c)
}

// StatusFeed is the lightweight cousin of Feed for dashboard counts: it
// only ever reads the status field of each event.
type StatusFeed struct {
	store *Store
}

// NewStatusFeed wraps a store for live count subscription use.
func NewStatusFeed(store *Store) *StatusFeed {
	return &StatusFeed{store: store}
}

// Statuses returns the status of every event, with no particular order.
func (f *StatusFeed) Statuses(ctx context.Context) ([]string, error) {
	opts := statusProjection()
	cur, err := f.store.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	statuses := []string{}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"status"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		statuses = append(statuses, row.Status)
	}
	return statuses, cur.Err()
}

// Watch opens a change stream over the events collection.
func (f *StatusFeed) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	return watchCollection(ctx, f.store.c)
}

// watchCollection starts a change stream and pumps one signal per received
// change event. Signals are coalesced when the receiver lags; consumers
// re-query the full state on each signal, so a coalesced signal is
// equivalent to the individual ones it absorbed.
func watchCollection(ctx context.Context, c *mongo.Collection) (<-chan struct{}, func(), error) {
	stream, err := c.Watch(ctx, mongo.Pipeline{})
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
