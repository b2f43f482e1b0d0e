// internal/app/store/flags/feed.go
package flagstore

import (
	"context"

	"github.com/auraclub/aurahub/internal/domain/models"
)

// Feed exposes the flags document as a live snapshot source for the
// changefeed projector: Watch signals a change, Flags re-reads the
// document.
type Feed struct {
	store *Store
}

// NewFeed wraps a store for live subscription use.
func NewFeed(store *Store) *Feed {
	return &Feed{store: store}
}

// Flags returns the current global flags.
func (f *Feed) Flags(ctx context.Context) (models.AdminFlags, error) {
	return f.store.Get(ctx)
}

// Watch opens a change stream over the flags collection.
func (f *Feed) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	return f.store.Watch(ctx)
}
