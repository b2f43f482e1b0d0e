// Package changefeed turns push-based change notifications from the event
// store into consistent, fully materialized view state.
//
// Two independent projections exist over the same collection: Projector
// delivers the complete ordered event list, CountsProjector delivers the
// per-status summary. Each Subscribe call is an independent subscription
// with its own cancel; snapshots handed to a callback are always complete
// (never diffs) and strictly ordered within that subscription. There is no
// ordering guarantee between the two projections.
package changefeed

import (
	"context"

	"github.com/auraclub/aurahub/internal/domain/models"
	"go.uber.org/zap"
)

// Source is the event store contract the Projector consumes: a full
// ordered result set on demand, plus a channel that fires whenever the
// underlying collection changes. The store owns the ordering (created_at
// descending); the projector preserves whatever order Snapshot returns.
type Source interface {
	Snapshot(ctx context.Context) ([]models.Event, error)
	Watch(ctx context.Context) (notify <-chan struct{}, stop func(), err error)
}

// StatusSource is the narrow contract for the counts projection. Statuses
// returns only the status field of every event; no full records are
// materialized.
type StatusSource interface {
	Statuses(ctx context.Context) ([]string, error)
	Watch(ctx context.Context) (notify <-chan struct{}, stop func(), err error)
}

// Projector maintains a live, ordered, de-duplicated view of all events.
type Projector struct {
	f *feed[[]models.Event]
}

// NewProjector builds a projector over src. The feed is lazy: nothing is
// fetched or watched until the first Subscribe.
func NewProjector(src Source, logger *zap.Logger) *Projector {
	return &Projector{
		f: newFeed[[]models.Event](src.Snapshot, src.Watch, logger),
	}
}

// Subscribe registers callbacks and returns an idempotent cancel function.
// onData receives the complete current event list; the first invocation is
// asynchronous, once the initial snapshot arrives. onErr (optional)
// receives source errors; the projector does not retry — resubscribing is
// the caller's reload action.
func (p *Projector) Subscribe(onData func([]models.Event), onErr func(error)) (cancel func()) {
	return p.f.subscribe(onData, onErr)
}

// Close tears down all subscriptions and the underlying watch channel.
func (p *Projector) Close() { p.f.close() }

// CountsProjector tracks only the status of each event and emits the
// four-value summary on every change.
type CountsProjector struct {
	f *feed[models.EventCounts]
}

// NewCountsProjector builds the summary projector over src.
func NewCountsProjector(src StatusSource, logger *zap.Logger) *CountsProjector {
	fetch := func(ctx context.Context) (models.EventCounts, error) {
		statuses, err := src.Statuses(ctx)
		if err != nil {
			return models.EventCounts{}, err
		}
		return CountStatuses(statuses), nil
	}
	return &CountsProjector{f: newFeed[models.EventCounts](fetch, src.Watch, logger)}
}

// Subscribe registers callbacks and returns an idempotent cancel function.
func (p *CountsProjector) Subscribe(onData func(models.EventCounts), onErr func(error)) (cancel func()) {
	return p.f.subscribe(onData, onErr)
}

// Close tears down all subscriptions and the underlying watch channel.
func (p *CountsProjector) Close() { p.f.close() }

// FlagsSource is the contract for the admin-flags projection.
type FlagsSource interface {
	Flags(ctx context.Context) (models.AdminFlags, error)
	Watch(ctx context.Context) (notify <-chan struct{}, stop func(), err error)
}

// FlagsProjector keeps a live view of the site-wide admin flags, so a
// toggle made in one admin session shows up in every other open one.
type FlagsProjector struct {
	f *feed[models.AdminFlags]
}

// NewFlagsProjector builds the flags projector over src.
func NewFlagsProjector(src FlagsSource, logger *zap.Logger) *FlagsProjector {
	return &FlagsProjector{f: newFeed[models.AdminFlags](src.Flags, src.Watch, logger)}
}

// Subscribe registers callbacks and returns an idempotent cancel function.
func (p *FlagsProjector) Subscribe(onData func(models.AdminFlags), onErr func(error)) (cancel func()) {
	return p.f.subscribe(onData, onErr)
}

// Close tears down all subscriptions and the underlying watch channel.
func (p *FlagsProjector) Close() { p.f.close() }

// CountStatuses tallies event statuses into the summary. Unknown statuses
// are ignored; Total counts only recognized ones, matching the public
// dashboard's definition.
func CountStatuses(statuses []string) models.EventCounts {
	var c models.EventCounts
	for _, s := range statuses {
		switch s {
		case models.StatusUpcoming:
			c.Upcoming++
		case models.StatusLive:
			c.Live++
		case models.StatusCompleted:
			c.Completed++
		}
	}
	c.Total = c.Upcoming + c.Live + c.Completed
	return c
}
