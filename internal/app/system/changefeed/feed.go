// internal/app/system/changefeed/feed.go
package changefeed

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// fetchFunc produces the current fully materialized value for a feed.
type fetchFunc[T any] func(ctx context.Context) (T, error)

// watchFunc opens the underlying change-notification channel. The returned
// stop function releases it.
type watchFunc func(ctx context.Context) (<-chan struct{}, func(), error)

// delivery is one queued callback invocation for a subscriber. Exactly one
// of value/err is meaningful.
type delivery[T any] struct {
	value T
	err   error
}

// subscriber owns a private queue so a slow callback never blocks other
// subscribers, and so deliveries to one subscriber stay strictly ordered.
type subscriber[T any] struct {
	onData func(T)
	onErr  func(error)

	queue chan delivery[T]
	done  chan struct{}
	once  sync.Once
}

func (s *subscriber[T]) pump() {
	for {
		select {
		case <-s.done:
			return
		case d := <-s.queue:
			if d.err != nil {
				if s.onErr != nil {
					s.onErr(d.err)
				}
				continue
			}
			s.onData(d.value)
		}
	}
}

func (s *subscriber[T]) enqueue(d delivery[T]) {
	select {
	case <-s.done:
	case s.queue <- d:
	}
}

func (s *subscriber[T]) cancel() {
	s.once.Do(func() { close(s.done) })
}

// feed is the shared engine behind Projector and CountsProjector. It runs a
// single loop per active feed: fetch a full snapshot, hand it to every
// subscriber, block until the source signals a change, repeat. Errors from
// the source are delivered once to each subscriber and end the loop; the
// next Subscribe starts a fresh one (retry is the caller's decision).
type feed[T any] struct {
	fetch fetchFunc[T]
	watch watchFunc
	log   *zap.Logger

	mu      sync.Mutex
	subs    map[int]*subscriber[T]
	nextID  int
	running bool
	gen     int
	stop    context.CancelFunc
	last    *T
}

func newFeed[T any](fetch fetchFunc[T], watch watchFunc, logger *zap.Logger) *feed[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &feed[T]{
		fetch: fetch,
		watch: watch,
		log:   logger,
		subs:  make(map[int]*subscriber[T]),
	}
}

// subscribe registers the callbacks and returns an idempotent cancel. The
// first invocation of onData happens asynchronously once a snapshot is
// available; subscribe itself never blocks on the source.
func (f *feed[T]) subscribe(onData func(T), onErr func(error)) func() {
	sub := &subscriber[T]{
		onData: onData,
		onErr:  onErr,
		queue:  make(chan delivery[T], 16),
		done:   make(chan struct{}),
	}
	go sub.pump()

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = sub
	if f.last != nil {
		// Late joiner: seed it with the most recent snapshot so it does
		// not wait for the next change.
		sub.enqueue(delivery[T]{value: *f.last})
	}
	if !f.running {
		f.running = true
		f.gen++
		ctx, cancel := context.WithCancel(context.Background())
		f.stop = cancel
		go f.run(ctx, f.gen)
	}
	f.mu.Unlock()

	return func() {
		sub.cancel()
		f.mu.Lock()
		delete(f.subs, id)
		if len(f.subs) == 0 && f.running {
			// Last subscriber gone: release the underlying channel and
			// drop the cached snapshot so a future subscribe refetches.
			f.stop()
			f.running = false
			f.last = nil
		}
		f.mu.Unlock()
	}
}

func (f *feed[T]) run(ctx context.Context, gen int) {
	defer func() {
		// Mark the feed stopped unless a newer loop has already replaced
		// this one.
		f.mu.Lock()
		if f.gen == gen {
			f.running = false
			f.last = nil
		}
		f.mu.Unlock()
	}()

	notify, stopWatch, err := f.watch(ctx)
	if err != nil {
		f.fail(err)
		return
	}
	defer stopWatch()

	for {
		value, err := f.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.fail(err)
			return
		}
		f.broadcast(value)

		select {
		case <-ctx.Done():
			return
		case _, ok := <-notify:
			if !ok {
				// Notification channel closed by the source; treat like
				// cancellation, callers resubscribe to reload.
				return
			}
		}
	}
}

// broadcast hands a complete snapshot to every current subscriber and
// caches it for late joiners. Holding the lock across the enqueues
// linearizes deliveries with subscribe/cancel, which keeps per-subscriber
// ordering strict.
func (f *feed[T]) broadcast(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = &value
	for _, sub := range f.subs {
		sub.enqueue(delivery[T]{value: value})
	}
}

// fail reports a source error once to each subscriber. No automatic retry:
// the notification channel is considered dead until a new subscription
// restarts the loop.
func (f *feed[T]) fail(err error) {
	f.log.Warn("change feed error", zap.Error(err))
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		sub.enqueue(delivery[T]{err: err})
	}
}

// close tears the feed down regardless of subscriber count. Used at app
// shutdown.
func (f *feed[T]) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		f.stop()
		f.running = false
	}
	for id, sub := range f.subs {
		sub.cancel()
		delete(f.subs, id)
	}
	f.last = nil
}
