package events_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/auraclub/aurahub/internal/app/features/events"
	"github.com/auraclub/aurahub/internal/app/system/changefeed"
	"github.com/auraclub/aurahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// stubFeedSource is an in-memory projector source; no Mongo needed.
type stubFeedSource struct {
	mu      sync.Mutex
	events  []models.Event
	snapErr error
	notify  chan struct{}
}

func (s *stubFeedSource) Snapshot(ctx context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapErr != nil {
		return nil, s.snapErr
	}
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *stubFeedSource) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	return s.notify, func() {}, nil
}

// streamRecorder is a goroutine-safe ResponseWriter for reading a live
// SSE stream while the handler is still writing it.
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	wrote  chan struct{}
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header), wrote: make(chan struct{}, 16)}
}

func (r *streamRecorder) Header() http.Header { return r.header }
func (r *streamRecorder) WriteHeader(int)     {}
func (r *streamRecorder) Flush()              {}

func (r *streamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	n, err := r.body.Write(p)
	r.mu.Unlock()
	select {
	case r.wrote <- struct{}{}:
	default:
	}
	return n, err
}

func (r *streamRecorder) contents() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

// waitFor blocks until the stream contains marker or the deadline passes.
func (r *streamRecorder) waitFor(t *testing.T, marker string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !strings.Contains(r.contents(), marker) {
		select {
		case <-r.wrote:
		case <-deadline:
			t.Fatalf("timed out waiting for %q in stream:\n%s", marker, r.contents())
		}
	}
}

func serveFeed(h *events.FeedHandler) (*streamRecorder, context.CancelFunc, chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events/feed", nil).WithContext(ctx)
	rec := newStreamRecorder()
	done := make(chan struct{})
	go func() {
		h.Serve(rec, req)
		close(done)
	}()
	return rec, cancel, done
}

func TestFeed_StreamsSnapshot(t *testing.T) {
	src := &stubFeedSource{
		events: []models.Event{{ID: primitive.NewObjectID(), Title: "Poetry Night", Status: models.StatusUpcoming}},
		notify: make(chan struct{}, 1),
	}
	p := changefeed.NewProjector(src, zap.NewNop())
	defer p.Close()

	h := events.NewFeedHandler(p, zap.NewNop())
	rec, cancel, done := serveFeed(h)

	rec.waitFor(t, "event: snapshot")
	if !strings.Contains(rec.contents(), "Poetry Night") {
		t.Errorf("snapshot payload missing event title:\n%s", rec.contents())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after client disconnect")
	}
}

func TestFeed_DeliversUpdatedSnapshot(t *testing.T) {
	src := &stubFeedSource{notify: make(chan struct{}, 1)}
	p := changefeed.NewProjector(src, zap.NewNop())
	defer p.Close()

	h := events.NewFeedHandler(p, zap.NewNop())
	rec, cancel, done := serveFeed(h)
	defer func() { cancel(); <-done }()

	rec.waitFor(t, "event: snapshot")

	src.mu.Lock()
	src.events = []models.Event{{ID: primitive.NewObjectID(), Title: "Sketch Jam", Status: models.StatusLive}}
	src.mu.Unlock()
	src.notify <- struct{}{}

	rec.waitFor(t, "Sketch Jam")
}

func TestFeed_SourceErrorSendsErrorEvent(t *testing.T) {
	src := &stubFeedSource{
		snapErr: errors.New("change stream gone"),
		notify:  make(chan struct{}, 1),
	}
	p := changefeed.NewProjector(src, zap.NewNop())
	defer p.Close()

	h := events.NewFeedHandler(p, zap.NewNop())
	rec, cancel, done := serveFeed(h)
	defer func() { cancel(); <-done }()

	rec.waitFor(t, "event: error")
	if !strings.Contains(rec.contents(), "event feed interrupted") {
		t.Errorf("error payload missing message:\n%s", rec.contents())
	}
}
