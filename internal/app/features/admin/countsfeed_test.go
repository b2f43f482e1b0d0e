package admin_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/auraclub/aurahub/internal/app/features/admin"
	"github.com/auraclub/aurahub/internal/app/system/changefeed"
	"github.com/auraclub/aurahub/internal/domain/models"
	"go.uber.org/zap"
)

// stubStatusSource feeds the counts projector from memory.
type stubStatusSource struct {
	mu       sync.Mutex
	statuses []string
	notify   chan struct{}
}

func (s *stubStatusSource) Statuses(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.statuses))
	copy(out, s.statuses)
	return out, nil
}

func (s *stubStatusSource) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	return s.notify, func() {}, nil
}

// sseRecorder is a goroutine-safe ResponseWriter for reading a live SSE
// stream while the handler is still writing it.
type sseRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	wrote  chan struct{}
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{header: make(http.Header), wrote: make(chan struct{}, 16)}
}

func (r *sseRecorder) Header() http.Header { return r.header }
func (r *sseRecorder) WriteHeader(int)     {}
func (r *sseRecorder) Flush()              {}

func (r *sseRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	n, err := r.body.Write(p)
	r.mu.Unlock()
	select {
	case r.wrote <- struct{}{}:
	default:
	}
	return n, err
}

func (r *sseRecorder) contents() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

func (r *sseRecorder) waitFor(t *testing.T, marker string) {
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

// stubFlagsSource feeds the flags projector from memory.
type stubFlagsSource struct {
	mu     sync.Mutex
	flags  models.AdminFlags
	notify chan struct{}
}

func (s *stubFlagsSource) Flags(ctx context.Context) (models.AdminFlags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags, nil
}

func (s *stubFlagsSource) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	return s.notify, func() {}, nil
}

func TestServeCountsFeed_StreamsTallies(t *testing.T) {
	src := &stubStatusSource{
		statuses: []string{models.StatusUpcoming, models.StatusLive, models.StatusLive},
		notify:   make(chan struct{}, 1),
	}
	p := changefeed.NewCountsProjector(src, zap.NewNop())
	defer p.Close()

	h := admin.NewHandler(admin.Deps{Counts: p, Log: zap.NewNop()})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/admin/counts/feed", nil).WithContext(ctx)
	rec := newSSERecorder()
	done := make(chan struct{})
	go func() {
		h.ServeCountsFeed(rec, req)
		close(done)
	}()

	rec.waitFor(t, "event: counts")
	if !strings.Contains(rec.contents(), `"Live":2`) {
		t.Errorf("tally payload missing live count:\n%s", rec.contents())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	// A status change produces a fresh tally on the open stream.
	src.mu.Lock()
	src.statuses = append(src.statuses, models.StatusCompleted)
	src.mu.Unlock()
	src.notify <- struct{}{}
	rec.waitFor(t, `"Completed":1`)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after client disconnect")
	}
}

func TestServeCountsFeed_StreamsFlagToggles(t *testing.T) {
	counts := &stubStatusSource{notify: make(chan struct{}, 1)}
	cp := changefeed.NewCountsProjector(counts, zap.NewNop())
	defer cp.Close()

	flagSrc := &stubFlagsSource{
		flags:  models.DefaultAdminFlags(),
		notify: make(chan struct{}, 1),
	}
	fp := changefeed.NewFlagsProjector(flagSrc, zap.NewNop())
	defer fp.Close()

	h := admin.NewHandler(admin.Deps{Counts: cp, FlagsLive: fp, Log: zap.NewNop()})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/admin/counts/feed", nil).WithContext(ctx)
	rec := newSSERecorder()
	done := make(chan struct{})
	go func() {
		h.ServeCountsFeed(rec, req)
		close(done)
	}()
	defer func() { cancel(); <-done }()

	rec.waitFor(t, "event: flags")
	if !strings.Contains(rec.contents(), `"live_responses_enabled":true`) {
		t.Errorf("initial flags payload wrong:\n%s", rec.contents())
	}

	// A toggle in another session reaches this stream.
	flagSrc.mu.Lock()
	flagSrc.flags.LiveResponsesEnabled = false
	flagSrc.mu.Unlock()
	flagSrc.notify <- struct{}{}

	rec.waitFor(t, `"live_responses_enabled":false`)
}
