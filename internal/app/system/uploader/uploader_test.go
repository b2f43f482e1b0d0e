package uploader

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// stubEndpoint fails a configured number of times before succeeding, and
// captures the last payload it received.
type stubEndpoint struct {
	failures int
	calls    int
	lastKey  string
	lastBody []byte
}

func (s *stubEndpoint) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	s.calls++
	s.lastKey = key
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.lastBody = data
	if s.calls <= s.failures {
		return "", errors.New("connection reset")
	}
	return "https://cdn.example.com/" + key, nil
}

func newTestUploader(ep Endpoint) (*Uploader, *[]time.Duration) {
	u := New(ep, zap.NewNop())
	var delays []time.Duration
	u.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return u, &delays
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestUpload_Success(t *testing.T) {
	ep := &stubEndpoint{}
	u, _ := newTestUploader(ep)

	var progress []float64
	url, err := u.Upload(context.Background(), "poster.png", "image/png", testImage(t, 64, 64),
		func(p float64) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/events/") {
		t.Errorf("url: got %q", url)
	}
	if ep.calls != 1 {
		t.Errorf("calls: got %d, want 1", ep.calls)
	}

	want := []float64{0.10, 0.30, 0.50, 1}
	if len(progress) != len(want) {
		t.Fatalf("progress: got %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress[%d]: got %v, want %v", i, progress[i], want[i])
		}
	}
}

func TestUpload_RetriesThenSucceeds(t *testing.T) {
	ep := &stubEndpoint{failures: 2}
	u, delays := newTestUploader(ep)

	var progress []float64
	url, err := u.Upload(context.Background(), "poster.png", "image/png", testImage(t, 32, 32),
		func(p float64) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url == "" {
		t.Error("expected a URL after retries")
	}
	if ep.calls != 3 {
		t.Errorf("calls: got %d, want 3", ep.calls)
	}

	// Exponential backoff: base×2^1 before attempt 2, base×2^2 before 3.
	wantDelays := []time.Duration{2 * DefaultBaseDelay, 4 * DefaultBaseDelay}
	if len(*delays) != 2 || (*delays)[0] != wantDelays[0] || (*delays)[1] != wantDelays[1] {
		t.Errorf("delays: got %v, want %v", *delays, wantDelays)
	}

	// Progress resets to 0 at the start of attempts 2 and 3.
	zeros := 0
	for _, p := range progress {
		if p == 0 {
			zeros++
		}
	}
	if zeros != 2 {
		t.Errorf("progress resets: got %d, want 2 (progress %v)", zeros, progress)
	}
	if progress[len(progress)-1] != 1 {
		t.Errorf("final progress: got %v, want 1", progress[len(progress)-1])
	}
}

func TestUpload_ExhaustsRetries(t *testing.T) {
	ep := &stubEndpoint{failures: 10}
	u, _ := newTestUploader(ep)

	_, err := u.Upload(context.Background(), "poster.png", "image/png", testImage(t, 32, 32), nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if ep.calls != DefaultMaxAttempts {
		t.Errorf("calls: got %d, want %d", ep.calls, DefaultMaxAttempts)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error should mention attempt count: %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("error should include the last underlying cause: %v", err)
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	ep := &stubEndpoint{}
	u, _ := newTestUploader(ep)

	_, err := u.Upload(context.Background(), "notes.pdf", "application/pdf", []byte("%PDF"), nil)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("error: got %v, want ErrNotImage", err)
	}
	if ep.calls != 0 {
		t.Errorf("validation must short-circuit before network: %d calls", ep.calls)
	}
}

func TestUpload_RejectsOversized(t *testing.T) {
	ep := &stubEndpoint{}
	u, _ := newTestUploader(ep)

	big := make([]byte, MaxFileSize+1)
	_, err := u.Upload(context.Background(), "huge.png", "image/png", big, nil)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error: got %v, want ErrTooLarge", err)
	}
	if ep.calls != 0 {
		t.Errorf("validation must short-circuit before network: %d calls", ep.calls)
	}
}

func TestUpload_RejectsUndecodableImage(t *testing.T) {
	ep := &stubEndpoint{}
	u, _ := newTestUploader(ep)

	_, err := u.Upload(context.Background(), "fake.png", "image/png", []byte("not a png"), nil)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("error: got %v, want ErrNotImage", err)
	}
	if ep.calls != 0 {
		t.Errorf("validation must short-circuit before network: %d calls", ep.calls)
	}
}

func TestUpload_ResizesLargeImages(t *testing.T) {
	ep := &stubEndpoint{}
	u, _ := newTestUploader(ep)

	if _, err := u.Upload(context.Background(), "wide.png", "image/png", testImage(t, 2400, 1200), nil); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(ep.lastBody))
	if err != nil {
		t.Fatalf("decode uploaded payload: %v", err)
	}
	if got := img.Bounds().Dx(); got != MaxDimension {
		t.Errorf("width: got %d, want %d", got, MaxDimension)
	}
	if got := img.Bounds().Dy(); got != 600 {
		t.Errorf("height: got %d, want 600 (aspect preserved)", got)
	}
}

func TestUpload_DistinctKeysPerUpload(t *testing.T) {
	ep := &stubEndpoint{}
	u, _ := newTestUploader(ep)

	data := testImage(t, 16, 16)
	first, err := u.Upload(context.Background(), "poster.png", "image/png", data, nil)
	if err != nil {
		t.Fatalf("first Upload failed: %v", err)
	}
	second, err := u.Upload(context.Background(), "poster.png", "image/png", data, nil)
	if err != nil {
		t.Fatalf("second Upload failed: %v", err)
	}
	if first == second {
		t.Errorf("uploads of the same file must yield distinct references: %q", first)
	}
}
