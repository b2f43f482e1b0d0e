// Package uploader moves admin-selected event images to the object storage
// endpoint. The pipeline is validate → compress → transmit, with bounded
// retries and exponential backoff around transmission, and coarse progress
// reporting tied to pipeline stages rather than bytes.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"path/filepath"
	"strings"
	"time"

	// Decoders for the image formats the admin form accepts.
	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	// MaxFileSize is the pre-flight size ceiling (10 MiB).
	MaxFileSize = 10 << 20
	// MaxDimension bounds the longest side after compression.
	MaxDimension = 1200
	// JPEGQuality is the re-encode quality factor.
	JPEGQuality = 80

	// DefaultMaxAttempts bounds transmission retries.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay seeds the exponential backoff between attempts.
	DefaultBaseDelay = time.Second
)

// Validation errors. These short-circuit before any network activity.
var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("image exceeds the 10 MiB limit")
)

// Endpoint is the opaque upload boundary: a payload in, a publicly
// resolvable URL back.
type Endpoint interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ProgressFunc receives fractional progress in [0,1]. Values are
// monotonically non-decreasing within a single attempt and reset to 0 when
// a retry begins.
type ProgressFunc func(progress float64)

// Uploader is the resilient wrapper around an Endpoint.
type Uploader struct {
	endpoint    Endpoint
	log         *zap.Logger
	maxAttempts int
	baseDelay   time.Duration

	// sleep is swapped out in tests so backoff is observable without
	// waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New builds an Uploader with the default retry policy.
func New(endpoint Endpoint, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{
		endpoint:    endpoint,
		log:         logger,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		sleep:       sleepCtx,
	}
}

// Upload validates and compresses data, then transmits it, retrying failed
// transmissions with exponential backoff. On success it returns the stable
// URL of the uploaded asset. Uploading the same file twice produces two
// independent objects; no deduplication is attempted.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, data []byte, onProgress ProgressFunc) (string, error) {
	report := func(p float64) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", ErrNotImage
	}
	if len(data) > MaxFileSize {
		return "", ErrTooLarge
	}
	report(0.10)

	compressed, err := compress(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	report(0.30)

	key := objectKey(filename)

	var lastErr error
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := u.baseDelay * (1 << (attempt - 1))
			u.log.Warn("retrying upload",
				zap.String("key", key),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := u.sleep(ctx, delay); err != nil {
				return "", err
			}
			report(0)
		}

		report(0.50)
		url, err := u.endpoint.Put(ctx, key, "image/jpeg", bytes.NewReader(compressed))
		if err == nil {
			report(1)
			return url, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("upload failed after %d attempts: %w", u.maxAttempts, lastErr)
}

// compress decodes the image, shrinks it so the longest side does not
// exceed MaxDimension (preserving aspect ratio), and re-encodes as JPEG.
func compress(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > MaxDimension || h > MaxDimension {
		scale := float64(MaxDimension) / float64(w)
		if h > w {
			scale = float64(MaxDimension) / float64(h)
		}
		dw := int(float64(w)*scale + 0.5)
		dh := int(float64(h)*scale + 0.5)
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// objectKey builds a unique storage key: events/YYYY/MM/<uuid8>-<name>.jpg.
// The original extension is dropped because the payload is re-encoded.
func objectKey(filename string) string {
	now := time.Now().UTC()
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := sanitizeFilename(base)
	return fmt.Sprintf("events/%04d/%02d/%s-%s.jpg", now.Year(), now.Month(), uuid.New().String()[:8], name)
}

// sanitizeFilename replaces characters that could be problematic in object
// keys and bounds the length.
func sanitizeFilename(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "image"
	}
	if len(result) > 80 {
		result = result[:80]
	}
	return string(result)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
