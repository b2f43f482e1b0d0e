// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit throttles admin sign-in attempts. The site has a
// handful of admin accounts at most, so the limiter keeps everything in
// memory: a sliding window per client IP and a stricter one per account
// email.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts hits per key over a fixed window. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	hits    int
	resetAt time.Time
}

// New returns a limiter allowing limit hits per key per window. A
// background sweep drops stale keys so the map stays small.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go l.sweep(2 * window)
	return l
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &bucket{hits: 1, resetAt: now.Add(l.window)}
		return true
	}
	if b.hits >= l.limit {
		return false
	}
	b.hits++
	return true
}

// Reset forgets all hits for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

func (l *Limiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP returns the requesting client's IP, honoring the forwarding
// headers set by the reverse proxy in front of the app.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First entry is the original client.
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Login limits: a shared computer lab behind one NAT still gets a fair
// number of tries per minute, while a single admin account locks down
// harder under a targeted guess.
const (
	ipLimit     = 8
	ipWindow    = time.Minute
	emailLimit  = 5
	emailWindow = 10 * time.Minute
)

// LoginLimiter combines the per-IP and per-account windows for the admin
// sign-in form.
type LoginLimiter struct {
	byIP    *Limiter
	byEmail *Limiter
}

func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		byIP:    New(ipLimit, ipWindow),
		byEmail: New(emailLimit, emailWindow),
	}
}

// Check records a sign-in attempt and reports whether it may proceed.
// reason is user-facing and set only when blocked.
func (ll *LoginLimiter) Check(r *http.Request, email string) (allowed bool, reason string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return false, "Too many sign-in attempts. Please wait a minute before trying again."
	}
	if email != "" {
		if !ll.byEmail.Allow(normalizeEmail(email)) {
			return false, "Too many sign-in attempts for this account. Please wait a few minutes."
		}
	}
	return true, ""
}

// ResetEmail clears the account window after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(email string) {
	if email != "" {
		ll.byEmail.Reset(normalizeEmail(email))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
