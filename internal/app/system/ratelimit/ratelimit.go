// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in fixed windows. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    int
	duration time.Duration
}

type bucket struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing at most limit requests per duration per key.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		buckets:  make(map[string]*bucket),
		limit:    limit,
		duration: duration,
	}
	go l.cleanupLoop(duration * 2)
	return l
}

// Allow records a request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.expiresAt) {
		l.buckets[key] = &bucket{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Reset clears the count for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// cleanupLoop drops expired buckets so idle keys do not accumulate.
func (l *Limiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, b := range l.buckets {
			if now.After(b.expiresAt) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client address from a request, preferring the
// proxy headers over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
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

// LoginLimiter throttles credential checks on two axes: per source IP and
// per target account, so neither a single host nor a single mailbox can be
// hammered.
type LoginLimiter struct {
	ips    *Limiter
	emails *Limiter
}

// NewLoginLimiter returns a limiter with the default login budgets:
// 10 attempts per IP per minute, 5 attempts per account per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewLoginLimiterWithConfig returns a limiter with explicit budgets.
func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *LoginLimiter {
	return &LoginLimiter{
		ips:    New(ipLimit, ipWindow),
		emails: New(emailLimit, emailWindow),
	}
}

// Check records a login attempt and reports whether it may proceed. When
// blocked, the second return value is the message for the client.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.ips.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please try again in a minute."
	}
	if email != "" {
		if !ll.emails.Allow(strings.ToLower(strings.TrimSpace(email))) {
			return false, "Too many login attempts for this account. Please try again later."
		}
	}
	return true, ""
}

// ResetEmail clears the per-account count after a successful login.
func (ll *LoginLimiter) ResetEmail(email string) {
	if email != "" {
		ll.emails.Reset(strings.ToLower(strings.TrimSpace(email)))
	}
}
