// Package session implements the dashboard's login gate. It is a UX gate,
// not a security boundary: the upstream review API verifies token
// signatures on every call, while this package only reads the claims to
// decide, without a round trip, whether the UI should show the login
// modal. Expiry is re-checked on a fixed interval so an idle dashboard
// logs itself out when its token lapses.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"veritas-dashboard/internal/domain"
)

var (
	// ErrMissingToken is returned when no token accompanies the request.
	ErrMissingToken = errors.New("missing session token")
	// ErrInvalidToken is returned when the token cannot be decoded.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpired is returned when the token's exp is in the past.
	ErrExpired = errors.New("session expired")
)

// Claims are the JWT claims the review API issues at login.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session is one decoded login session.
type Session struct {
	User      domain.User
	ExpiresAt time.Time
}

// Expired reports whether the session has lapsed as of now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Parse decodes a token into a Session. The signature is not verified
// here; only the claims are read. An expired token parses but returns
// ErrExpired so callers can distinguish "log in again" from "garbage".
func Parse(token string, now time.Time) (*Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	s := &Session{
		User: domain.User{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if s.Expired(now) {
		return s, ErrExpired
	}
	return s, nil
}

// Registry caches decoded sessions by token so the gate does not re-parse
// the same JWT on every request, and sweeps lapsed entries on an interval.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewRegistry creates a registry sweeping at the given interval.
func NewRegistry(interval time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Resolve returns the session for a token, parsing and caching it on first
// sight. An expired token is evicted immediately and reported as ErrExpired,
// forcing the logged-out state without waiting for the next sweep.
func (r *Registry) Resolve(token string) (*Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	key := tokenKey(token)

	r.mu.Lock()
	cached, found := r.sessions[key]
	r.mu.Unlock()

	if found {
		if cached.Expired(r.now()) {
			r.evict(key)
			return nil, ErrExpired
		}
		return cached, nil
	}

	s, err := Parse(token, r.now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[key] = s
	r.mu.Unlock()
	return s, nil
}

// Forget drops the session for a token, used by logout.
func (r *Registry) Forget(token string) {
	if token == "" {
		return
	}
	r.evict(tokenKey(token))
}

// Size returns the number of cached sessions.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep blocks, evicting expired sessions every interval until ctx is
// cancelled. Run it in its own goroutine; cancelling the context releases
// the ticker.
func (r *Registry) Sweep(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweepOnce()
		}
	}
}

func (r *Registry) sweepOnce() {
	now := r.now()

	r.mu.Lock()
	var evicted int
	for key, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, key)
			evicted++
		}
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	if evicted > 0 {
		r.logger.Debug("evicted expired sessions", "evicted", evicted, "remaining", remaining)
	}
}

func (r *Registry) evict(key string) {
	r.mu.Lock()
	delete(r.sessions, key)
	r.mu.Unlock()
}

// tokenKey hashes the token so raw credentials are never map keys.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
