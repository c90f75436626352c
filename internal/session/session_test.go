package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veritas-dashboard/internal/domain"
)

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: "admin@example.com",
		Name:  "Admin",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid token yields user and expiry", func(t *testing.T) {
		token := signToken(t, now.Add(time.Hour))

		s, err := Parse(token, now)
		require.NoError(t, err)
		assert.Equal(t, domain.User{
			ID:    "user-1",
			Email: "admin@example.com",
			Name:  "Admin",
			Role:  "admin",
		}, s.User)
		assert.False(t, s.Expired(now))
	})

	t.Run("expired token returns ErrExpired", func(t *testing.T) {
		token := signToken(t, now.Add(-time.Minute))

		_, err := Parse(token, now)
		assert.ErrorIs(t, err, ErrExpired)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := Parse("", now)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := Parse("not-a-jwt", now)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token without exp is invalid", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = Parse(token, now)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRegistryResolve(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("caches parsed sessions", func(t *testing.T) {
		r := NewRegistry(time.Minute, logger)
		r.now = func() time.Time { return now }
		token := signToken(t, now.Add(time.Hour))

		first, err := r.Resolve(token)
		require.NoError(t, err)
		second, err := r.Resolve(token)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, 1, r.Size())
	})

	t.Run("cached session past exp is evicted on next check", func(t *testing.T) {
		r := NewRegistry(time.Minute, logger)
		current := now
		r.now = func() time.Time { return current }
		token := signToken(t, now.Add(time.Hour))

		_, err := r.Resolve(token)
		require.NoError(t, err)

		current = now.Add(2 * time.Hour)
		_, err = r.Resolve(token)
		assert.ErrorIs(t, err, ErrExpired)
		assert.Equal(t, 0, r.Size())
	})

	t.Run("forget drops the session", func(t *testing.T) {
		r := NewRegistry(time.Minute, logger)
		r.now = func() time.Time { return now }
		token := signToken(t, now.Add(time.Hour))

		_, err := r.Resolve(token)
		require.NoError(t, err)
		r.Forget(token)
		assert.Equal(t, 0, r.Size())
	})
}

func TestRegistrySweep(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	r := NewRegistry(time.Minute, logger)
	current := now
	r.now = func() time.Time { return current }

	live := signToken(t, now.Add(time.Hour))
	stale := signToken(t, now.Add(time.Minute))

	_, err := r.Resolve(live)
	require.NoError(t, err)
	_, err = r.Resolve(stale)
	require.NoError(t, err)
	require.Equal(t, 2, r.Size())

	current = now.Add(30 * time.Minute)
	r.sweepOnce()

	assert.Equal(t, 1, r.Size())
	_, err = r.Resolve(live)
	assert.NoError(t, err)
}

func TestRegistrySweepStopsOnCancel(t *testing.T) {
	r := NewRegistry(time.Millisecond, slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Sweep(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop after cancel")
	}
}
