// Package resilience guards calls to the upstream review API. A single
// breaker fronts the whole API: when upstream fails repeatedly, list views
// fail fast with a retry hint instead of stacking up timed-out fetches.
package resilience

import (
	"sync"
	"time"
)

// State of the breaker.
type State int

const (
	// StateClosed means calls flow normally.
	StateClosed State = iota
	// StateOpen means upstream is considered down and calls are rejected.
	StateOpen
	// StateHalfOpen means a probe call is testing whether upstream recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config holds breaker thresholds.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes before closing.
	SuccessThreshold int
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultConfig returns thresholds suitable for a single upstream API.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	}
}

// Breaker implements the circuit breaker pattern around upstream calls.
type Breaker struct {
	mu sync.Mutex

	config Config

	state           State
	consecFailures  int
	consecSuccesses int
	openedAt        time.Time
}

// New creates a breaker in the closed state.
func New(config Config) *Breaker {
	return &Breaker{config: config, state: StateClosed}
}

// Allow reports whether a call may proceed, transitioning open to half-open
// once the open timeout has elapsed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(b.openedAt) > b.config.OpenTimeout {
			b.state = StateHalfOpen
			b.consecSuccesses = 0
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess records a successful upstream call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecFailures = 0
	b.consecSuccesses++

	if b.state == StateHalfOpen && b.consecSuccesses >= b.config.SuccessThreshold {
		b.state = StateClosed
		b.consecSuccesses = 0
	}
}

// RecordFailure records a failed upstream call. Any half-open failure
// reopens the breaker immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecSuccesses = 0
	b.consecFailures++

	switch b.state {
	case StateClosed:
		if b.consecFailures >= b.config.FailureThreshold {
			b.state = StateOpen
			b.openedAt = time.Now()
		}
	case StateHalfOpen:
		b.state = StateOpen
		b.openedAt = time.Now()
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// RetryAfter returns how many whole seconds remain until the breaker will
// probe upstream again. Zero when not open.
func (b *Breaker) RetryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateOpen {
		return 0
	}
	remaining := b.config.OpenTimeout - time.Since(b.openedAt)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}
