// Package circuitbreaker guards calls to the shop API and to the storage
// backends so a dead dependency is not hammered on every request. It wraps
// sony/gobreaker with the failure filter, metrics and stats the rest of the
// service expects.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/semanticshop/storefront/internal/metrics"
)

var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = gobreaker.ErrOpenState
	// ErrTooManyRequests is returned in half-open state once the allowed
	// trial calls are all in flight.
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
)

// State represents the state of the circuit breaker. The numeric values
// are exported as the breaker gauge.
type State = gobreaker.State

const (
	// StateClosed lets every call through.
	StateClosed = gobreaker.StateClosed
	// StateHalfOpen lets SuccessThreshold trial calls through.
	StateHalfOpen = gobreaker.StateHalfOpen
	// StateOpen rejects calls until the timeout elapses.
	StateOpen = gobreaker.StateOpen
)

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive successes needed to
	// close from half-open. It also caps the calls admitted while half-open.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before letting a call through.
	Timeout time.Duration
	// Name identifies the breaker in logs, metrics and health output.
	Name string
	// IsFailure decides whether an error counts against the breaker.
	// Nil counts every error except context cancellation.
	IsFailure func(error) bool
	// OnStateChange is called after every transition. It runs under the
	// breaker lock and must not call back into the breaker.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a default circuit breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker implements the circuit breaker pattern on top of
// gobreaker.
type CircuitBreaker struct {
	config Config
	cb     *gobreaker.CircuitBreaker[struct{}]

	mu          sync.Mutex
	lastFailure time.Time
}

// New creates a new circuit breaker with the given configuration.
func New(config Config) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	b := &CircuitBreaker{config: config}

	threshold := uint32(config.FailureThreshold)
	b.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: uint32(config.SuccessThreshold),
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !b.countsAsFailure(err)
		},
		OnStateChange: b.onStateChange,
	})
	metrics.SetCircuitBreakerState(config.Name, int(StateClosed))
	return b
}

// Name returns the configured name.
func (b *CircuitBreaker) Name() string {
	return b.config.Name
}

// Execute runs fn under breaker protection. It returns ErrCircuitOpen
// without calling fn while the circuit is open.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.cb.Execute(func() (struct{}, error) {
		callErr := fn()
		if callErr != nil && b.countsAsFailure(callErr) {
			b.mu.Lock()
			b.lastFailure = time.Now()
			b.mu.Unlock()
		}
		return struct{}{}, callErr
	})
	return err
}

// Do is Execute for calls that produce a value. A nil breaker calls fn
// directly.
func Do[T any](ctx context.Context, cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	var result T
	err := cb.Execute(ctx, func() error {
		var callErr error
		result, callErr = fn()
		return callErr
	})
	return result, err
}

func (b *CircuitBreaker) countsAsFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if b.config.IsFailure != nil {
		return b.config.IsFailure(err)
	}
	return true
}

func (b *CircuitBreaker) onStateChange(name string, from, to State) {
	metrics.SetCircuitBreakerState(name, int(to))
	switch {
	case to == StateOpen && from == StateHalfOpen:
		log.Warn().Str("circuit_breaker", name).Msg("Circuit breaker reopened after half-open failure")
	case to == StateOpen:
		log.Warn().Str("circuit_breaker", name).Msg("Circuit breaker opened due to failures")
	case to == StateHalfOpen:
		log.Info().Str("circuit_breaker", name).Msg("Circuit breaker transitioning to half-open")
	case to == StateClosed:
		log.Info().Str("circuit_breaker", name).Msg("Circuit breaker closed after successful recovery")
	}
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(name, from, to)
	}
}

// State returns the current state of the circuit breaker.
func (b *CircuitBreaker) State() State {
	return b.cb.State()
}

// IsOpen returns true if the circuit breaker is open.
func (b *CircuitBreaker) IsOpen() bool {
	return b.State() == StateOpen
}

// Stats is a point-in-time snapshot of the breaker.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"is_healthy"`
}

// GetStats returns current circuit breaker statistics. Counts restart on
// every state change.
func (b *CircuitBreaker) GetStats() Stats {
	state := b.cb.State()
	counts := b.cb.Counts()

	b.mu.Lock()
	last := b.lastFailure
	b.mu.Unlock()

	return Stats{
		Name:         b.config.Name,
		State:        state.String(),
		FailureCount: int(counts.ConsecutiveFailures),
		SuccessCount: int(counts.ConsecutiveSuccesses),
		LastFailure:  last,
		IsHealthy:    state != StateOpen,
	}
}
