package repository

import (
	"context"
	"errors"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
)

// KVRepositoryWithCircuitBreaker wraps a backend with circuit breaker
// protection. A missing key is an answer, not a failure.
type KVRepositoryWithCircuitBreaker struct {
	repo           KVRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewKVRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewKVRepositoryWithCircuitBreaker(repo KVRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *KVRepositoryWithCircuitBreaker {
	return &KVRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// IsStorageFailure reports whether err should count against a storage
// breaker.
func IsStorageFailure(err error) bool {
	return !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidKey)
}

// Get reads key with circuit breaker protection.
func (r *KVRepositoryWithCircuitBreaker) Get(ctx context.Context, key string) ([]byte, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]byte, error) {
		return r.repo.Get(ctx, key)
	})
}

// Set writes key with circuit breaker protection.
func (r *KVRepositoryWithCircuitBreaker) Set(ctx context.Context, key string, value []byte) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Set(ctx, key, value)
	})
}

// Delete removes key with circuit breaker protection.
func (r *KVRepositoryWithCircuitBreaker) Delete(ctx context.Context, key string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, key)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *KVRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// Ping forwards to the wrapped backend when it supports health checks.
func (r *KVRepositoryWithCircuitBreaker) Ping(ctx context.Context) error {
	if p, ok := r.repo.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close forwards to the wrapped backend when it holds a connection.
func (r *KVRepositoryWithCircuitBreaker) Close(ctx context.Context) error {
	if c, ok := r.repo.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
