//go:build !integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/mocks"
	"github.com/semanticshop/storefront/internal/repository"
)

func newStorageBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "storage-test",
		IsFailure:        repository.IsStorageFailure,
	})
}

func TestKVRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("passes values through", func(t *testing.T) {
		inner := new(mocks.MockKVRepositoryInterface)
		inner.On("Get", mock.Anything, "cart").Return([]byte("[]"), nil)
		inner.On("Set", mock.Anything, "cart", []byte("[1]")).Return(nil)
		inner.On("Delete", mock.Anything, "cart").Return(nil)

		repo := repository.NewKVRepositoryWithCircuitBreaker(inner, newStorageBreaker())

		got, err := repo.Get(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
		require.NoError(t, repo.Set(ctx, "cart", []byte("[1]")))
		require.NoError(t, repo.Delete(ctx, "cart"))

		inner.AssertExpectations(t)
	})

	t.Run("missing keys do not trip the breaker", func(t *testing.T) {
		inner := new(mocks.MockKVRepositoryInterface)
		inner.On("Get", mock.Anything, "cart").Return(nil, repository.ErrNotFound)

		cb := newStorageBreaker()
		repo := repository.NewKVRepositoryWithCircuitBreaker(inner, cb)

		for i := 0; i < 5; i++ {
			_, err := repo.Get(ctx, "cart")
			assert.ErrorIs(t, err, repository.ErrNotFound)
		}
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	})

	t.Run("backend failures open the circuit", func(t *testing.T) {
		inner := new(mocks.MockKVRepositoryInterface)
		inner.On("Set", mock.Anything, "cart", mock.Anything).Return(errors.New("connection refused")).Twice()

		cb := newStorageBreaker()
		repo := repository.NewKVRepositoryWithCircuitBreaker(inner, cb)

		assert.Error(t, repo.Set(ctx, "cart", []byte("[]")))
		assert.Error(t, repo.Set(ctx, "cart", []byte("[]")))
		assert.True(t, cb.IsOpen())

		err := repo.Set(ctx, "cart", []byte("[]"))
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		inner.AssertNumberOfCalls(t, "Set", 2)
		assert.Same(t, cb, repo.GetCircuitBreaker())
	})

	t.Run("ping and close are optional", func(t *testing.T) {
		repo := repository.NewKVRepositoryWithCircuitBreaker(new(mocks.MockKVRepositoryInterface), newStorageBreaker())
		assert.NoError(t, repo.Ping(ctx))
		assert.NoError(t, repo.Close(ctx))
	})
}
