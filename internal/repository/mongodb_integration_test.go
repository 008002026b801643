//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
)

func TestMongoRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupMongoRepository(t, DefaultMongoConfig())

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, "cart")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert and read back", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "cart", []byte(`[{"id":"P1","cantidad":1}]`)))
		require.NoError(t, repo.Set(ctx, "cart", []byte(`[{"id":"P1","cantidad":2}]`)))

		got, err := repo.Get(ctx, "cart")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"P1","cantidad":2}]`, string(got))

		count, err := repo.collection.CountDocuments(ctx, bson.M{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "token", []byte(`"abc"`)))
		require.NoError(t, repo.Delete(ctx, "token"))

		_, err := repo.Get(ctx, "token")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, repo.Delete(ctx, "token"))
	})

	t.Run("namespaced sessions share the collection", func(t *testing.T) {
		a := Namespaced(repo, "session:a")
		b := Namespaced(repo, "session:b")
		require.NoError(t, a.Set(ctx, "cart", []byte("A")))
		require.NoError(t, b.Set(ctx, "cart", []byte("B")))

		got, err := a.Get(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, "A", string(got))
	})
}

func TestMongoRepository_TTLIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := DefaultMongoConfig()
	cfg.TTL = time.Hour
	repo := setupMongoRepository(t, cfg)

	cursor, err := repo.collection.Indexes().List(ctx)
	require.NoError(t, err)
	var indexes []bson.M
	require.NoError(t, cursor.All(ctx, &indexes))

	var ttl any
	for _, idx := range indexes {
		if idx["name"] == "updated_at_ttl" {
			ttl = idx["expireAfterSeconds"]
		}
	}
	require.NotNil(t, ttl)
	assert.EqualValues(t, 3600, ttl)
}

func TestMongoRepository_WithCircuitBreaker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := setupMongoRepository(t, DefaultMongoConfig())

	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          100 * time.Millisecond,
		Name:             "mongodb-kv-test",
		IsFailure:        IsStorageFailure,
	})
	wrapped := NewKVRepositoryWithCircuitBreaker(repo, cb)

	require.NoError(t, wrapped.Set(ctx, "cart", []byte("[]")))
	_, err := wrapped.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	require.NoError(t, repo.Close(ctx))
	for i := 0; i < 2; i++ {
		assert.Error(t, wrapped.Set(ctx, "cart", []byte("[]")))
	}
	assert.True(t, cb.IsOpen())
	assert.ErrorIs(t, wrapped.Set(ctx, "cart", []byte("[]")), circuitbreaker.ErrCircuitOpen)
}
