//go:build !integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepositoryFromClient(client, "storefront:", ttl), mr
}

func TestRedisRepository_UsesPrefix(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)

	require.NoError(t, repo.Set(context.Background(), "cart", []byte("[]")))

	got, err := mr.Get("storefront:cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestRedisRepository_TTL(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "cart", []byte("[]")))
	assert.Equal(t, time.Hour, mr.TTL("storefront:cart"))

	mr.FastForward(2 * time.Hour)
	_, err := repo.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRepository_ConnectionErrors(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))

	mr.Close()

	_, err := repo.Get(ctx, "cart")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "redis get failed")
	assert.True(t, IsStorageFailure(err))
}

func TestNewRedisRepository(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		repo, err := NewRedisRepository(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "x:"})
		require.NoError(t, err)
		defer func() { _ = repo.Close(context.Background()) }()

		require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
		assert.True(t, mr.Exists("x:k"))
	})

	t.Run("fails fast when unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := NewRedisRepository(ctx, RedisConfig{Addr: addr})
		assert.Error(t, err)
	})
}
