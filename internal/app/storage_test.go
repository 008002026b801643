//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/circuitbreaker"
)

func TestInitializeStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	base := config.StorageConfig{
		CircuitBreakerFailureThreshold: 3,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr bool
	}{
		{
			name:   "memory",
			mutate: func(c *config.StorageConfig) { c.Backend = config.BackendMemory },
		},
		{
			name: "file",
			mutate: func(c *config.StorageConfig) {
				c.Backend = config.BackendFile
				c.Dir = t.TempDir()
			},
		},
		{
			name: "redis",
			mutate: func(c *config.StorageConfig) {
				c.Backend = config.BackendRedis
				c.RedisAddr = mr.Addr()
				c.RedisPrefix = "test:"
			},
		},
		{
			name: "redis unreachable",
			mutate: func(c *config.StorageConfig) {
				c.Backend = config.BackendRedis
				c.RedisAddr = "127.0.0.1:1"
			},
			wantErr: true,
		},
		{
			name:    "unknown",
			mutate:  func(c *config.StorageConfig) { c.Backend = "etcd" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			ctx := context.Background()
			storage, err := InitializeStorage(ctx, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, storage)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, storage.Close(ctx)) }()

			assert.Equal(t, "storage-"+cfg.Backend, storage.Breaker.Name())
			assert.Equal(t, circuitbreaker.StateClosed, storage.Breaker.State())

			require.NoError(t, storage.Store.Set(ctx, "cart", []byte(`{"items":[]}`)))
			got, err := storage.Store.Get(ctx, "cart")
			require.NoError(t, err)
			assert.JSONEq(t, `{"items":[]}`, string(got))
			assert.NoError(t, storage.Store.Ping(ctx))
		})
	}
}

func TestStorageComponents_CloseNil(t *testing.T) {
	var s *StorageComponents
	assert.NoError(t, s.Close(context.Background()))
}
