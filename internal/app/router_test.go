//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name        string
		rateLimit   int
		withStorage bool
		wantLimiter bool
	}{
		{name: "with limiter and storage", rateLimit: 10, withStorage: true, wantLimiter: true},
		{name: "limiter disabled", rateLimit: 0, withStorage: true},
		{name: "without storage checks", rateLimit: 10, wantLimiter: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Server.RateLimit = tt.rateLimit

			storage, err := InitializeStorage(context.Background(), cfg.Storage)
			require.NoError(t, err)
			services, err := InitializeServices(cfg, storage.Store)
			require.NoError(t, err)
			defer services.Close()

			if !tt.withStorage {
				storage = nil
			}
			router := InitializeRouter(services, storage, cfg)
			defer router.Stop()

			assert.NotNil(t, router.Handler)
			assert.NotNil(t, router.HealthHandler)
			assert.Equal(t, tt.wantLimiter, router.Config.Limiter != nil)
			assert.True(t, router.Config.Idempotency.Enabled)
			assert.NotNil(t, router.Config.Idempotency.Cache)
			assert.Equal(t, cfg.Server.RequestTimeout, router.Config.RequestTimeout)
		})
	}
}
