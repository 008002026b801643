//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/repository"
)

func TestInitializeServices(t *testing.T) {
	cfg := testConfig(t)

	services, err := InitializeServices(cfg, repository.NewMemoryRepository())
	require.NoError(t, err)
	defer services.Close()

	assert.Equal(t, cfg.API.BaseURL, services.API.BaseURL())
	assert.Same(t, services.APIBreaker, services.API.CircuitBreaker())
	assert.True(t, services.Rules.TaxRate.Equal(cfg.Cart.TaxRate))
	assert.Equal(t, 0, services.Registry.Len())

	services.Registry.Shopper(context.Background(), "sid-1")
	assert.Equal(t, 1, services.Registry.Len())
}

func TestNewShopAPIClient_BreakerTripsOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Query().Get("q") {
		case "missing":
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		default:
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		}
	}))
	defer upstream.Close()

	cfg := testConfig(t).API
	cfg.BaseURL = upstream.URL
	cfg.CircuitBreakerFailureThreshold = 2

	api, cb := NewShopAPIClient(cfg)
	ctx := context.Background()

	// Client errors are the caller's fault and leave the breaker closed.
	for i := 0; i < 3; i++ {
		_, err := api.Suggestions(ctx, "missing", 5)
		require.Error(t, err)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	for i := 0; i < 2; i++ {
		_, err := api.Suggestions(ctx, "boom", 5)
		require.Error(t, err)
	}
	assert.True(t, cb.IsOpen())

	before := hits.Load()
	_, err := api.Suggestions(ctx, "boom", 5)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, before, hits.Load())
}
