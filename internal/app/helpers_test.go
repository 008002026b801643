package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/semanticshop/storefront/config"
)

// testConfig returns a valid configuration over an in-memory store.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		API: config.APIConfig{
			BaseURL:                        "http://shop.test",
			Timeout:                        time.Second,
			UserAgent:                      "storefront-test",
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          time.Second,
		},
		Storage: config.StorageConfig{
			Backend:                        config.BackendMemory,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          time.Second,
		},
		Cart: config.CartConfig{
			ShippingFee:           decimal.RequireFromString("29.99"),
			FreeShippingThreshold: decimal.NewFromInt(1000),
			TaxRate:               decimal.RequireFromString("0.18"),
		},
		Search: config.SearchConfig{
			SuggestMinLength: 2,
			SuggestLimit:     5,
			FilterCacheTTL:   time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSecretKey:     "test-secret",
			SessionTTL:       time.Hour,
			SessionCacheSize: 16,
		},
		Log: config.LogConfig{Level: "error"},
	}
}
