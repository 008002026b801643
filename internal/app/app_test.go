//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/config"
)

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name: "memory backend",
		},
		{
			name: "file backend",
			mutate: func(cfg *config.Config) {
				cfg.Storage.Backend = config.BackendFile
				cfg.Storage.Dir = t.TempDir()
			},
		},
		{
			name: "rate limiting disabled",
			mutate: func(cfg *config.Config) {
				cfg.Server.RateLimit = 0
			},
		},
		{
			name: "invalid api url",
			mutate: func(cfg *config.Config) {
				cfg.API.BaseURL = "not a url"
			},
			wantErr: "STOREFRONT_API_URL",
		},
		{
			name: "unknown backend",
			mutate: func(cfg *config.Config) {
				cfg.Storage.Backend = "etcd"
			},
			wantErr: "unknown storage backend",
		},
		{
			name: "missing token secret",
			mutate: func(cfg *config.Config) {
				cfg.Auth.JWTSecretKey = ""
			},
			wantErr: "session tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			application, err := InitializeApp(context.Background(), cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, application.Close(context.Background())) }()

			assert.NotNil(t, application.Engine)
			assert.Equal(t, cfg.Storage.Backend, application.Storage.Backend)
		})
	}
}

func TestApp_ServesProbes(t *testing.T) {
	application, err := InitializeApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer func() { _ = application.Close(context.Background()) }()

	for _, path := range []string{"/healthz", "/readyz", "/health"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			application.Engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestApp_ProtectedRoutesRequireSession(t *testing.T) {
	application, err := InitializeApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer func() { _ = application.Close(context.Background()) }()

	w := httptest.NewRecorder()
	application.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	application.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
