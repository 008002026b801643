//go:build !integration

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/mocks"
	"github.com/semanticshop/storefront/internal/repository"
	"github.com/semanticshop/storefront/internal/service"
)

const testSecret = "test-secret-key-with-enough-bytes"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	api      *mocks.MockShopAPI
	store    *repository.MemoryRepository
	registry *service.CartRegistry
	tokens   service.TokenService
}

func newTestEnv(t *testing.T, mutate ...func(*RouterConfig)) *testEnv {
	t.Helper()

	api := &mocks.MockShopAPI{}
	store := repository.NewMemoryRepository()
	tokens, err := service.NewTokenService(service.TokenConfig{SecretKey: testSecret, SessionTTL: time.Hour})
	require.NoError(t, err)

	catalog := service.NewCatalogService(api, time.Minute)
	registry := service.NewCartRegistry(store, cart.DefaultRules(), 100, time.Hour)
	t.Cleanup(func() {
		catalog.Close()
		registry.Close()
	})

	handler := NewHandler(Dependencies{
		Tokens:          tokens,
		Sessions:        service.NewSessionService(api),
		Catalog:         catalog,
		Suggestions:     api,
		Checkout:        service.NewCheckoutService(api),
		Orders:          service.NewOrderService(api),
		Recommendations: service.NewRecommendationService(api),
		Registry:        registry,
	})

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	for _, m := range mutate {
		m(&cfg)
	}

	return &testEnv{
		router:   NewRouter(handler, NewHealthHandler(), cfg),
		api:      api,
		store:    store,
		registry: registry,
		tokens:   tokens,
	}
}

// session issues a guest session and returns its bearer token.
func (e *testEnv) session(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/session", "", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[dto.SessionResponse](t, w).Token
}

// login logs the session into the shop as user.
func (e *testEnv) login(t *testing.T, token string, user model.UserProfile) {
	t.Helper()
	e.api.On("Login", mock.Anything, user.Username, "secret").Return(model.AuthResponse{
		Token:              "upstream-" + user.Username,
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Role:               user.Role,
		ClienteIDOntologia: user.ClienteIDOntologia,
	}, nil).Once()
	e.api.On("Profile", mock.Anything).Return(user, nil).Once()

	w := e.do(t, http.MethodPost, "/api/auth/login", token, `{"username":"`+user.Username+`","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (e *testEnv) do(t *testing.T, method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NotEmpty(t, envelope.RequestID)
	var data T
	require.NoError(t, json.Unmarshal(envelope.Data, &data), string(envelope.Data))
	return data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func testProduct(id, price string, stock int) model.Product {
	return model.Product{
		ID:         id,
		Nombre:     "Product " + id,
		Marca:      "Acme",
		Categoria:  "Laptops",
		Precio:     decimal.RequireFromString(price),
		Stock:      model.IntPtr(stock),
		Disponible: true,
	}
}

func testUser(role string) model.UserProfile {
	return model.UserProfile{
		ID:                 7,
		Username:           "ana",
		Email:              "ana@example.com",
		Role:               role,
		ClienteIDOntologia: "Cliente_Ana",
		Activo:             true,
	}
}
