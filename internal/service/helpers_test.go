//go:build !integration

package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/repository"
	"github.com/semanticshop/storefront/internal/service"
)

const testToken = "upstream-token"

func newTestShopper(t *testing.T) (*service.Shopper, *repository.MemoryRepository) {
	t.Helper()
	store := repository.NewMemoryRepository()
	return service.NewShopper(context.Background(), "test", store, cart.DefaultRules()), store
}

func seedSession(t *testing.T, store repository.KVRepositoryInterface, user model.UserProfile) {
	t.Helper()
	ctx := context.Background()
	token, err := json.Marshal(testToken)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, service.TokenKey, token))
	data, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, service.UserKey, data))
}

func storedUser(t *testing.T, store repository.KVRepositoryInterface) model.UserProfile {
	t.Helper()
	data, err := store.Get(context.Background(), service.UserKey)
	require.NoError(t, err)
	var user model.UserProfile
	require.NoError(t, json.Unmarshal(data, &user))
	return user
}

// withToken matches contexts carrying the given upstream token.
func withToken(token string) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		got, ok := client.TokenFromContext(ctx)
		return ok && got == token
	})
}

func product(id string, price string, stock int) model.Product {
	return model.Product{
		ID:         id,
		Nombre:     "Product " + id,
		Marca:      "Acme",
		Precio:     decimal.RequireFromString(price),
		Stock:      model.IntPtr(stock),
		Disponible: true,
	}
}
