// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/domain/model"
)

type MockShopAPI struct {
	mock.Mock
}

func (m *MockShopAPI) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(model.AuthResponse), args.Error(1)
}

func (m *MockShopAPI) Login(ctx context.Context, username, password string) (model.AuthResponse, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.AuthResponse), args.Error(1)
}

func (m *MockShopAPI) Profile(ctx context.Context) (model.UserProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.UserProfile), args.Error(1)
}

func (m *MockShopAPI) UpdateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(model.UserProfile), args.Error(1)
}

func (m *MockShopAPI) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockShopAPI) GetProduct(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockShopAPI) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockShopAPI) Search(ctx context.Context, params model.SearchParams) (model.SearchPage, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.SearchPage), args.Error(1)
}

func (m *MockShopAPI) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockShopAPI) Brands(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockShopAPI) PriceRange(ctx context.Context) (model.PriceRange, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.PriceRange), args.Error(1)
}

func (m *MockShopAPI) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockShopAPI) ClearRemoteCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShopAPI) AddToRemoteCart(ctx context.Context, productID string, qty int) (client.RemoteCartItem, error) {
	args := m.Called(ctx, productID, qty)
	return args.Get(0).(client.RemoteCartItem), args.Error(1)
}

func (m *MockShopAPI) CreateOrder(ctx context.Context, address, notes string) (model.Order, error) {
	args := m.Called(ctx, address, notes)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockShopAPI) MyOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockShopAPI) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockShopAPI) CancelOrder(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockShopAPI) MyStats(ctx context.Context) (model.UserStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.UserStats), args.Error(1)
}

func (m *MockShopAPI) AllOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockShopAPI) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockShopAPI) Recommendations(ctx context.Context, clientID string) (model.Recommendation, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(model.Recommendation), args.Error(1)
}
