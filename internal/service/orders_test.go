//go:build !integration

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/mocks"
	"github.com/semanticshop/storefront/internal/service"
)

func TestOrderService_ReadsWithSessionToken(t *testing.T) {
	ctx := context.Background()
	sh, store := newTestShopper(t)
	seedSession(t, store, model.UserProfile{Username: "ana"})

	api := new(mocks.MockShopAPI)
	api.On("MyOrders", withToken(testToken)).Return([]model.Order{{ID: 1}, {ID: 2}}, nil)
	api.On("GetOrder", withToken(testToken), int64(2)).Return(model.Order{ID: 2, Estado: model.StatusShipped}, nil)
	api.On("MyStats", withToken(testToken)).Return(model.UserStats{TotalPedidos: 2}, nil)

	svc := service.NewOrderService(api)

	orders, err := svc.List(ctx, sh)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	order, err := svc.Get(ctx, sh, 2)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, order.Estado)

	stats, err := svc.Stats(ctx, sh)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPedidos)
	api.AssertExpectations(t)
}

func TestOrderService_RequiresLogin(t *testing.T) {
	ctx := context.Background()
	sh, _ := newTestShopper(t)
	api := new(mocks.MockShopAPI)
	svc := service.NewOrderService(api)

	_, err := svc.List(ctx, sh)
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
	_, err = svc.Cancel(ctx, sh, 1)
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
	assert.Empty(t, api.Calls)
}

func TestOrderService_Cancel(t *testing.T) {
	tests := []struct {
		name          string
		status        model.OrderStatus
		expectedError error
	}{
		{name: "pending", status: model.StatusPending},
		{name: "processing", status: model.StatusProcessing},
		{name: "shipped", status: model.StatusShipped, expectedError: service.ErrNotCancellable},
		{name: "delivered", status: model.StatusDelivered, expectedError: service.ErrNotCancellable},
		{name: "already cancelled", status: model.StatusCancelled, expectedError: service.ErrNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sh, store := newTestShopper(t)
			seedSession(t, store, model.UserProfile{Username: "ana"})

			api := new(mocks.MockShopAPI)
			api.On("GetOrder", mock.Anything, int64(5)).Return(model.Order{ID: 5, Estado: tt.status}, nil)
			api.On("CancelOrder", withToken(testToken), int64(5)).Return(model.Order{ID: 5, Estado: model.StatusCancelled}, nil).Maybe()

			order, err := service.NewOrderService(api).Cancel(ctx, sh, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				api.AssertNotCalled(t, "CancelOrder", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.StatusCancelled, order.Estado)
		})
	}
}

func TestOrderService_AdminOperations(t *testing.T) {
	tests := []struct {
		name          string
		role          string
		expectedError error
	}{
		{name: "customer is forbidden", role: "CLIENTE", expectedError: service.ErrForbidden},
		{name: "admin is allowed", role: model.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sh, store := newTestShopper(t)
			seedSession(t, store, model.UserProfile{Username: "root", Role: tt.role})

			api := new(mocks.MockShopAPI)
			api.On("AllOrders", withToken(testToken)).Return([]model.Order{{ID: 1}}, nil).Maybe()
			api.On("UpdateOrderStatus", withToken(testToken), int64(1), model.StatusShipped).
				Return(model.Order{ID: 1, Estado: model.StatusShipped}, nil).Maybe()

			svc := service.NewOrderService(api)
			orders, listErr := svc.ListAll(ctx, sh)
			order, updateErr := svc.UpdateStatus(ctx, sh, 1, model.StatusShipped)

			if tt.expectedError != nil {
				assert.ErrorIs(t, listErr, tt.expectedError)
				assert.ErrorIs(t, updateErr, tt.expectedError)
				assert.Empty(t, api.Calls)
				return
			}
			require.NoError(t, listErr)
			require.NoError(t, updateErr)
			assert.Len(t, orders, 1)
			assert.Equal(t, model.StatusShipped, order.Estado)
		})
	}
}

func TestOrderService_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	sh, store := newTestShopper(t)
	seedSession(t, store, model.UserProfile{Role: model.RoleAdmin})
	api := new(mocks.MockShopAPI)

	_, err := service.NewOrderService(api).UpdateStatus(context.Background(), sh, 1, model.OrderStatus("PERDIDO"))

	assert.Error(t, err)
	assert.Empty(t, api.Calls)
}

func TestFilterOrdersAndCount(t *testing.T) {
	orders := []model.Order{
		{ID: 1, Estado: model.StatusPending},
		{ID: 2, Estado: model.StatusDelivered},
		{ID: 3, Estado: model.StatusPending},
	}

	assert.Len(t, service.FilterOrders(orders, model.StatusAll), 3)
	assert.Len(t, service.FilterOrders(orders, ""), 3)
	assert.Len(t, service.FilterOrders(orders, "PENDIENTE"), 2)

	counts := service.CountByStatus(orders)
	assert.Equal(t, 3, counts[model.StatusAll])
	assert.Equal(t, 1, counts[string(model.StatusDelivered)])
}
