//go:build !integration

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/domain/model"
)

func sampleOrders() []model.Order {
	return []model.Order{
		{ID: 1, Estado: model.StatusPending},
		{ID: 2, Estado: model.StatusShipped},
		{ID: 3, Estado: model.StatusPending},
		{ID: 4, Estado: model.StatusCancelled},
	}
}

func TestListOrders(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedCode  int
		expectedState string
		expectedIDs   []int64
	}{
		{name: "all by default", expectedCode: http.StatusOK, expectedState: "TODOS", expectedIDs: []int64{1, 2, 3, 4}},
		{name: "pending", query: "?estado=pendiente", expectedCode: http.StatusOK, expectedState: "PENDIENTE", expectedIDs: []int64{1, 3}},
		{name: "no delivered orders", query: "?estado=ENTREGADO", expectedCode: http.StatusOK, expectedState: "ENTREGADO", expectedIDs: []int64{}},
		{name: "unknown status", query: "?estado=PERDIDO", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			token := env.session(t)
			env.login(t, token, testUser("CLIENTE"))
			env.api.On("MyOrders", mock.Anything).Return(sampleOrders(), nil).Maybe()

			w := env.do(t, http.MethodGet, "/api/orders"+tt.query, token, "")
			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode != http.StatusOK {
				return
			}

			got := decodeData[dto.OrdersResponse](t, w)
			assert.Equal(t, tt.expectedState, got.Estado)
			ids := make([]int64, 0, len(got.Pedidos))
			for _, o := range got.Pedidos {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
			assert.Equal(t, 4, got.Conteo[model.StatusAll])
			assert.Equal(t, 2, got.Conteo[string(model.StatusPending)])
		})
	}
}

func TestGetAndCancelOrder(t *testing.T) {
	env := newTestEnv(t)
	token := env.session(t)
	env.login(t, token, testUser("CLIENTE"))

	env.api.On("GetOrder", mock.Anything, int64(1)).Return(model.Order{ID: 1, Estado: model.StatusPending}, nil)
	env.api.On("GetOrder", mock.Anything, int64(2)).Return(model.Order{ID: 2, Estado: model.StatusShipped}, nil)
	env.api.On("CancelOrder", mock.Anything, int64(1)).Return(model.Order{ID: 1, Estado: model.StatusCancelled}, nil).Once()

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{name: "get", method: http.MethodGet, path: "/api/orders/1", expectedCode: http.StatusOK},
		{name: "bad id", method: http.MethodGet, path: "/api/orders/abc", expectedCode: http.StatusBadRequest},
		{name: "zero id", method: http.MethodPost, path: "/api/orders/0/cancel", expectedCode: http.StatusBadRequest},
		{name: "cancel pending", method: http.MethodPost, path: "/api/orders/1/cancel", expectedCode: http.StatusOK},
		{name: "cancel shipped", method: http.MethodPost, path: "/api/orders/2/cancel", expectedCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, token, "")
			assert.Equal(t, tt.expectedCode, w.Code, w.Body.String())
		})
	}
	env.api.AssertNumberOfCalls(t, "CancelOrder", 1)
}

func TestOrderStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.session(t)
	env.login(t, token, testUser("CLIENTE"))

	env.api.On("MyStats", mock.Anything).Return(model.UserStats{TotalPedidos: 3}, nil).Once()

	w := env.do(t, http.MethodGet, "/api/orders/stats", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 3, decodeData[model.UserStats](t, w).TotalPedidos)
}

func TestAdminOrders(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		expectedCode int
	}{
		{name: "admin", role: model.RoleAdmin, expectedCode: http.StatusOK},
		{name: "customer", role: "CLIENTE", expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			token := env.session(t)
			env.login(t, token, testUser(tt.role))

			env.api.On("AllOrders", mock.Anything).Return(sampleOrders(), nil).Maybe()
			env.api.On("UpdateOrderStatus", mock.Anything, int64(1), model.StatusShipped).
				Return(model.Order{ID: 1, Estado: model.StatusShipped}, nil).Maybe()

			w := env.do(t, http.MethodGet, "/api/admin/orders?estado=PENDIENTE", token, "")
			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())

			w = env.do(t, http.MethodPut, "/api/admin/orders/1/status", token, `{"nuevoEstado":"enviado"}`)
			require.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, model.StatusShipped, decodeData[model.Order](t, w).Estado)
			}
		})
	}
}

func TestAdminOrders_UnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.session(t)
	env.login(t, token, testUser(model.RoleAdmin))

	w := env.do(t, http.MethodPut, "/api/admin/orders/1/status", token, `{"nuevoEstado":"PERDIDO"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "nuevoEstado")
	env.api.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}
