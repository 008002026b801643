package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/service"
)

// ListOrders handles GET /api/orders requests.
//
// @Summary      Order history
// @Description  The shopper's orders, optionally filtered by status, with a count per status.
// @Tags         Orders
// @Produce      json
// @Param        estado query string false "PENDIENTE, PROCESANDO, ENVIADO, ENTREGADO, CANCELADO or TODOS" default(TODOS)
// @Success      200 {object} dto.SuccessResponse{data=dto.OrdersResponse}
// @Failure      400 {object} dto.ErrorResponse "Unknown status"
// @Failure      401 {object} dto.ErrorResponse "Not logged in"
// @Security     SessionAuth
// @Router       /api/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	builder := NewResponseBuilder(c)

	estado, err := statusFilter(c.Query("estado"))
	if err != nil {
		builder.Fail(err)
		return
	}

	orders, err := h.deps.Orders.List(c.Request.Context(), h.shopper(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(ordersResponse(orders, estado))
}

// OrderStats handles GET /api/orders/stats requests.
//
// @Summary      Order statistics
// @Tags         Orders
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.UserStats}
// @Failure      401 {object} dto.ErrorResponse "Not logged in"
// @Security     SessionAuth
// @Router       /api/orders/stats [get]
func (h *Handler) OrderStats(c *gin.Context) {
	builder := NewResponseBuilder(c)

	stats, err := h.deps.Orders.Stats(c.Request.Context(), h.shopper(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(stats)
}

// GetOrder handles GET /api/orders/:id requests.
//
// @Summary      Order detail
// @Tags         Orders
// @Produce      json
// @Param        id path int true "Order id"
// @Success      200 {object} dto.SuccessResponse{data=model.Order}
// @Failure      404 {object} dto.ErrorResponse "Unknown order"
// @Security     SessionAuth
// @Router       /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := orderID(c)
	if err != nil {
		builder.Fail(err)
		return
	}

	order, err := h.deps.Orders.Get(c.Request.Context(), h.shopper(c), id)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(order)
}

// CancelOrder handles POST /api/orders/:id/cancel requests.
//
// @Summary      Cancel an order
// @Description  Only pending or processing orders can be cancelled.
// @Tags         Orders
// @Produce      json
// @Param        id path int true "Order id"
// @Success      200 {object} dto.SuccessResponse{data=model.Order}
// @Failure      409 {object} dto.ErrorResponse "Order can no longer be cancelled"
// @Security     SessionAuth
// @Router       /api/orders/{id}/cancel [post]
func (h *Handler) CancelOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := orderID(c)
	if err != nil {
		builder.Fail(err)
		return
	}

	order, err := h.deps.Orders.Cancel(c.Request.Context(), h.shopper(c), id)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(order)
}

// ListAllOrders handles GET /api/admin/orders requests.
//
// @Summary      Every order in the shop
// @Tags         Admin
// @Produce      json
// @Param        estado query string false "Status filter" default(TODOS)
// @Success      200 {object} dto.SuccessResponse{data=dto.OrdersResponse}
// @Failure      403 {object} dto.ErrorResponse "Admin role required"
// @Security     SessionAuth
// @Router       /api/admin/orders [get]
func (h *Handler) ListAllOrders(c *gin.Context) {
	builder := NewResponseBuilder(c)

	estado, err := statusFilter(c.Query("estado"))
	if err != nil {
		builder.Fail(err)
		return
	}

	orders, err := h.deps.Orders.ListAll(c.Request.Context(), h.shopper(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(ordersResponse(orders, estado))
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id/status requests.
//
// @Summary      Change an order status
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Order id"
// @Param        request body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.SuccessResponse{data=model.Order}
// @Failure      400 {object} dto.ErrorResponse "Unknown status"
// @Failure      403 {object} dto.ErrorResponse "Admin role required"
// @Security     SessionAuth
// @Router       /api/admin/orders/{id}/status [put]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := orderID(c)
	if err != nil {
		builder.Fail(err)
		return
	}
	req, err := BuildRequestAndValidate[dto.UpdateOrderStatusRequest](c)
	if err != nil {
		builder.Fail(err)
		return
	}
	status, err := req.Status()
	if err != nil {
		builder.Fail(err)
		return
	}

	order, err := h.deps.Orders.UpdateStatus(c.Request.Context(), h.shopper(c), id, status)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(order)
}

func orderID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &dto.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}

// statusFilter accepts an order status or TODOS; empty means TODOS.
func statusFilter(raw string) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" || raw == model.StatusAll {
		return model.StatusAll, nil
	}
	if _, ok := model.ParseOrderStatus(raw); !ok {
		return "", &dto.ValidationError{Field: "estado", Message: "unknown status " + raw}
	}
	return raw, nil
}

func ordersResponse(orders []model.Order, estado string) dto.OrdersResponse {
	filtered := service.FilterOrders(orders, estado)
	if filtered == nil {
		filtered = []model.Order{}
	}
	return dto.OrdersResponse{
		Estado:  estado,
		Pedidos: filtered,
		Conteo:  service.CountByStatus(orders),
	}
}
