package client

import (
	"context"
	"strconv"

	"github.com/semanticshop/storefront/internal/domain/model"
)

type createOrderRequest struct {
	DireccionEnvio string `json:"direccionEnvio"`
	Notas          string `json:"notas,omitempty"`
}

type updateStatusRequest struct {
	NuevoEstado model.OrderStatus `json:"nuevoEstado"`
}

type orderEnvelope struct {
	Pedido model.Order `json:"pedido"`
}

type ordersEnvelope struct {
	Pedidos []model.Order `json:"pedidos"`
}

func orderPath(id int64) string {
	return "/pedidos/" + strconv.FormatInt(id, 10)
}

// CreateOrder turns the server-side cart into an order.
func (c *Client) CreateOrder(ctx context.Context, address, notes string) (model.Order, error) {
	var out orderEnvelope
	err := c.post(ctx, "/pedidos/crear", "/pedidos/crear", createOrderRequest{DireccionEnvio: address, Notas: notes}, &out)
	return out.Pedido, err
}

// MyOrders lists the signed-in user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var out ordersEnvelope
	if err := c.get(ctx, "/pedidos/mis-pedidos", "/pedidos/mis-pedidos", nil, &out); err != nil {
		return nil, err
	}
	return nonNilOrders(out.Pedidos), nil
}

// GetOrder returns one order.
func (c *Client) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	var out orderEnvelope
	err := c.get(ctx, "/pedidos/{id}", orderPath(id), nil, &out)
	return out.Pedido, err
}

// CancelOrder cancels an order and returns its new state.
func (c *Client) CancelOrder(ctx context.Context, id int64) (model.Order, error) {
	var out orderEnvelope
	err := c.put(ctx, "/pedidos/{id}/cancelar", orderPath(id)+"/cancelar", nil, &out)
	return out.Pedido, err
}

// MyStats summarises the signed-in user's orders.
func (c *Client) MyStats(ctx context.Context) (model.UserStats, error) {
	var out struct {
		Estadisticas model.UserStats `json:"estadisticas"`
	}
	err := c.get(ctx, "/pedidos/mis-estadisticas", "/pedidos/mis-estadisticas", nil, &out)
	return out.Estadisticas, err
}

// AllOrders lists every order. Admin only.
func (c *Client) AllOrders(ctx context.Context) ([]model.Order, error) {
	var out ordersEnvelope
	if err := c.get(ctx, "/pedidos", "/pedidos", nil, &out); err != nil {
		return nil, err
	}
	return nonNilOrders(out.Pedidos), nil
}

// UpdateOrderStatus moves an order to a new status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	var out orderEnvelope
	err := c.put(ctx, "/pedidos/{id}/estado", orderPath(id)+"/estado", updateStatusRequest{NuevoEstado: status}, &out)
	return out.Pedido, err
}

func nonNilOrders(o []model.Order) []model.Order {
	if o == nil {
		return []model.Order{}
	}
	return o
}
