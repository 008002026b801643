package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/logger"
)

// OrderService reads and manages a shopper's orders.
type OrderService interface {
	List(ctx context.Context, sh *Shopper) ([]model.Order, error)
	Get(ctx context.Context, sh *Shopper, id int64) (model.Order, error)
	Stats(ctx context.Context, sh *Shopper) (model.UserStats, error)
	Cancel(ctx context.Context, sh *Shopper, id int64) (model.Order, error)
	ListAll(ctx context.Context, sh *Shopper) ([]model.Order, error)
	UpdateStatus(ctx context.Context, sh *Shopper, id int64, status model.OrderStatus) (model.Order, error)
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	api OrdersAPI
	log zerolog.Logger
}

// NewOrderService creates an order service backed by api.
func NewOrderService(api OrdersAPI) OrderService {
	return &OrderServiceImpl{
		api: api,
		log: logger.Component("orders"),
	}
}

// List returns the shopper's orders.
func (s *OrderServiceImpl) List(ctx context.Context, sh *Shopper) ([]model.Order, error) {
	authCtx, _, err := sh.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.api.MyOrders(authCtx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns one of the shopper's orders.
func (s *OrderServiceImpl) Get(ctx context.Context, sh *Shopper, id int64) (model.Order, error) {
	authCtx, _, err := sh.Authorize(ctx)
	if err != nil {
		return model.Order{}, err
	}
	order, err := s.api.GetOrder(authCtx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

// Stats returns the shopper's order statistics.
func (s *OrderServiceImpl) Stats(ctx context.Context, sh *Shopper) (model.UserStats, error) {
	authCtx, _, err := sh.Authorize(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	stats, err := s.api.MyStats(authCtx)
	if err != nil {
		return model.UserStats{}, fmt.Errorf("order stats: %w", err)
	}
	return stats, nil
}

// Cancel cancels an order that is still pending or processing.
func (s *OrderServiceImpl) Cancel(ctx context.Context, sh *Shopper, id int64) (model.Order, error) {
	authCtx, _, err := sh.Authorize(ctx)
	if err != nil {
		return model.Order{}, err
	}

	current, err := s.api.GetOrder(authCtx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	if !current.Estado.Cancellable() {
		return model.Order{}, fmt.Errorf("order %d is %s: %w", id, current.StatusLabel(), ErrNotCancellable)
	}

	order, err := s.api.CancelOrder(authCtx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("cancel order %d: %w", id, err)
	}
	s.log.Info().Str("shopper_id", sh.ID).Int64("order_id", id).Msg("Order cancelled")
	return order, nil
}

// ListAll returns every order in the shop. Admins only.
func (s *OrderServiceImpl) ListAll(ctx context.Context, sh *Shopper) ([]model.Order, error) {
	authCtx, err := authorizeAdmin(ctx, sh)
	if err != nil {
		return nil, err
	}
	orders, err := s.api.AllOrders(authCtx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to status. Admins only.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, sh *Shopper, id int64, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, fmt.Errorf("unknown order status %q", status)
	}
	authCtx, err := authorizeAdmin(ctx, sh)
	if err != nil {
		return model.Order{}, err
	}
	order, err := s.api.UpdateOrderStatus(authCtx, id, status)
	if err != nil {
		return model.Order{}, fmt.Errorf("update order %d: %w", id, err)
	}
	s.log.Info().Int64("order_id", id).Str("status", string(status)).Msg("Order status updated")
	return order, nil
}

func authorizeAdmin(ctx context.Context, sh *Shopper) (context.Context, error) {
	authCtx, sess, err := sh.Authorize(ctx)
	if err != nil {
		return ctx, err
	}
	if !sess.IsAdmin() {
		return ctx, ErrForbidden
	}
	return authCtx, nil
}

// FilterOrders keeps the orders in status; TODOS or "" keeps all.
func FilterOrders(orders []model.Order, status string) []model.Order {
	return model.FilterOrdersByStatus(orders, status)
}

// CountByStatus counts orders per status, with TODOS holding the total.
func CountByStatus(orders []model.Order) map[string]int {
	return model.CountOrdersByStatus(orders)
}
