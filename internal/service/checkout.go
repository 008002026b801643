package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/logger"
	"github.com/semanticshop/storefront/internal/metrics"
)

const syncConcurrency = 4

// CheckoutRequest is what the shopper fills in at checkout.
type CheckoutRequest struct {
	DireccionEnvio string `json:"direccionEnvio"`
	Notas          string `json:"notas,omitempty"`
}

// CheckoutService turns the local cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, sh *Shopper, req CheckoutRequest) (model.Order, error)
}

// CheckoutServiceImpl implements CheckoutService.
type CheckoutServiceImpl struct {
	api CheckoutAPI
	log zerolog.Logger
}

// NewCheckoutService creates a checkout service backed by api.
func NewCheckoutService(api CheckoutAPI) CheckoutService {
	return &CheckoutServiceImpl{
		api: api,
		log: logger.Component("checkout"),
	}
}

// Checkout replaces the shopper's remote cart with the local one, places
// the order and empties the local cart. A sync failure leaves the remote
// cart as far as it got.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, sh *Shopper, req CheckoutRequest) (model.Order, error) {
	address := strings.TrimSpace(req.DireccionEnvio)
	if address == "" {
		metrics.RecordCheckout("invalid")
		return model.Order{}, ErrAddressRequired
	}
	if sh.Cart.IsEmpty() {
		metrics.RecordCheckout("invalid")
		return model.Order{}, ErrEmptyCart
	}

	authCtx, sess, err := sh.Authorize(ctx)
	if err != nil {
		metrics.RecordCheckout("unauthenticated")
		return model.Order{}, err
	}

	log := s.log.With().Str("shopper_id", sh.ID).Str("username", sess.User.Username).Logger()

	if err := s.sync(authCtx, sh); err != nil {
		metrics.RecordCheckout("sync_failed")
		log.Error().Err(err).Msg("Cart sync failed")
		return model.Order{}, err
	}

	order, err := s.api.CreateOrder(authCtx, address, strings.TrimSpace(req.Notas))
	if err != nil {
		metrics.RecordCheckout("order_failed")
		log.Error().Err(err).Msg("Order creation failed")
		return model.Order{}, err
	}

	sh.Cart.Clear(ctx)
	metrics.RecordCheckout("success")
	log.Info().Int64("order_id", order.ID).Str("total", order.Total.String()).Msg("Order placed")
	return order, nil
}

func (s *CheckoutServiceImpl) sync(ctx context.Context, sh *Shopper) error {
	if err := s.api.ClearRemoteCart(ctx); err != nil {
		return &SyncError{Step: SyncStepClear, Err: err}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for _, item := range sh.Cart.Items() {
		g.Go(func() error {
			if _, err := s.api.AddToRemoteCart(gctx, item.ID, item.Cantidad); err != nil {
				return &SyncError{Step: SyncStepAdd, ProductID: item.ID, Err: err}
			}
			return nil
		})
	}

	err := g.Wait()
	var syncErr *SyncError
	if err != nil && !errors.As(err, &syncErr) {
		return &SyncError{Step: SyncStepAdd, Err: err}
	}
	return err
}
