// Package http is the storefront's backend-for-frontend: gin handlers
// that serve one cart and shop login per browser session.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/middleware"
	"github.com/semanticshop/storefront/internal/service"
)

// Dependencies are the services the handlers call.
type Dependencies struct {
	Tokens          service.TokenService
	Sessions        service.SessionService
	Catalog         service.CatalogService
	Suggestions     service.SuggestionsAPI
	Checkout        service.CheckoutService
	Orders          service.OrderService
	Recommendations service.RecommendationService
	Registry        *service.CartRegistry
}

// Handler provides the HTTP handlers of the API.
type Handler struct {
	deps    Dependencies
	suggest service.SuggesterConfig
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSuggestConfig sets the minimum query length and the result limit of
// the suggestions endpoint. The debounce is left to the client.
func WithSuggestConfig(cfg service.SuggesterConfig) HandlerOption {
	return func(h *Handler) {
		h.suggest = cfg
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(deps Dependencies, opts ...HandlerOption) *Handler {
	h := &Handler{
		deps: deps,
		suggest: service.SuggesterConfig{
			MinLength: service.DefaultSuggestMinLength,
			Limit:     service.DefaultSuggestLimit,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// shopper returns the cart and login state of the calling session.
func (h *Handler) shopper(c *gin.Context) *service.Shopper {
	return h.deps.Registry.Shopper(c.Request.Context(), middleware.GetSessionID(c))
}
