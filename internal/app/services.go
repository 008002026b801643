package app

import (
	"fmt"

	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/repository"
	"github.com/semanticshop/storefront/internal/service"
)

// ServiceComponents holds the shop API client and the services over it.
type ServiceComponents struct {
	API             *client.Client
	APIBreaker      *circuitbreaker.CircuitBreaker
	Rules           cart.Rules
	Tokens          service.TokenService
	Sessions        service.SessionService
	Catalog         *service.CatalogServiceImpl
	Checkout        service.CheckoutService
	Orders          service.OrderService
	Recommendations service.RecommendationService
	Registry        *service.CartRegistry
}

// Close stops the background work of the caches.
func (s *ServiceComponents) Close() {
	if s == nil {
		return
	}
	s.Catalog.Close()
	s.Registry.Close()
}

// NewShopAPIClient builds the shop API client guarded by its own breaker.
// Only transport errors and 5xx answers trip the breaker. opts are applied
// after the configured ones.
func NewShopAPIClient(cfg config.APIConfig, opts ...client.Option) (*client.Client, *circuitbreaker.CircuitBreaker) {
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "shop-api",
		IsFailure:        client.IsUpstreamFailure,
		OnStateChange:    logBreakerChange,
	})
	base := []client.Option{
		client.WithTimeout(cfg.Timeout),
		client.WithUserAgent(cfg.UserAgent),
		client.WithCircuitBreaker(cb),
	}
	api := client.New(cfg.BaseURL, append(base, opts...)...)
	return api, cb
}

// CartRules converts the configured pricing into cart rules.
func CartRules(cfg config.CartConfig) cart.Rules {
	return cart.Rules{
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		TaxRate:               cfg.TaxRate,
	}
}

// InitializeServices builds every service over one shop API client. The
// cart registry keeps its shoppers in store.
func InitializeServices(cfg config.Config, store repository.KVRepositoryInterface) (*ServiceComponents, error) {
	tokens, err := service.NewTokenService(service.NewTokenConfigFromAuthConfig(cfg.Auth))
	if err != nil {
		return nil, fmt.Errorf("session tokens: %w", err)
	}

	api, cb := NewShopAPIClient(cfg.API)
	rules := CartRules(cfg.Cart)

	return &ServiceComponents{
		API:             api,
		APIBreaker:      cb,
		Rules:           rules,
		Tokens:          tokens,
		Sessions:        service.NewSessionService(api),
		Catalog:         service.NewCatalogService(api, cfg.Search.FilterCacheTTL),
		Checkout:        service.NewCheckoutService(api),
		Orders:          service.NewOrderService(api),
		Recommendations: service.NewRecommendationService(api),
		Registry:        service.NewCartRegistry(store, rules, cfg.Auth.SessionCacheSize, 0),
	}, nil
}
