package app

import (
	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/http"
	"github.com/semanticshop/storefront/internal/middleware"
	"github.com/semanticshop/storefront/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// Stop ends the limiter and idempotency cache goroutines.
func (r *RouterComponents) Stop() {
	if r.Config.Limiter != nil {
		r.Config.Limiter.Stop()
	}
	if r.Config.Idempotency.Cache != nil {
		r.Config.Idempotency.Cache.Stop()
	}
}

// InitializeRouter builds the handlers, the health checks and the router
// configuration.
func InitializeRouter(services *ServiceComponents, storage *StorageComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(http.Dependencies{
		Tokens:          services.Tokens,
		Sessions:        services.Sessions,
		Catalog:         services.Catalog,
		Suggestions:     services.API,
		Checkout:        services.Checkout,
		Orders:          services.Orders,
		Recommendations: services.Recommendations,
		Registry:        services.Registry,
	}, http.WithSuggestConfig(service.SuggesterConfig{
		MinLength: cfg.Search.SuggestMinLength,
		Limit:     cfg.Search.SuggestLimit,
	}))

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker(services.APIBreaker)
	healthHandler.ReportSessions(services.Registry.Len)
	if storage != nil {
		healthHandler.RegisterCircuitBreaker(storage.Breaker)
		healthHandler.RegisterChecker("storage", http.PingChecker(storage.Store))
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		Idempotency:    middleware.DefaultIdempotencyConfig(),
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.Limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
