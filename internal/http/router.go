package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/semanticshop/storefront/internal/metrics"
	"github.com/semanticshop/storefront/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	// Limiter throttles /api per session. When nil and RateLimit is
	// positive, NewRouter creates one; the caller owns a passed-in
	// limiter and stops it on shutdown.
	Limiter        *middleware.ShardedRateLimiter
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	Idempotency    middleware.IdempotencyConfig
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
	}
}

// NewRouter creates and configures the Gin router of the storefront BFF.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.Limiter == nil && cfg.RateLimit > 0 {
		cfg.Limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	sessionRoutes := NewSessionRoutes(handler)
	sessionRoutes.RegisterPublicRoutes(api, &cfg)

	protected := api.Group("")
	protected.Use(middleware.SessionAuth(handler.deps.Tokens))
	if cfg.Limiter != nil {
		protected.Use(cfg.Limiter.SessionRateLimit())
	}

	for _, routes := range []ProtectedRouteGroup{
		NewCartRoutes(handler),
		NewCatalogRoutes(handler),
		NewAuthRoutes(handler),
		NewCheckoutRoutes(handler),
		NewOrderRoutes(handler),
		NewRecommendationRoutes(handler),
	} {
		routes.RegisterProtectedRoutes(protected, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
