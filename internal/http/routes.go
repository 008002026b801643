package http

import (
	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/middleware"
)

// PublicRouteGroup defines routes that don't require a session.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// ProtectedRouteGroup defines routes that require a session token.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// SessionRoutes issues guest sessions.
type SessionRoutes struct{ h *Handler }

// NewSessionRoutes creates the session route group.
func NewSessionRoutes(h *Handler) *SessionRoutes { return &SessionRoutes{h: h} }

// RegisterPublicRoutes registers POST /session, throttled per client IP.
func (r *SessionRoutes) RegisterPublicRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Limiter != nil {
		rg.POST("/session", cfg.Limiter.RateLimit(), r.h.IssueSession)
		return
	}
	rg.POST("/session", r.h.IssueSession)
}

// CartRoutes serves the session cart.
type CartRoutes struct{ h *Handler }

// NewCartRoutes creates the cart route group.
func NewCartRoutes(h *Handler) *CartRoutes { return &CartRoutes{h: h} }

// RegisterProtectedRoutes registers the cart routes.
func (r *CartRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	g := rg.Group("/cart")
	g.GET("", r.h.GetCart)
	g.DELETE("", r.h.ClearCart)
	g.POST("/items", r.h.AddCartItem)
	g.PUT("/items/:id", r.h.SetCartItemQuantity)
	g.DELETE("/items/:id", r.h.RemoveCartItem)
	g.POST("/items/:id/increment", r.h.IncrementCartItem)
	g.POST("/items/:id/decrement", r.h.DecrementCartItem)
}

// CatalogRoutes serves products, search and autocomplete.
type CatalogRoutes struct{ h *Handler }

// NewCatalogRoutes creates the catalog route group.
func NewCatalogRoutes(h *Handler) *CatalogRoutes { return &CatalogRoutes{h: h} }

// RegisterProtectedRoutes registers the catalog routes. The fixed paths
// are registered before :id.
func (r *CatalogRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	g := rg.Group("/products")
	g.GET("", r.h.SearchProducts)
	g.GET("/filters", r.h.FilterOptions)
	g.GET("/suggestions", r.h.Suggestions)
	g.GET("/category/:categoria", r.h.ProductsByCategory)
	g.GET("/:id", r.h.GetProduct)
}

// AuthRoutes proxies shop login for the session.
type AuthRoutes struct{ h *Handler }

// NewAuthRoutes creates the auth route group.
func NewAuthRoutes(h *Handler) *AuthRoutes { return &AuthRoutes{h: h} }

// RegisterProtectedRoutes registers the auth routes.
func (r *AuthRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	g := rg.Group("/auth")
	g.POST("/login", r.h.Login)
	g.POST("/register", r.h.Register)
	g.POST("/logout", r.h.Logout)
	g.GET("/profile", r.h.Profile)
	g.PUT("/profile", r.h.UpdateProfile)
}

// CheckoutRoutes places orders.
type CheckoutRoutes struct{ h *Handler }

// NewCheckoutRoutes creates the checkout route group.
func NewCheckoutRoutes(h *Handler) *CheckoutRoutes { return &CheckoutRoutes{h: h} }

// RegisterProtectedRoutes registers POST /checkout behind the idempotency
// middleware.
func (r *CheckoutRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.POST("/checkout", middleware.Idempotency(cfg.Idempotency), r.h.Checkout)
}

// OrderRoutes serves order history and administration.
type OrderRoutes struct{ h *Handler }

// NewOrderRoutes creates the order route group.
func NewOrderRoutes(h *Handler) *OrderRoutes { return &OrderRoutes{h: h} }

// RegisterProtectedRoutes registers the order and admin routes. The admin
// role is checked by the order service against the shop session.
func (r *OrderRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	g := rg.Group("/orders")
	g.GET("", r.h.ListOrders)
	g.GET("/stats", r.h.OrderStats)
	g.GET("/:id", r.h.GetOrder)
	g.POST("/:id/cancel", r.h.CancelOrder)

	admin := rg.Group("/admin")
	admin.GET("/orders", r.h.ListAllOrders)
	admin.PUT("/orders/:id/status", r.h.UpdateOrderStatus)
}

// RecommendationRoutes serves personal recommendations.
type RecommendationRoutes struct{ h *Handler }

// NewRecommendationRoutes creates the recommendation route group.
func NewRecommendationRoutes(h *Handler) *RecommendationRoutes {
	return &RecommendationRoutes{h: h}
}

// RegisterProtectedRoutes registers GET /recommendations.
func (r *RecommendationRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.GET("/recommendations", r.h.Recommendations)
}
