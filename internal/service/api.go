package service

import (
	"context"

	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/domain/model"
)

// AuthAPI is the part of the shop API the session flow uses.
type AuthAPI interface {
	Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error)
	Login(ctx context.Context, username, password string) (model.AuthResponse, error)
	Profile(ctx context.Context) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error)
}

// CatalogAPI is the read-only product side of the shop API.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	Search(ctx context.Context, params model.SearchParams) (model.SearchPage, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
	PriceRange(ctx context.Context) (model.PriceRange, error)
}

// SuggestionsAPI serves autocomplete.
type SuggestionsAPI interface {
	Suggestions(ctx context.Context, query string, limit int) ([]string, error)
}

// CheckoutAPI mirrors the local cart upstream and places the order.
type CheckoutAPI interface {
	ClearRemoteCart(ctx context.Context) error
	AddToRemoteCart(ctx context.Context, productID string, qty int) (client.RemoteCartItem, error)
	CreateOrder(ctx context.Context, address, notes string) (model.Order, error)
}

// OrdersAPI covers order history and administration.
type OrdersAPI interface {
	MyOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	CancelOrder(ctx context.Context, id int64) (model.Order, error)
	MyStats(ctx context.Context) (model.UserStats, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
}

// RecommendationsAPI serves personalised product selections.
type RecommendationsAPI interface {
	Recommendations(ctx context.Context, clientID string) (model.Recommendation, error)
}

// ShopAPI is everything the services need from the shop API.
type ShopAPI interface {
	AuthAPI
	CatalogAPI
	SuggestionsAPI
	CheckoutAPI
	OrdersAPI
	RecommendationsAPI
}

var _ ShopAPI = (*client.Client)(nil)
