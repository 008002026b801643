// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidQuantity is returned when cantidad is not a positive integer.
	ErrInvalidQuantity = &ValidationError{Field: "cantidad", Message: "must be a positive integer"}
	// ErrMissingProduct is returned when an add-to-cart names no product.
	ErrMissingProduct = &ValidationError{Field: "product", Message: "product or productoId is required"}
	// ErrNegativePrice is returned when a submitted product has precio below zero.
	ErrNegativePrice = &ValidationError{Field: "product.precio", Message: "must not be negative"}
	// ErrNegativeStock is returned when a submitted product has stock below zero.
	ErrNegativeStock = &ValidationError{Field: "product.stock", Message: "must not be negative"}
	// ErrMissingAddress is returned when checkout has no shipping address.
	ErrMissingAddress = &ValidationError{Field: "direccionEnvio", Message: "is required"}
)

// AddCartItemRequest adds a product to the cart. Either the full product,
// as shown in the catalog, or just its id may be sent; an id alone is
// looked up in the shop API.
//
// @Description Request to add a product to the cart
type AddCartItemRequest struct {
	Product    *model.Product `json:"product,omitempty"`
	ProductoID string         `json:"productoId,omitempty" example:"Laptop_Dell_XPS13"`
	// Cantidad defaults to 1.
	Cantidad int `json:"cantidad" example:"1"`
} // @name AddCartItemRequest

// Validate performs custom validation on the request.
func (r *AddCartItemRequest) Validate() error {
	if r.Product != nil && strings.TrimSpace(r.Product.ID) == "" {
		r.Product = nil
	}
	r.ProductoID = strings.TrimSpace(r.ProductoID)
	if r.Product == nil && r.ProductoID == "" {
		return ErrMissingProduct
	}
	if r.Product != nil {
		if r.Product.Precio.IsNegative() {
			return ErrNegativePrice
		}
		if r.Product.Stock != nil && *r.Product.Stock < 0 {
			return ErrNegativeStock
		}
	}
	if r.Cantidad < 0 {
		return ErrInvalidQuantity
	}
	if r.Cantidad == 0 {
		r.Cantidad = 1
	}
	return nil
}

// SetQuantityRequest sets the quantity of a cart line. Zero or less
// removes it.
//
// @Description Request to set a cart line quantity
type SetQuantityRequest struct {
	Cantidad *int `json:"cantidad" binding:"required" example:"2"`
} // @name SetQuantityRequest

// Validate performs custom validation on the request.
func (r *SetQuantityRequest) Validate() error {
	if r.Cantidad == nil {
		return &ValidationError{Field: "cantidad", Message: "is required"}
	}
	return nil
}

// CheckoutRequest places an order from the cart.
//
// @Description Request to place an order
type CheckoutRequest struct {
	DireccionEnvio string `json:"direccionEnvio" example:"Av. Siempre Viva 742"`
	Notas          string `json:"notas,omitempty" example:"Tocar timbre"`
} // @name CheckoutRequest

// Validate performs custom validation on the request.
func (r *CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.DireccionEnvio) == "" {
		return ErrMissingAddress
	}
	return nil
}

// UpdateOrderStatusRequest moves an order to a new status.
//
// @Description Request to change an order status
type UpdateOrderStatusRequest struct {
	NuevoEstado string `json:"nuevoEstado" binding:"required" example:"ENVIADO"`
} // @name UpdateOrderStatusRequest

// Status parses NuevoEstado.
func (r *UpdateOrderStatusRequest) Status() (model.OrderStatus, error) {
	status, ok := model.ParseOrderStatus(r.NuevoEstado)
	if !ok {
		return "", &ValidationError{Field: "nuevoEstado", Message: "unknown status " + r.NuevoEstado}
	}
	return status, nil
}

// SearchQuery is the query string of the product search.
type SearchQuery struct {
	Q          string `form:"q"`
	Categoria  string `form:"categoria"`
	Marca      string `form:"marca"`
	PrecioMin  string `form:"precioMin"`
	PrecioMax  string `form:"precioMax"`
	Disponible *bool  `form:"disponible"`
	OrdenarPor string `form:"ordenarPor"`
	Direccion  string `form:"direccion"`
	Pagina     int    `form:"pagina"`
	Tamanio    int    `form:"tamanio"`
}

// Params converts the query into normalised search parameters.
func (q SearchQuery) Params() (model.SearchParams, error) {
	minPrice, err := parsePrice("precioMin", q.PrecioMin)
	if err != nil {
		return model.SearchParams{}, err
	}
	maxPrice, err := parsePrice("precioMax", q.PrecioMax)
	if err != nil {
		return model.SearchParams{}, err
	}
	if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
		return model.SearchParams{}, &ValidationError{Field: "precioMin", Message: "must not exceed precioMax"}
	}

	return model.SearchParams{
		Q:          q.Q,
		Categoria:  strings.TrimSpace(q.Categoria),
		Marca:      strings.TrimSpace(q.Marca),
		PrecioMin:  minPrice,
		PrecioMax:  maxPrice,
		Disponible: q.Disponible,
		OrdenarPor: q.OrdenarPor,
		Direccion:  q.Direccion,
		Pagina:     q.Pagina,
		Tamanio:    q.Tamanio,
	}.Normalize(), nil
}

func parsePrice(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, &ValidationError{Field: field, Message: "must be a non-negative number"}
	}
	return &d, nil
}
