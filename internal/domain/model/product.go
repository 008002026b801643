// Package model defines the core domain entities of the storefront.
package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, the way the shop API and the stored
	// cart blob encode them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry as served by the shop API.
//
// @Description Catalog product
type Product struct {
	ID                     string          `json:"id" example:"Laptop_Dell_XPS13"`
	Nombre                 string          `json:"nombre" example:"Dell XPS 13"`
	Tipo                   string          `json:"tipo,omitempty" example:"Laptop"`
	Marca                  string          `json:"marca" example:"Dell"`
	Categoria              string          `json:"categoria,omitempty" example:"Laptops"`
	Precio                 decimal.Decimal `json:"precio" swaggertype:"number" example:"1299.99"`
	Stock                  *int            `json:"stock,omitempty" example:"5"`
	Descripcion            string          `json:"descripcion,omitempty"`
	Caracteristicas        []string        `json:"caracteristicas,omitempty"`
	ProductosCompatibles   []string        `json:"productosCompatibles,omitempty"`
	ProductosIncompatibles []string        `json:"productosIncompatibles,omitempty"`
	Disponible             bool            `json:"disponible"`
	ImagenURL              string          `json:"imagenUrl,omitempty"`
}

// StockLimit returns the known stock ceiling. A missing or non-positive
// stock means the limit is unknown.
func (p Product) StockLimit() (int, bool) {
	if p.Stock == nil || *p.Stock <= 0 {
		return 0, false
	}
	return *p.Stock, true
}

// PriceRange is the catalog-wide price span used by the price filter.
type PriceRange struct {
	PrecioMin decimal.Decimal `json:"precioMin" swaggertype:"number"`
	PrecioMax decimal.Decimal `json:"precioMax" swaggertype:"number"`
}

// FilterOptions groups the values offered by the search filters.
type FilterOptions struct {
	Categorias []string   `json:"categorias"`
	Marcas     []string   `json:"marcas"`
	Precios    PriceRange `json:"rangoPrecios"`
}

// IntPtr is a small helper for optional integer fields.
func IntPtr(v int) *int {
	return &v
}
