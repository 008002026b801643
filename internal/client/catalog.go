package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// ListProducts returns the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := c.get(ctx, "/productos", "/productos", nil, &out)
	return out, err
}

// GetProduct returns one product.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	err := c.get(ctx, "/productos/{id}", "/productos/"+segment(id), nil, &out)
	return out, err
}

// ProductsByCategory returns the products of one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var out []model.Product
	err := c.get(ctx, "/productos/categoria/{categoria}", "/productos/categoria/"+segment(category), nil, &out)
	return out, err
}

// SimpleSearch runs a plain text search without paging.
func (c *Client) SimpleSearch(ctx context.Context, query string) ([]model.Product, error) {
	var out []model.Product
	err := c.get(ctx, "/productos/buscar", "/productos/buscar", url.Values{"q": {query}}, &out)
	return out, err
}

type searchEnvelope struct {
	Success bool             `json:"success"`
	Datos   model.SearchPage `json:"datos"`
}

// Search runs a filtered, sorted and paged search. Params are sent as
// given; normalise them first.
func (c *Client) Search(ctx context.Context, params model.SearchParams) (model.SearchPage, error) {
	var out searchEnvelope
	if err := c.get(ctx, "/productos/buscar", "/productos/buscar", params.Values(), &out); err != nil {
		return model.SearchPage{}, err
	}
	if out.Datos.Productos == nil {
		out.Datos.Productos = []model.Product{}
	}
	return out.Datos, nil
}

// Categories lists the catalog categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out struct {
		Categorias []string `json:"categorias"`
	}
	if err := c.get(ctx, "/productos/categorias", "/productos/categorias", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Categorias), nil
}

// Brands lists the catalog brands.
func (c *Client) Brands(ctx context.Context) ([]string, error) {
	var out struct {
		Marcas []string `json:"marcas"`
	}
	if err := c.get(ctx, "/productos/marcas", "/productos/marcas", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Marcas), nil
}

// PriceRange returns the cheapest and most expensive catalog prices.
func (c *Client) PriceRange(ctx context.Context) (model.PriceRange, error) {
	var out model.PriceRange
	err := c.get(ctx, "/productos/rango-precios", "/productos/rango-precios", nil, &out)
	return out, err
}

// Suggestions returns up to limit autocomplete entries for a partial query.
func (c *Client) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limite", strconv.Itoa(limit))
	}
	var out struct {
		Sugerencias []string `json:"sugerencias"`
	}
	if err := c.get(ctx, "/productos/sugerencias", "/productos/sugerencias", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Sugerencias), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
