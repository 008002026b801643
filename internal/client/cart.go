package client

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// RemoteCartItem is a line of the server-side cart.
type RemoteCartItem struct {
	ID                int64           `json:"id"`
	ProductoID        string          `json:"productoId"`
	ProductoNombre    string          `json:"productoNombre"`
	ProductoMarca     string          `json:"productoMarca,omitempty"`
	ProductoCategoria string          `json:"productoCategoria,omitempty"`
	Precio            decimal.Decimal `json:"precio"`
	Cantidad          int             `json:"cantidad"`
	Stock             *int            `json:"stock,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	FechaAgregado     model.Timestamp `json:"fechaAgregado"`
	Disponible        bool            `json:"disponible"`
}

// RemoteCart is the server-side cart the order is built from.
type RemoteCart struct {
	Items            []RemoteCartItem `json:"items"`
	CantidadTotal    int              `json:"cantidadTotal"`
	Total            decimal.Decimal  `json:"total"`
	TodosDisponibles bool             `json:"todosDisponibles"`
}

type addToCartRequest struct {
	ProductoID string `json:"productoId"`
	Cantidad   int    `json:"cantidad"`
}

type quantityRequest struct {
	Cantidad int `json:"cantidad"`
}

type cartItemEnvelope struct {
	Item RemoteCartItem `json:"item"`
}

// RemoteCart fetches the signed-in user's server-side cart.
func (c *Client) RemoteCart(ctx context.Context) (RemoteCart, error) {
	var out struct {
		Carrito RemoteCart `json:"carrito"`
	}
	err := c.get(ctx, "/carrito", "/carrito", nil, &out)
	return out.Carrito, err
}

// AddToRemoteCart adds qty units of a product to the server-side cart.
func (c *Client) AddToRemoteCart(ctx context.Context, productID string, qty int) (RemoteCartItem, error) {
	var out cartItemEnvelope
	err := c.post(ctx, "/carrito/agregar", "/carrito/agregar", addToCartRequest{ProductoID: productID, Cantidad: qty}, &out)
	return out.Item, err
}

// UpdateRemoteCart sets the quantity of a server-side cart line.
func (c *Client) UpdateRemoteCart(ctx context.Context, productID string, qty int) (RemoteCartItem, error) {
	var out cartItemEnvelope
	err := c.put(ctx, "/carrito/actualizar/{id}", "/carrito/actualizar/"+segment(productID), quantityRequest{Cantidad: qty}, &out)
	return out.Item, err
}

// RemoveFromRemoteCart deletes a line of the server-side cart.
func (c *Client) RemoveFromRemoteCart(ctx context.Context, productID string) error {
	return c.delete(ctx, "/carrito/eliminar/{id}", "/carrito/eliminar/"+segment(productID), nil)
}

// ClearRemoteCart empties the server-side cart.
func (c *Client) ClearRemoteCart(ctx context.Context) error {
	return c.delete(ctx, "/carrito/limpiar", "/carrito/limpiar", nil)
}
