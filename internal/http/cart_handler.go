package http

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/domain/dto"
)

// GetCart handles GET /api/cart requests.
//
// @Summary      Show the cart
// @Description  Returns the session's cart with subtotal, shipping, tax, total and item count.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse}
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid session token"
// @Security     SessionAuth
// @Router       /api/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(dto.NewCartResponse(h.shopper(c).Cart))
}

// AddCartItem handles POST /api/cart/items requests.
//
// @Summary      Add a product to the cart
// @Description  Adds cantidad units (default 1). Send the product as shown in the catalog, or only its productoId to have it looked up. Adding an existing product increases its quantity.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        request body dto.AddCartItemRequest true "Product and quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartMutationResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      404 {object} dto.ErrorResponse "Unknown product"
// @Failure      502 {object} dto.ErrorResponse "Shop API failed"
// @Security     SessionAuth
// @Router       /api/cart/items [post]
func (h *Handler) AddCartItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.AddCartItemRequest](c)
	if err != nil {
		builder.Fail(err)
		return
	}

	ctx := c.Request.Context()
	product := req.Product
	if product == nil {
		p, err := h.deps.Catalog.Product(ctx, req.ProductoID)
		if err != nil {
			builder.Fail(err)
			return
		}
		product = &p
	}

	sh := h.shopper(c)
	outcome := sh.Cart.AddItem(ctx, *product, req.Cantidad)
	builder.SuccessOK(dto.CartMutationResponse{Outcome: outcome, Cart: dto.NewCartResponse(sh.Cart)})
}

// SetCartItemQuantity handles PUT /api/cart/items/:id requests.
//
// @Summary      Set a cart line quantity
// @Description  Sets the quantity, clamped to the known stock. Zero or less removes the line. Unknown products are left alone (outcome noop).
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        id path string true "Product id"
// @Param        request body dto.SetQuantityRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartMutationResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Security     SessionAuth
// @Router       /api/cart/items/{id} [put]
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.SetQuantityRequest](c)
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	qty := *req.Cantidad
	h.mutateCart(c, func(ctx context.Context, items *cart.Cart, id string) cart.Outcome {
		return items.SetQuantity(ctx, id, qty)
	})
}

// IncrementCartItem handles POST /api/cart/items/:id/increment requests.
//
// @Summary      Add one unit
// @Description  Adds one unit while below the known stock; at the stock limit the outcome is rejected_at_stock.
// @Tags         Cart
// @Produce      json
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartMutationResponse}
// @Security     SessionAuth
// @Router       /api/cart/items/{id}/increment [post]
func (h *Handler) IncrementCartItem(c *gin.Context) {
	h.mutateCart(c, func(ctx context.Context, items *cart.Cart, id string) cart.Outcome {
		return items.IncrementQuantity(ctx, id)
	})
}

// DecrementCartItem handles POST /api/cart/items/:id/decrement requests.
//
// @Summary      Remove one unit
// @Description  Removes one unit; the last unit removes the line.
// @Tags         Cart
// @Produce      json
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartMutationResponse}
// @Security     SessionAuth
// @Router       /api/cart/items/{id}/decrement [post]
func (h *Handler) DecrementCartItem(c *gin.Context) {
	h.mutateCart(c, func(ctx context.Context, items *cart.Cart, id string) cart.Outcome {
		return items.DecrementQuantity(ctx, id)
	})
}

// RemoveCartItem handles DELETE /api/cart/items/:id requests.
//
// @Summary      Remove a cart line
// @Tags         Cart
// @Produce      json
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartMutationResponse}
// @Security     SessionAuth
// @Router       /api/cart/items/{id} [delete]
func (h *Handler) RemoveCartItem(c *gin.Context) {
	h.mutateCart(c, func(ctx context.Context, items *cart.Cart, id string) cart.Outcome {
		return items.RemoveItem(ctx, id)
	})
}

// ClearCart handles DELETE /api/cart requests.
//
// @Summary      Empty the cart
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CartMutationResponse}
// @Security     SessionAuth
// @Router       /api/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	sh := h.shopper(c)
	outcome := sh.Cart.Clear(c.Request.Context())
	NewResponseBuilder(c).SuccessOK(dto.CartMutationResponse{Outcome: outcome, Cart: dto.NewCartResponse(sh.Cart)})
}

func (h *Handler) mutateCart(c *gin.Context, op func(context.Context, *cart.Cart, string) cart.Outcome) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		NewResponseBuilder(c).Fail(dto.ErrMissingProduct)
		return
	}

	sh := h.shopper(c)
	outcome := op(c.Request.Context(), sh.Cart, id)
	NewResponseBuilder(c).SuccessOK(dto.CartMutationResponse{Outcome: outcome, Cart: dto.NewCartResponse(sh.Cart)})
}
