package http

import (
	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/service"
)

// Checkout handles POST /api/checkout requests.
//
// @Summary      Place an order
// @Description  Copies the cart to the shop, places the order and empties the cart. Send an Idempotency-Key header to make retries safe.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Unique key for safe retries"
// @Param        request body dto.CheckoutRequest true "Shipping details"
// @Success      201 {object} dto.SuccessResponse{data=model.Order}
// @Failure      400 {object} dto.ErrorResponse "Missing address or empty cart"
// @Failure      401 {object} dto.ErrorResponse "Not logged in"
// @Failure      502 {object} dto.ErrorResponse "Cart could not be synchronised"
// @Security     SessionAuth
// @Router       /api/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CheckoutRequest](c)
	if err != nil {
		builder.Fail(err)
		return
	}

	order, err := h.deps.Checkout.Checkout(c.Request.Context(), h.shopper(c), service.CheckoutRequest{
		DireccionEnvio: req.DireccionEnvio,
		Notas:          req.Notas,
	})
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessCreated(order)
}
