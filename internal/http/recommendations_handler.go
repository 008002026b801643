package http

import (
	"github.com/gin-gonic/gin"
)

// Recommendations handles GET /api/recommendations requests.
//
// @Summary      Personal recommendations
// @Description  Products picked by the recommendation engine for the logged-in customer.
// @Tags         Recommendations
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.Recommendation}
// @Failure      401 {object} dto.ErrorResponse "Not logged in"
// @Failure      404 {object} dto.ErrorResponse "No recommendation profile"
// @Security     SessionAuth
// @Router       /api/recommendations [get]
func (h *Handler) Recommendations(c *gin.Context) {
	builder := NewResponseBuilder(c)

	rec, err := h.deps.Recommendations.ForCurrentUser(c.Request.Context(), h.shopper(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(rec)
}
