package http

import (
	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/domain/dto"
)

// IssueSession handles POST /api/session requests.
//
// @Summary      Start a guest session
// @Description  Issues a session token. Every other /api route requires it as a Bearer token; the session owns one cart and one shop login.
// @Tags         Session
// @Produce      json
// @Success      201 {object} dto.SuccessResponse{data=dto.SessionResponse} "Session issued"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/session [post]
func (h *Handler) IssueSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	token, err := h.deps.Tokens.IssueSession()
	if err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessCreated(dto.SessionResponse{
		Token:     token.Token,
		SessionID: token.SessionID,
		ExpiresAt: token.ExpiresAt,
		ExpiresIn: token.ExpiresIn,
	})
}
