package http

import (
	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/i18n"
)

// Login handles POST /api/auth/login requests.
//
// @Summary      Log in to the shop
// @Description  Logs the session in with shop credentials. The shop token stays on the server; the response carries the profile.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Shop credentials"
// @Success      200 {object} dto.SuccessResponse{data=model.UserProfile}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      401 {object} dto.ErrorResponse "Wrong username or password"
// @Failure      502 {object} dto.ErrorResponse "Shop API failed"
// @Security     SessionAuth
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.LoginRequest](c)
	if err != nil {
		builder.Fail(err)
		return
	}

	sess, err := h.deps.Sessions.Login(c.Request.Context(), h.shopper(c), req.Username, req.Password)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(sess.User)
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Create a shop account
// @Description  Registers with the shop and logs the session in.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Account data"
// @Success      201 {object} dto.SuccessResponse{data=model.UserProfile}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      409 {object} dto.ErrorResponse "Username or email taken"
// @Security     SessionAuth
// @Router       /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.RegisterRequest](c)
	if err != nil {
		builder.Fail(err)
		return
	}

	sess, err := h.deps.Sessions.Register(c.Request.Context(), h.shopper(c), req.Registration)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessCreated(sess.User)
}

// Profile handles GET /api/auth/profile requests.
//
// @Summary      Current profile
// @Description  Reloads the profile from the shop and stores it in the session.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.UserProfile}
// @Failure      401 {object} dto.ErrorResponse "Not logged in"
// @Security     SessionAuth
// @Router       /api/auth/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	profile, err := h.deps.Sessions.RefreshProfile(c.Request.Context(), h.shopper(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(profile)
}

// UpdateProfile handles PUT /api/auth/profile requests.
//
// @Summary      Update profile
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body model.UserProfile true "Profile"
// @Success      200 {object} dto.SuccessResponse{data=model.UserProfile}
// @Failure      401 {object} dto.ErrorResponse "Not logged in"
// @Security     SessionAuth
// @Router       /api/auth/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[model.UserProfile](c)
	if err != nil {
		builder.Fail(err)
		return
	}

	profile, err := h.deps.Sessions.UpdateProfile(c.Request.Context(), h.shopper(c), *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(profile)
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Log out of the shop
// @Description  Forgets the shop login of this session. The cart is kept.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} dto.SuccessResponse
// @Security     SessionAuth
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if err := h.deps.Sessions.Logout(c.Request.Context(), h.shopper(c)); err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(gin.H{
		"message": i18n.GetTranslator().Translate(i18n.SuccessKeyLoggedOut, i18n.GetLocale(c)),
	})
}
