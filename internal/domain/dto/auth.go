package dto

import (
	"net/mail"
	"strings"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to log in to the shop
// @Example {"username": "ana", "password": "password123"}
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ana"`
	Password string `json:"password" binding:"required" example:"password123"`
} // @name LoginRequest

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// RegisterRequest represents the JSON request body for the register endpoint.
//
// @Description Request to create a shop account
type RegisterRequest struct {
	model.Registration
} // @name RegisterRequest

// Validate performs custom validation on the register request.
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	if r.Username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if len(r.Username) < 3 {
		return &ValidationError{Field: "username", Message: "username must be at least 3 characters"}
	}
	if len(r.Username) > 50 {
		return &ValidationError{Field: "username", Message: "username must be at most 50 characters"}
	}
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ValidationError{Field: "email", Message: "email is not valid"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if r.RangoPrecioMin != nil && r.RangoPrecioMax != nil && r.RangoPrecioMin.GreaterThan(*r.RangoPrecioMax) {
		return &ValidationError{Field: "rangoPrecioMin", Message: "must not exceed rangoPrecioMax"}
	}
	return nil
}
