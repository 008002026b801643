package client

import (
	"context"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.post(ctx, "/auth/registro", "/auth/registro", reg, &out)
	return out, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.post(ctx, "/auth/login", "/auth/login", model.Credentials{Username: username, Password: password}, &out)
	return out, err
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (model.UserProfile, error) {
	var out model.UserProfile
	err := c.get(ctx, "/auth/perfil", "/auth/perfil", nil, &out)
	return out, err
}

// UpdateProfile saves the signed-in user's profile.
func (c *Client) UpdateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	var out model.UserProfile
	err := c.put(ctx, "/auth/perfil", "/auth/perfil", profile, &out)
	return out, err
}
