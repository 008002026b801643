package client

import (
	"context"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// Recommendations returns the personalised selection for a customer of
// the recommendation engine.
func (c *Client) Recommendations(ctx context.Context, clientID string) (model.Recommendation, error) {
	var out model.Recommendation
	if err := c.get(ctx, "/recomendaciones/cliente/{id}", "/recomendaciones/cliente/"+segment(clientID), nil, &out); err != nil {
		return model.Recommendation{}, err
	}
	if out.Productos == nil {
		out.Productos = []model.Product{}
	}
	return out, nil
}
