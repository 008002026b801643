package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/semanticshop/storefront/internal/domain/model"
)

// RecommendationService serves the logged-in shopper's recommendations.
type RecommendationService interface {
	ForCurrentUser(ctx context.Context, sh *Shopper) (model.Recommendation, error)
}

// RecommendationServiceImpl implements RecommendationService.
type RecommendationServiceImpl struct {
	api RecommendationsAPI
}

// NewRecommendationService creates a recommendation service backed by api.
func NewRecommendationService(api RecommendationsAPI) RecommendationService {
	return &RecommendationServiceImpl{api: api}
}

// ForCurrentUser asks the engine about the customer linked to the session.
func (s *RecommendationServiceImpl) ForCurrentUser(ctx context.Context, sh *Shopper) (model.Recommendation, error) {
	authCtx, sess, err := sh.Authorize(ctx)
	if err != nil {
		return model.Recommendation{}, err
	}

	clientID := strings.TrimSpace(sess.User.ClienteIDOntologia)
	if clientID == "" {
		return model.Recommendation{}, ErrNoClientID
	}

	rec, err := s.api.Recommendations(authCtx, clientID)
	if err != nil {
		return model.Recommendation{}, fmt.Errorf("recommendations for %s: %w", clientID, err)
	}
	return rec, nil
}
