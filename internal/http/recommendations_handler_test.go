//go:build !integration

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/domain/model"
)

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)
	token := env.session(t)
	env.login(t, token, testUser("CLIENTE"))

	env.api.On("Recommendations", mock.Anything, "Cliente_Ana").Return(model.Recommendation{
		ClienteID:            "Cliente_Ana",
		Productos:            []model.Product{testProduct("p1", "10", 1)},
		TotalRecomendaciones: 1,
	}, nil).Once()

	w := env.do(t, http.MethodGet, "/api/recommendations", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decodeData[model.Recommendation](t, w).TotalRecomendaciones)
}

func TestRecommendations_NoClientID(t *testing.T) {
	env := newTestEnv(t)
	token := env.session(t)
	user := testUser("CLIENTE")
	user.ClienteIDOntologia = ""
	env.login(t, token, user)

	w := env.do(t, http.MethodGet, "/api/recommendations", token, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	env.api.AssertNotCalled(t, "Recommendations", mock.Anything, mock.Anything)
}
