package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/service"
)

func newTokens(t *testing.T, secret string) service.TokenService {
	t.Helper()
	tokens, err := service.NewTokenService(service.TokenConfig{SecretKey: secret, SessionTTL: time.Hour})
	require.NoError(t, err)
	return tokens
}

func TestSessionAuth(t *testing.T) {
	tokens := newTokens(t, "test-secret")
	issued, err := tokens.IssueSession()
	require.NoError(t, err)

	foreign, err := newTokens(t, "other-secret").IssueSession()
	require.NoError(t, err)

	tests := []struct {
		name          string
		header        string
		wantStatus    int
		wantSessionID string
		wantMessage   string
	}{
		{name: "valid token", header: "Bearer " + issued.Token, wantStatus: http.StatusOK, wantSessionID: issued.SessionID},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: "Se requiere un token de sesión"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantMessage: "Token inválido o expirado"},
		{name: "empty bearer", header: "Bearer  ", wantStatus: http.StatusUnauthorized, wantMessage: "Se requiere un token de sesión"},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantMessage: "Token inválido o expirado"},
		{name: "token from another secret", header: "Bearer " + foreign.Token, wantStatus: http.StatusUnauthorized, wantMessage: "Token inválido o expirado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SessionAuth(tokens))
			router.GET("/api/v1/cart", func(c *gin.Context) {
				c.String(http.StatusOK, GetSessionID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantSessionID, w.Body.String())
				return
			}
			assert.Contains(t, w.Body.String(), "unauthorized")
			assert.Contains(t, w.Body.String(), tt.wantMessage)
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestGetSessionID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetSessionID(c))
}
