package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/i18n"
	"github.com/semanticshop/storefront/internal/service"
)

const (
	// SessionIDKey is the gin context key holding the authenticated session id.
	SessionIDKey ContextKey = "session_id"
	// SessionClaimsKey is the gin context key holding the session claims.
	SessionClaimsKey ContextKey = "session_claims"

	bearerPrefix = "Bearer "
)

// SessionAuth requires a session token issued by the storefront in the
// Authorization header and exposes its session id to the handlers.
func SessionAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := tokens.ValidateSession(tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(SessionIDKey), claims.SessionID)
		c.Set(string(SessionClaimsKey), claims)
		c.Next()
	}
}

// GetSessionID returns the authenticated session id, or "" outside
// SessionAuth.
func GetSessionID(c *gin.Context) string {
	return c.GetString(string(SessionIDKey))
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
		WithRequestID(GetRequestID(c))
	c.Header("WWW-Authenticate", `Bearer realm="storefront"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
}
