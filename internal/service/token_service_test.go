//go:build !integration

package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/config"
)

func newTestTokenService(t *testing.T, secret string, ttl time.Duration) *TokenServiceImpl {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{SecretKey: secret, SessionTTL: ttl})
	require.NoError(t, err)
	return svc.(*TokenServiceImpl)
}

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService(TokenConfig{})
	assert.Error(t, err)

	cfg := NewTokenConfigFromAuthConfig(config.AuthConfig{JWTSecretKey: "k", SessionTTL: time.Hour})
	assert.Equal(t, "k", cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.SessionTTL)

	svc := newTestTokenService(t, "k", 0)
	assert.Equal(t, 24*time.Hour, svc.ttl)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", time.Hour)

	issued, err := svc.IssueSession()
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Len(t, issued.SessionID, 36)
	assert.Equal(t, int64(3600), issued.ExpiresIn)

	claims, err := svc.ValidateSession(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.SessionID, claims.SessionID)

	other, err := svc.IssueSession()
	require.NoError(t, err)
	assert.NotEqual(t, issued.SessionID, other.SessionID)
}

func TestTokenService_ValidateSessionRejects(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", time.Hour)
	issued, err := svc.IssueSession()
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func() string
		svc   *TokenServiceImpl
	}{
		{
			name:  "garbage",
			token: func() string { return "not-a-jwt" },
			svc:   svc,
		},
		{
			name:  "wrong secret",
			token: func() string { return issued.Token },
			svc:   newTestTokenService(t, "other-secret", time.Hour),
		},
		{
			name:  "expired",
			token: func() string { return issued.Token },
			svc: func() *TokenServiceImpl {
				late := newTestTokenService(t, "test-secret", time.Hour)
				late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
				return late
			}(),
		},
		{
			name: "wrong signing method",
			token: func() string {
				tok := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
					SessionID: issued.SessionID,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				})
				s, _ := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
				return s
			},
			svc: svc,
		},
		{
			name: "session id is not a uuid",
			token: func() string {
				tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
					SessionID: "../../etc",
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				})
				s, _ := tok.SignedString([]byte("test-secret"))
				return s
			},
			svc: svc,
		},
		{
			name: "missing expiry",
			token: func() string {
				tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{SessionID: issued.SessionID})
				s, _ := tok.SignedString([]byte("test-secret"))
				return s
			},
			svc: svc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.svc.ValidateSession(tt.token())
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
