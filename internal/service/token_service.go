package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/semanticshop/storefront/config"
)

// SessionClaims identify a BFF session. The session id names the store
// namespace holding that visitor's cart and login.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionToken is an issued session token.
type SessionToken struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in"`
}

// TokenService issues and validates BFF session tokens.
type TokenService interface {
	// IssueSession starts a new guest session.
	IssueSession() (SessionToken, error)
	// ValidateSession returns the claims of a valid token.
	ValidateSession(tokenString string) (*SessionClaims, error)
}

// TokenServiceImpl implements TokenService with HS256 JWTs.
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey  string
	SessionTTL time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:  authConfig.JWTSecretKey,
		SessionTTL: authConfig.SessionTTL,
	}
}

// NewTokenService creates a new token service.
func NewTokenService(cfg TokenConfig) (TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("session token secret is empty")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// IssueSession signs a token for a fresh session id.
func (s *TokenServiceImpl) IssueSession() (SessionToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	sid := uuid.NewString()

	claims := &SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sid,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return SessionToken{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return SessionToken{
		Token:     signed,
		SessionID: sid,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}

// ValidateSession parses tokenString and checks its signature and expiry.
func (s *TokenServiceImpl) ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
