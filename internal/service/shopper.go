package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/logger"
	"github.com/semanticshop/storefront/internal/repository"
)

// Store keys holding the session next to the cart.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Shopper is the state of one person using the storefront: their cart and
// their login session, both persisted in the same store.
type Shopper struct {
	ID    string
	Store repository.KVRepositoryInterface
	Cart  *cart.Cart

	log zerolog.Logger
}

// NewShopper opens the shopper persisted in store and loads their cart.
func NewShopper(ctx context.Context, id string, store repository.KVRepositoryInterface, rules cart.Rules) *Shopper {
	sh := &Shopper{
		ID:    id,
		Store: store,
		Cart:  cart.New(store, cart.WithRules(rules)),
		log:   logger.Component("shopper").With().Str("shopper_id", id).Logger(),
	}
	sh.Cart.Load(ctx)
	return sh
}

// Token implements client.TokenSource. A shopper without a session yields
// an empty token.
func (sh *Shopper) Token(ctx context.Context) (string, error) {
	token, err := sh.loadToken(ctx)
	if errors.Is(err, ErrNotAuthenticated) {
		return "", nil
	}
	return token, err
}

// Session returns the stored login session or ErrNotAuthenticated.
func (sh *Shopper) Session(ctx context.Context) (model.Session, error) {
	token, err := sh.loadToken(ctx)
	if err != nil {
		return model.Session{}, err
	}

	sess := model.Session{Token: token}
	data, err := sh.Store.Get(ctx, UserKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		sh.log.Warn().Err(err).Msg("Failed to read stored user, continuing without profile")
	default:
		if err := json.Unmarshal(data, &sess.User); err != nil {
			sh.log.Warn().Err(err).Msg("Stored user is corrupt, continuing without profile")
			sess.User = model.UserProfile{}
		}
	}
	return sess, nil
}

// Authorize returns a context whose shop API calls carry the shopper's
// token, plus the session it came from.
func (sh *Shopper) Authorize(ctx context.Context) (context.Context, model.Session, error) {
	sess, err := sh.Session(ctx)
	if err != nil {
		return ctx, model.Session{}, err
	}
	return client.ContextWithToken(ctx, sess.Token), sess, nil
}

func (sh *Shopper) loadToken(ctx context.Context) (string, error) {
	data, err := sh.Store.Get(ctx, TokenKey)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}

	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		sh.log.Warn().Err(err).Msg("Stored token is corrupt, treating as logged out")
		return "", ErrNotAuthenticated
	}
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

func (sh *Shopper) saveSession(ctx context.Context, sess model.Session) error {
	token, err := json.Marshal(sess.Token)
	if err != nil {
		return fmt.Errorf("encode session token: %w", err)
	}
	if err := sh.Store.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return sh.saveUser(ctx, sess.User)
}

func (sh *Shopper) saveUser(ctx context.Context, user model.UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := sh.Store.Set(ctx, UserKey, data); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

func (sh *Shopper) clearSession(ctx context.Context) error {
	var errs []error
	for _, key := range []string{TokenKey, UserKey} {
		if err := sh.Store.Delete(ctx, key); err != nil && !errors.Is(err, repository.ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

var _ client.TokenSource = (*Shopper)(nil)
