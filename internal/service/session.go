package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/domain/model"
	"github.com/semanticshop/storefront/internal/logger"
)

// SessionService logs shoppers in and out of the shop API.
type SessionService interface {
	Login(ctx context.Context, sh *Shopper, username, password string) (model.Session, error)
	Register(ctx context.Context, sh *Shopper, reg model.Registration) (model.Session, error)
	Logout(ctx context.Context, sh *Shopper) error
	Current(ctx context.Context, sh *Shopper) (model.Session, error)
	RefreshProfile(ctx context.Context, sh *Shopper) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, sh *Shopper, profile model.UserProfile) (model.UserProfile, error)
}

// SessionServiceImpl implements SessionService.
type SessionServiceImpl struct {
	api AuthAPI
	log zerolog.Logger
}

// NewSessionService creates a session service backed by api.
func NewSessionService(api AuthAPI) SessionService {
	return &SessionServiceImpl{
		api: api,
		log: logger.Component("session"),
	}
}

// Login authenticates against the shop API and stores the session.
func (s *SessionServiceImpl) Login(ctx context.Context, sh *Shopper, username, password string) (model.Session, error) {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return model.Session{}, fmt.Errorf("login: %w", err)
	}
	return s.establish(ctx, sh, resp)
}

// Register creates the account and logs it in.
func (s *SessionServiceImpl) Register(ctx context.Context, sh *Shopper, reg model.Registration) (model.Session, error) {
	resp, err := s.api.Register(ctx, reg)
	if err != nil {
		return model.Session{}, fmt.Errorf("register: %w", err)
	}
	return s.establish(ctx, sh, resp)
}

// establish stores the token first so a failed profile fetch still leaves
// the shopper logged in with the data the auth response carried.
func (s *SessionServiceImpl) establish(ctx context.Context, sh *Shopper, resp model.AuthResponse) (model.Session, error) {
	if resp.Token == "" {
		return model.Session{}, errors.New("shop API returned no token")
	}

	sess := model.Session{Token: resp.Token, User: resp.BasicProfile()}
	if err := sh.saveSession(ctx, sess); err != nil {
		return model.Session{}, err
	}

	full, err := s.api.Profile(client.ContextWithToken(ctx, resp.Token))
	if err != nil {
		s.log.Warn().Err(err).Str("username", resp.Username).Msg("Profile fetch failed, keeping basic user data")
	} else {
		sess.User = model.MergeProfile(sess.User, full)
		if err := sh.saveUser(ctx, sess.User); err != nil {
			return model.Session{}, err
		}
	}

	s.log.Info().Str("shopper_id", sh.ID).Str("username", sess.User.Username).Msg("Logged in")
	return sess, nil
}

// Logout forgets the session. The cart is kept.
func (s *SessionServiceImpl) Logout(ctx context.Context, sh *Shopper) error {
	if err := sh.clearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("shopper_id", sh.ID).Msg("Logged out")
	return nil
}

// Current returns the stored session or ErrNotAuthenticated.
func (s *SessionServiceImpl) Current(ctx context.Context, sh *Shopper) (model.Session, error) {
	return sh.Session(ctx)
}

// RefreshProfile fetches the profile again and stores it.
func (s *SessionServiceImpl) RefreshProfile(ctx context.Context, sh *Shopper) (model.UserProfile, error) {
	authCtx, sess, err := sh.Authorize(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}

	full, err := s.api.Profile(authCtx)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("fetch profile: %w", err)
	}

	merged := model.MergeProfile(sess.User, full)
	if err := sh.saveUser(ctx, merged); err != nil {
		return model.UserProfile{}, err
	}
	return merged, nil
}

// UpdateProfile saves profile upstream and stores what the API returns.
func (s *SessionServiceImpl) UpdateProfile(ctx context.Context, sh *Shopper, profile model.UserProfile) (model.UserProfile, error) {
	authCtx, sess, err := sh.Authorize(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}

	updated, err := s.api.UpdateProfile(authCtx, profile)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}

	merged := model.MergeProfile(sess.User, updated)
	if err := sh.saveUser(ctx, merged); err != nil {
		return model.UserProfile{}, err
	}
	return merged, nil
}
