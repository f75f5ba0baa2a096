package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/notflix/internal/client/client"
	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notflix/internal/common"
	"github.com/dmitrijs2005/notflix/internal/logging"
)

// UserListener observes session identity changes; u is nil after sign-out.
type UserListener func(ctx context.Context, u *models.User)

// SessionStore holds the signed-in user and is the lifecycle root of the
// client. Listeners run synchronously, in subscription order, outside the
// store's lock.
type SessionStore struct {
	auth   client.Auth
	meta   metadata.Repository
	logger logging.Logger

	mu        sync.Mutex
	user      *models.User
	loading   bool
	listeners []UserListener
}

func NewSessionStore(auth client.Auth, meta metadata.Repository, logger logging.Logger) *SessionStore {
	return &SessionStore{auth: auth, meta: meta, logger: logger}
}

func (s *SessionStore) Subscribe(fn UserListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SessionStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading is true while the persisted session is being restored.
func (s *SessionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *SessionStore) setUser(ctx context.Context, u *models.User) {
	s.mu.Lock()
	s.user = u
	ls := append([]UserListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range ls {
		fn(ctx, u)
	}
}

// authError keeps rejections the caller can act on and wraps everything
// else as a remote failure.
func authError(op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists):
		return err
	default:
		return &common.RemoteError{Op: op, Err: err}
	}
}

func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	email = common.NormalizeEmail(email)
	if email == "" || password == "" {
		return common.ErrorUnauthorized
	}

	u, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return authError("sign in", err)
	}

	s.saveRefreshToken(ctx, s.auth.RefreshToken())
	s.logger.Info(ctx, "signed in", "user_id", u.ID)
	s.setUser(ctx, u)
	return nil
}

// SignUp validates the credentials locally, creates the account and leaves
// the new user signed in.
func (s *SessionStore) SignUp(ctx context.Context, email, password string) error {
	email = common.NormalizeEmail(email)
	if err := common.ValidateEmail(email); err != nil {
		return err
	}
	if err := common.ValidatePassword(password); err != nil {
		return err
	}

	u, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return authError("sign up", err)
	}

	s.saveRefreshToken(ctx, s.auth.RefreshToken())
	s.logger.Info(ctx, "signed up", "user_id", u.ID)
	s.setUser(ctx, u)
	return nil
}

// SignOut clears local state before talking to the backend: by the time the
// revocation is attempted every listener has already dropped its caches. A
// failed revocation is logged, not returned.
func (s *SessionStore) SignOut(ctx context.Context) error {
	s.setUser(ctx, nil)

	var localErr error
	if err := s.meta.Delete(ctx, refreshTokenKey); err != nil {
		s.logger.Error(ctx, "failed to forget refresh token", "error", err)
		localErr = err
	}

	if err := s.auth.SignOut(ctx); err != nil {
		s.logger.Warn(ctx, "refresh token revocation failed", "error", err)
	}
	return localErr
}

// Restore signs the persisted session back in. Without a usable token the
// store stays signed out; a rejected token is forgotten, while an
// unreachable backend keeps it for the next attempt.
func (s *SessionStore) Restore(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, err := s.meta.Get(ctx, refreshTokenKey)
	if errors.Is(err, common.ErrorNotFound) || (err == nil && len(token) == 0) {
		return nil
	}
	if err != nil {
		s.logger.Error(ctx, "failed to read refresh token", "error", err)
		return err
	}

	u, err := s.auth.Restore(ctx, string(token))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			s.logger.Info(ctx, "persisted session rejected", "error", err)
			if derr := s.meta.Delete(ctx, refreshTokenKey); derr != nil {
				s.logger.Error(ctx, "failed to forget refresh token", "error", derr)
			}
			return nil
		}
		return &common.RemoteError{Op: "restore session", Err: err}
	}

	s.saveRefreshToken(ctx, s.auth.RefreshToken())
	s.setUser(ctx, u)
	return nil
}

func (s *SessionStore) ChangePassword(ctx context.Context, password string) error {
	if s.User() == nil {
		return common.ErrNoSession
	}
	if err := common.ValidatePassword(password); err != nil {
		return err
	}
	if err := s.auth.ChangePassword(ctx, password); err != nil {
		return authError("change password", err)
	}
	return nil
}

// DeleteAccount removes the account on the backend, then signs out locally.
func (s *SessionStore) DeleteAccount(ctx context.Context) error {
	if s.User() == nil {
		return common.ErrNoSession
	}
	if err := s.auth.DeleteAccount(ctx); err != nil {
		return authError("delete account", err)
	}

	s.setUser(ctx, nil)
	if err := s.meta.Delete(ctx, refreshTokenKey); err != nil {
		s.logger.Error(ctx, "failed to forget refresh token", "error", err)
	}
	return nil
}

// TokenRefreshed persists a refresh token rotated behind the caller's back.
func (s *SessionStore) TokenRefreshed(token string) {
	s.saveRefreshToken(context.Background(), token)
}

func (s *SessionStore) saveRefreshToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.meta.Set(ctx, refreshTokenKey, []byte(token)); err != nil {
		s.logger.Error(ctx, "failed to persist refresh token", "error", err)
	}
}
