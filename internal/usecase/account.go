package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
)

// AccountBackend covers the user endpoints of the store backend.
type AccountBackend interface {
	ObtainToken(ctx context.Context, creds model.Credentials) (string, error)
	Me(ctx context.Context, token string) (json.RawMessage, error)
	Register(ctx context.Context, reg model.Registration) error
	ResetPassword(ctx context.Context, req model.PasswordReset) error
}

// SessionStore persists the signed-in identity on the device.
type SessionStore interface {
	TokenSource
	UserInfo(ctx context.Context) (*model.UserInfo, bool, error)
	SaveToken(ctx context.Context, token string) error
	SaveUserInfo(ctx context.Context, raw json.RawMessage) error
	Clear(ctx context.Context) error
}

// AccountUseCase drives sign in, sign out, sign up and password reset.
type AccountUseCase struct {
	backend AccountBackend
	session SessionStore
	logger  *slog.Logger
}

func NewAccountUseCase(backend AccountBackend, session SessionStore, logger *slog.Logger) *AccountUseCase {
	return &AccountUseCase{backend: backend, session: session, logger: logger}
}

// Login obtains a token, stores it, then fetches and stores the profile.
// When the profile call fails the token stays stored.
func (u *AccountUseCase) Login(ctx context.Context, creds model.Credentials) (*model.UserInfo, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := validateForm(creds); err != nil {
		return nil, err
	}

	token, err := u.backend.ObtainToken(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := u.session.SaveToken(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	raw, err := u.backend.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := u.session.SaveUserInfo(ctx, raw); err != nil {
		return nil, fmt.Errorf("store profile: %w", err)
	}

	var info model.UserInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	info.Raw = raw

	u.logger.Info("signed in", slog.String("username", info.Username))
	return &info, nil
}

// Logout forgets the stored identity.
func (u *AccountUseCase) Logout(ctx context.Context) error {
	if err := u.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// SignedIn reports whether a token is stored on the device.
func (u *AccountUseCase) SignedIn(ctx context.Context) (bool, error) {
	_, ok, err := u.session.Token(ctx)
	return ok, err
}

// Current returns the stored profile or ErrNotAuthenticated.
func (u *AccountUseCase) Current(ctx context.Context) (*model.UserInfo, error) {
	if _, ok, err := u.session.Token(ctx); err != nil {
		return nil, err
	} else if !ok {
		return nil, domainErrors.ErrNotAuthenticated
	}

	info, ok, err := u.session.UserInfo(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrNotAuthenticated
	}
	return info, nil
}

// Register validates the sign-up form locally before creating the account.
func (u *AccountUseCase) Register(ctx context.Context, reg model.Registration) error {
	if err := validateForm(reg); err != nil {
		return err
	}
	if err := u.backend.Register(ctx, reg); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using the emailed reset token.
func (u *AccountUseCase) ResetPassword(ctx context.Context, req model.PasswordReset) error {
	if err := validateForm(req); err != nil {
		return err
	}
	if err := u.backend.ResetPassword(ctx, req); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
