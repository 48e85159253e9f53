package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/domain/repository"
	"github.com/polkiloo/iowasensors/internal/pkg/auth"
)

// Fixed storage keys shared with every other client of the backend.
const (
	KeyAuthToken = "authToken"
	KeyUserInfo  = "userInfo"
)

// Session gives typed access to the credential and profile persisted on the device.
type Session struct {
	store  repository.KeyValueStore
	sealer auth.Sealer
	logger *slog.Logger
}

func New(store repository.KeyValueStore, sealer auth.Sealer, logger *slog.Logger) *Session {
	return &Session{store: store, sealer: sealer, logger: logger}
}

// Token returns the stored auth token. ok is false when nobody is logged in.
// A value that can no longer be unsealed counts as absent.
func (s *Session) Token(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.load(ctx, KeyAuthToken)
	if err != nil || !ok {
		return "", false, err
	}
	if len(raw) == 0 {
		return "", false, nil
	}
	return string(raw), true, nil
}

// UserInfo returns the stored profile blob.
func (s *Session) UserInfo(ctx context.Context) (*model.UserInfo, bool, error) {
	raw, ok, err := s.load(ctx, KeyUserInfo)
	if err != nil || !ok {
		return nil, false, err
	}
	var info model.UserInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, false, fmt.Errorf("decode user info: %w", err)
	}
	info.Raw = raw
	return &info, true, nil
}

// SaveToken persists the auth token alone.
func (s *Session) SaveToken(ctx context.Context, token string) error {
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return s.store.Set(ctx, KeyAuthToken, sealed)
}

// SaveUserInfo persists the raw profile blob as returned by the backend.
func (s *Session) SaveUserInfo(ctx context.Context, raw json.RawMessage) error {
	sealed, err := s.sealer.Seal(raw)
	if err != nil {
		return fmt.Errorf("seal user info: %w", err)
	}
	return s.store.Set(ctx, KeyUserInfo, sealed)
}

// Save persists token and profile together.
func (s *Session) Save(ctx context.Context, token string, info json.RawMessage) error {
	sealedToken, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	sealedInfo, err := s.sealer.Seal(info)
	if err != nil {
		return fmt.Errorf("seal user info: %w", err)
	}
	return s.store.SetMany(ctx, map[string][]byte{
		KeyAuthToken: sealedToken,
		KeyUserInfo:  sealedInfo,
	})
}

// Clear removes both keys.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, KeyAuthToken, KeyUserInfo)
}

func (s *Session) load(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	raw, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Warn("stored value cannot be unsealed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false, nil
	}
	return raw, true, nil
}
