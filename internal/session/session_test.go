package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/iowasensors/internal/pkg/auth"
	"github.com/polkiloo/iowasensors/internal/storage/memory"
)

func newTestSession(t *testing.T) (*Session, *memory.Store) {
	t.Helper()
	sealer, err := auth.NewAEADSealer("secret", auth.Options{})
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	store := memory.New()
	return New(store, sealer, slog.New(slog.NewJSONHandler(io.Discard, nil))), store
}

func TestTokenAbsent(t *testing.T) {
	s, _ := newTestSession(t)
	token, ok, err := s.Token(context.Background())
	if err != nil || ok || token != "" {
		t.Fatalf("expected no token, got %q %v %v", token, ok, err)
	}
	info, ok, err := s.UserInfo(context.Background())
	if err != nil || ok || info != nil {
		t.Fatalf("expected no user info, got %v %v %v", info, ok, err)
	}
}

func TestSaveAndRead(t *testing.T) {
	s, store := newTestSession(t)
	ctx := context.Background()

	raw := json.RawMessage(`{"id":7,"username":"ana","email":"ana@example.com","is_staff":true,"extra":"kept"}`)
	if err := s.Save(ctx, "abc123", raw); err != nil {
		t.Fatalf("save: %v", err)
	}

	sealed, err := store.Get(ctx, KeyAuthToken)
	if err != nil {
		t.Fatalf("expected token under %q: %v", KeyAuthToken, err)
	}
	if string(sealed) == "abc123" {
		t.Fatal("token stored in clear text")
	}

	token, ok, err := s.Token(ctx)
	if err != nil || !ok || token != "abc123" {
		t.Fatalf("unexpected token %q %v %v", token, ok, err)
	}

	info, ok, err := s.UserInfo(ctx)
	if err != nil || !ok {
		t.Fatalf("unexpected user info result %v %v", ok, err)
	}
	if info.ID != 7 || info.Username != "ana" || !info.IsStaff {
		t.Fatalf("unexpected user info %+v", info)
	}
	if string(info.Raw) != string(raw) {
		t.Fatalf("expected raw blob preserved, got %s", info.Raw)
	}
}

func TestSaveTokenAloneAndClear(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	if err := s.SaveToken(ctx, "tok"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if _, ok, _ := s.UserInfo(ctx); ok {
		t.Fatal("did not expect user info")
	}
	if err := s.SaveUserInfo(ctx, json.RawMessage(`{"id":1}`)); err != nil {
		t.Fatalf("save user info: %v", err)
	}
	if _, ok, _ := s.UserInfo(ctx); !ok {
		t.Fatal("expected user info")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Token(ctx); ok {
		t.Fatal("expected token removed")
	}
	if _, ok, _ := s.UserInfo(ctx); ok {
		t.Fatal("expected user info removed")
	}
}

func TestEmptyTokenCountsAsAbsent(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.SaveToken(context.Background(), ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, err := s.Token(context.Background()); ok || err != nil {
		t.Fatalf("expected empty token to be absent, got %v %v", ok, err)
	}
}

func TestUnreadableValueCountsAsAbsent(t *testing.T) {
	s, store := newTestSession(t)
	if err := store.Set(context.Background(), KeyAuthToken, []byte("plain-token-from-elsewhere")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := s.Token(context.Background()); ok || err != nil {
		t.Fatalf("expected unsealable token to be absent, got %v %v", ok, err)
	}
}

type failingStore struct{ memory.Store }

func (*failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk") }

func TestStoreErrorsPropagate(t *testing.T) {
	sealer, _ := auth.NewAEADSealer("secret", auth.Options{})
	s := New(&failingStore{}, sealer, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if _, _, err := s.Token(context.Background()); err == nil {
		t.Fatal("expected store error")
	}
}
