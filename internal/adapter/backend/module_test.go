package backend

import (
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/iowasensors/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{BackendURL: "http://example.com", HTTPTimeout: 0}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
