package chat

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/config"
	"github.com/polkiloo/iowasensors/internal/metrics"
	"github.com/polkiloo/iowasensors/internal/session"
)

// Module provides the chat view and its socket dialer.
var Module = fx.Options(
	fx.Provide(
		newDialer,
		func(s *session.Session) TokenSource { return s },
		newView,
	),
)

func newDialer(cfg *config.Config) Dialer {
	return &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.HTTPTimeout,
	}
}

type viewParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Dialer    Dialer
	Tokens    TokenSource
	Logger    *slog.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

func newView(p viewParams) *View {
	view := NewView(p.Ctx, p.Dialer, p.Tokens, Options{
		Host:              p.Config.ChatHost,
		Port:              p.Config.ChatPort,
		ReconnectAttempts: p.Config.ChatReconnectAttempts,
		ReconnectDelay:    p.Config.ChatReconnectDelay,
		ReconnectMaxDelay: p.Config.ChatReconnectMaxDelay,
	}, p.Logger, p.Metrics)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			view.Close()
			return nil
		},
	})
	return view
}
