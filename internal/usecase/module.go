package usecase

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/adapter/backend"
	"github.com/polkiloo/iowasensors/internal/metrics"
	"github.com/polkiloo/iowasensors/internal/session"
)

// Module provides the view-models and use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		func(c backend.Client) OrdersBackend { return c },
		func(c backend.Client) AccountBackend { return c },
		func(c backend.Client) CheckoutBackend { return c },
		func(c backend.Client) CatalogBackend { return c },
		func(c backend.Client) SensorsBackend { return c },
		func(s *session.Session) TokenSource { return s },
		func(s *session.Session) SessionStore { return s },
	),
	fx.Provide(
		newOrderBoard,
		NewAccountUseCase,
		NewPaymentUseCase,
		NewCatalogUseCase,
		NewCartUseCase,
		NewSensorUseCase,
	),
)

type boardParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Client    OrdersBackend
	Tokens    TokenSource
	Logger    *slog.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

func newOrderBoard(p boardParams) *OrderBoard {
	board := NewOrderBoard(p.Ctx, p.Client, p.Tokens, p.Logger, p.Metrics)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			board.Close()
			return nil
		},
	})
	return board
}
