package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/config"
	"github.com/polkiloo/iowasensors/internal/metrics"
	"github.com/polkiloo/iowasensors/internal/server/http/handlers"
	"github.com/polkiloo/iowasensors/internal/usecase"
	"github.com/polkiloo/iowasensors/internal/worker"
)

// Module wires the facade, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewCompanionFacade,
		func(f *CompanionFacade) handlers.CompanionFacade { return f },
		newHTTPServer,
		newOrderRefresher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: p.Config.HTTPTimeout,
	}
}

type workerParams struct {
	fx.In

	Board   *usecase.OrderBoard
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newOrderRefresher(p workerParams) *worker.OrderRefresher {
	return worker.NewOrderRefresher(
		p.Board,
		p.Config.OrderRefreshInterval,
		p.Config.OrderMaxPages,
		p.Logger,
		p.Metrics,
	)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.OrderRefresher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting iowasensors console",
				slog.String("addr", p.Server.Addr),
				slog.String("backend", p.Config.BackendURL),
			)
			p.Worker.Start(p.Ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("console server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("iowasensors console stopped")
			return nil
		},
	})
}
