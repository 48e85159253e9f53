package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/config"
	"github.com/polkiloo/iowasensors/internal/domain/repository"
	"github.com/polkiloo/iowasensors/internal/storage/memory"
	"github.com/polkiloo/iowasensors/internal/storage/postgres"
)

// Module provides the device key-value store. PostgreSQL is used when a DSN is
// configured, otherwise values live in memory for the lifetime of the process.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) (repository.KeyValueStore, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Warn("DATABASE_URI is empty, device storage is not persisted")
		return memory.New(), nil
	}

	st, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := st.HealthCheck(ctx); err != nil {
				return fmt.Errorf("device storage unreachable: %w", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			st.Close()
			return nil
		},
	})
	return st, nil
}
