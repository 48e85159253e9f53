package backend

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/config"
	"github.com/polkiloo/iowasensors/internal/metrics"
)

// Module exposes the store backend client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.BackendURL, p.Config.HTTPTimeout, p.Logger, p.Metrics)
}
