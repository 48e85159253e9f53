package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/adapter/backend"
	"github.com/polkiloo/iowasensors/internal/app"
	"github.com/polkiloo/iowasensors/internal/chat"
	"github.com/polkiloo/iowasensors/internal/config"
	"github.com/polkiloo/iowasensors/internal/logger"
	"github.com/polkiloo/iowasensors/internal/metrics"
	"github.com/polkiloo/iowasensors/internal/pkg/auth"
	"github.com/polkiloo/iowasensors/internal/server/http/router"
	"github.com/polkiloo/iowasensors/internal/session"
	"github.com/polkiloo/iowasensors/internal/storage"
	"github.com/polkiloo/iowasensors/internal/usecase"
)

// Module assembles the companion process. opts are appended last so callers
// can fx.Replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		session.Module,
		backend.Module,
		usecase.Module,
		chat.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
