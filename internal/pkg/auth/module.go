package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/iowasensors/internal/config"
)

// Module provides the device credential sealer via fx.
var Module = fx.Provide(newSealer)

type sealerParams struct {
	fx.In

	Config *config.Config
}

func newSealer(p sealerParams) (Sealer, error) {
	return NewAEADSealer(p.Config.DeviceSecret, Options{})
}
