package metrics

import "go.uber.org/fx"

// Module provides process metrics.
var Module = fx.Provide(New)
