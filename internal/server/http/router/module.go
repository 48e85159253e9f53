package router

import "go.uber.org/fx"

// Module registers console router construction for fx runtime.
var Module = fx.Provide(Setup)
