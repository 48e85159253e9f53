package session

import "go.uber.org/fx"

// Module provides the device session.
var Module = fx.Provide(New)
