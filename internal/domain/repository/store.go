package repository

import "context"

// KeyValueStore persists small opaque values under fixed keys, the way a
// device-local storage does. Get reports ErrNotFound for absent keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all values atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	// HealthCheck reports whether the backing storage is reachable.
	HealthCheck(ctx context.Context) error
}
