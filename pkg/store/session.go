// Package store provides the per-session key-value storage that backs the
// connector cache. The host supplies the real backend; a Redis
// implementation and an in-memory one for tests live here.
package store

import "context"

// SessionStore is an opaque per-session KV store. Keys never leak across
// sessions; clearing a session drops every key it holds. Set must replace
// the whole value atomically.
type SessionStore interface {
	Get(ctx context.Context, session, key string) ([]byte, bool, error)
	Set(ctx context.Context, session, key string, value []byte) error
	Delete(ctx context.Context, session string, keys ...string) error
	Clear(ctx context.Context, session string) error
}
