package storage

import "context"

// Store is the key/value abstraction behind the storefront's persisted state.
// Durable implementations back the cart; Memory plays the role of
// session-scoped storage for the last order and cached notifier settings.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
