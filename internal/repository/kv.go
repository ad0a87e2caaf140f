package repository

import "context"

// KeyValueRepository is the durable string key-value storage the client keeps
// on disk (the equivalent of a browser's local storage).
type KeyValueRepository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
