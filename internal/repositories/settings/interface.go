// Package settings stores user preferences (API key, model) in a key/value
// table next to the wine records.
package settings

import "context"

// Repository is the raw key/value store.
type Repository interface {
	// Get returns ("", false, nil) when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
