// Package tokenstore defines the durable key-value slot used to persist credentials.
package tokenstore

import (
	"context"
)

// Store defines the interface for a durable key-value slot.
// Values survive process restarts.
type Store interface {
	// Get retrieves a value by key.
	// Returns nil (not an error) if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store.
	Close() error
}
