package storage

import (
	"context"
	"errors"
)

// Slot keys used by the attendance client.
const (
	KeyCacheSnapshot = "hris:cache:snapshot"
	KeySession       = "hris:session"
)

var ErrNotFound = errors.New("storage: key not found")

// SlotStorage persists small opaque values under well-known keys.
type SlotStorage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
