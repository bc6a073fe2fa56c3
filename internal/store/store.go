package store

import (
	"context"
	"errors"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrNotFound    = errors.New("key not found")
	ErrPersistence = errors.New("persistence failure")
	ErrConflict    = errors.New("concurrent modification detected")
)

// Tx is the view of the store inside an atomic update. Reads observe writes
// made earlier in the same transaction.
type Tx interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// KeyValueStore defines the contract that every backend (SQLite, Redis, memory) must satisfy.
// Each key is an independent record; values are opaque bytes (JSON in practice).
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// Update runs fn as one read-modify-write transaction. If fn returns an
	// error nothing it wrote is kept. Optimistic backends may invoke fn more
	// than once and return ErrConflict only once retries are exhausted.
	Update(ctx context.Context, fn func(tx Tx) error) error

	Ping(ctx context.Context) error
	Close()
}
