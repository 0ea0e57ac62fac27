// Package storage provides the durable client-storage abstraction the
// session store and audit recorder persist into. It plays the role the
// browser's localStorage plays for the dashboard: a small keyed document
// store with no schema and no transactions.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
