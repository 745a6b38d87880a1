// Package metadata is the client's durable key-value store: a single SQLite
// table of string keys and opaque byte values.
package metadata

import (
	"context"
)

// Repository stores small named blobs. Get returns (nil, nil) for a missing
// key; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
