// Package metadata is the durable key/value store behind the session and
// theme stores. Values are opaque bytes; callers own their encoding.
package metadata

import (
	"context"
)

// Repository is a small key/value store.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error. Keys are returned sorted. Clear reports how many entries it
// removed.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) (int64, error)
}
