package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed medium.
var ErrClosed = errors.New("kv: medium closed")

// Medium is a persistent string key-value store.
//
// Get reports found=false with a nil error when the key has no value.
// Delete of an absent key is not an error.
type Medium interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Revisioner is implemented by media that track a per-key write counter.
// Revision returns 0 for keys that have never been written.
type Revisioner interface {
	Revision(ctx context.Context, key string) (int64, error)
}
