// Package idempotency guards checkout against duplicate submissions of the
// same client-generated key.
package idempotency

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyKey = errors.New("idempotency key is empty")

type Store interface {
	// Acquire claims key for ttl. It returns false when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release frees key so a failed attempt can be retried.
	Release(ctx context.Context, key string) error
	Close() error
}
