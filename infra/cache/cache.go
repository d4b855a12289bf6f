// Package cache stores raw API response payloads so past queries can be
// inspected without re-spending API credits. Writes are best effort: the
// transport logs and continues when a Put fails.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when no payload is stored under the key.
var ErrMiss = errors.New("cache miss")

// Store persists raw response payloads by key.
type Store interface {
	Put(ctx context.Context, key string, payload []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Nop discards writes and always misses.
type Nop struct{}

func (Nop) Put(context.Context, string, []byte) error { return nil }

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
