// Package storage composes a remote and a local backend for each entity
// collection. Reads and writes go to the remote database first; results are
// mirrored into the local store, which also serves every call the remote side
// cannot answer.
package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotSupported = errors.New("storage: operation not supported")

// Repository is one backend for a collection of T updated through patches of type P.
type Repository[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (*T, error)
	// Update returns (nil, nil) when no record has id.
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Collection is the facade over one entity collection. Its methods never fail.
type Collection[T any, P any] interface {
	GetAll(ctx context.Context) []T
	Add(ctx context.Context, item T) T
	// Update returns nil when the record exists nowhere.
	Update(ctx context.Context, id string, patch P) *T
	Delete(ctx context.Context, id string) bool
}

// NoPatch is the patch type of collections whose records are never edited.
type NoPatch struct{}

// Schema describes how the local backend identifies, stamps and patches records.
type Schema[T any, P any] struct {
	Key string
	ID  func(*T) string
	// Init assigns the identifier and creation stamps of a locally created record.
	Init func(item *T, id string, now time.Time)
	// Apply merges a patch and refreshes the update stamp. Nil for immutable records.
	Apply func(item *T, patch P, now time.Time)
}

// Touch returns now, or the instant just after prev when the clock has not moved
// past it, so update stamps always increase.
func Touch(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
