package storage

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/google/uuid"
)

var _ Repository[struct{}, NoPatch] = (*LocalRepository[struct{}, NoPatch])(nil)

// LocalRepository serves one collection from the local store. Every
// read-modify-write cycle holds the collection mutex, so build exactly one
// LocalRepository per collection key.
type LocalRepository[T any, P any] struct {
	store  localstore.Store
	schema Schema[T, P]
	log    logger.ZapLogger

	NewID func() string
	Now   func() time.Time

	mu sync.Mutex
}

func NewLocalRepository[T any, P any](store localstore.Store, schema Schema[T, P], log logger.ZapLogger) *LocalRepository[T, P] {
	return &LocalRepository[T, P]{
		store:  store,
		schema: schema,
		log:    log,
		NewID:  func() string { return uuid.New().String() },
		Now:    time.Now,
	}
}

func (r *LocalRepository[T, P]) Key() string {
	return r.schema.Key
}

func (r *LocalRepository[T, P]) List(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(ctx), nil
}

func (r *LocalRepository[T, P]) Create(ctx context.Context, item T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schema.Init(&item, r.NewID(), r.Now())
	items := append(r.read(ctx), item)
	r.write(ctx, items)
	return &item, nil
}

func (r *LocalRepository[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	if r.schema.Apply == nil {
		return nil, ErrNotSupported
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.read(ctx)
	for i := range items {
		if r.schema.ID(&items[i]) != id {
			continue
		}
		r.schema.Apply(&items[i], patch, r.Now())
		r.write(ctx, items)
		updated := items[i]
		return &updated, nil
	}
	return nil, nil
}

// Delete removes the record if present. Deleting an unknown id is not an error
// and leaves the collection untouched.
func (r *LocalRepository[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.read(ctx)
	kept := items[:0]
	for i := range items {
		if r.schema.ID(&items[i]) != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) != len(items) {
		r.write(ctx, kept)
	}
	return true, nil
}

// ReplaceAll overwrites the collection with a remote snapshot.
func (r *LocalRepository[T, P]) ReplaceAll(ctx context.Context, items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.write(ctx, items)
}

// Upsert replaces the record that has the same id, or appends it.
func (r *LocalRepository[T, P]) Upsert(ctx context.Context, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.schema.ID(&item)
	items := r.read(ctx)
	for i := range items {
		if r.schema.ID(&items[i]) == id {
			items[i] = item
			r.write(ctx, items)
			return
		}
	}
	r.write(ctx, append(items, item))
}

func (r *LocalRepository[T, P]) read(ctx context.Context) []T {
	return localstore.Read[T](ctx, r.store, r.log, r.schema.Key)
}

func (r *LocalRepository[T, P]) write(ctx context.Context, items []T) {
	localstore.Write(ctx, r.store, r.log, r.schema.Key, items)
}
