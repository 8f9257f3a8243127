// Package localstore persists whole collections of records as JSON documents,
// one document per collection key. It is the on-device side of the storage
// layer and is only correct for a single writer per key.
package localstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"go.uber.org/zap"
)

const (
	KeyInventory  = "taller_inventory"
	KeyJobs       = "taller_jobs"
	KeyWarranties = "taller_warranties"
	KeySales      = "taller_sales"
)

var ErrNotFound = errors.New("localstore: key not found")

// Store is a key-value area holding serialized collections.
type Store interface {
	// Load returns ErrNotFound when nothing was ever saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Read returns the collection stored under key. A nil store, a missing key or a
// corrupt document all yield an empty slice; failures are logged, never returned.
func Read[T any](ctx context.Context, s Store, log logger.ZapLogger, key string) []T {
	if s == nil {
		return []T{}
	}
	data, err := s.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to read local collection", zap.String("key", key), zap.Error(err))
		}
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Error("corrupt local collection", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Write overwrites the collection stored under key. Failures are logged and the
// write is dropped.
func Write[T any](ctx context.Context, s Store, log logger.ZapLogger, key string, items []T) {
	if s == nil {
		return
	}
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		log.Error("failed to encode local collection", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.Save(ctx, key, data); err != nil {
		log.Error("failed to save local collection", zap.String("key", key), zap.Error(err))
	}
}
