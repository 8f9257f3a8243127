package storage

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"go.uber.org/zap"
)

var _ Collection[struct{}, NoPatch] = (*FallbackRepository[struct{}, NoPatch])(nil)

type Config struct {
	// TrustEmptyRemote makes an empty remote list authoritative: the local
	// mirror is cleared instead of being served.
	TrustEmptyRemote bool
}

// FallbackRepository tries the remote backend, mirrors its results locally and
// falls back to the local backend on failure. A nil remote runs local-only.
// Its methods never fail; problems are logged.
type FallbackRepository[T any, P any] struct {
	remote Repository[T, P]
	local  *LocalRepository[T, P]
	log    logger.ZapLogger
	cfg    Config
}

func NewFallbackRepository[T any, P any](remote Repository[T, P], local *LocalRepository[T, P], log logger.ZapLogger, cfg Config) *FallbackRepository[T, P] {
	return &FallbackRepository[T, P]{
		remote: remote,
		local:  local,
		log:    log.With(zap.String("collection", local.Key())),
		cfg:    cfg,
	}
}

func (r *FallbackRepository[T, P]) RemoteEnabled() bool {
	return r.remote != nil
}

func (r *FallbackRepository[T, P]) GetAll(ctx context.Context) []T {
	if r.remote != nil {
		items, err := r.remote.List(ctx)
		switch {
		case err != nil:
			r.log.Warn("Remote list failed, serving local copy", zap.Error(err))
		case len(items) > 0:
			r.local.ReplaceAll(ctx, items)
			return items
		case r.cfg.TrustEmptyRemote:
			r.local.ReplaceAll(ctx, []T{})
			return []T{}
		default:
			r.log.Warn("Remote list empty, serving local copy; set SYNC_TRUST_EMPTY_REMOTE if the remote is authoritative")
		}
	}

	items, _ := r.local.List(ctx)
	return items
}

func (r *FallbackRepository[T, P]) Add(ctx context.Context, item T) T {
	if r.remote != nil {
		created, err := r.remote.Create(ctx, item)
		if err == nil && created != nil {
			r.local.Upsert(ctx, *created)
			return *created
		}
		r.log.Warn("Remote create failed, saving locally", zap.Error(err))
	}

	created, _ := r.local.Create(ctx, item)
	return *created
}

// Update returns nil when the record exists in neither backend.
func (r *FallbackRepository[T, P]) Update(ctx context.Context, id string, patch P) *T {
	if r.remote != nil {
		updated, err := r.remote.Update(ctx, id, patch)
		switch {
		case err != nil:
			r.log.Warn("Remote update failed, updating locally", zap.String("id", id), zap.Error(err))
		case updated == nil:
			r.log.Debug("Remote record not found, updating locally", zap.String("id", id))
		default:
			r.local.Upsert(ctx, *updated)
			return updated
		}
	}

	updated, err := r.local.Update(ctx, id, patch)
	if err != nil {
		r.log.Error("Local update failed", zap.String("id", id), zap.Error(err))
		return nil
	}
	return updated
}

// Delete always reports success once the local copy is gone.
func (r *FallbackRepository[T, P]) Delete(ctx context.Context, id string) bool {
	if r.remote != nil {
		if _, err := r.remote.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotSupported) {
			r.log.Warn("Remote delete failed", zap.String("id", id), zap.Error(err))
		}
	}

	r.local.Delete(ctx, id)
	return true
}
