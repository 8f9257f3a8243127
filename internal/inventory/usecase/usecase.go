package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/lock"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   storage.Collection[model.InventoryItem, model.InventoryPatch]
	locker lock.Locker
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo storage.Collection[model.InventoryItem, model.InventoryPatch], locker lock.Locker, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetAll(ctx context.Context) []model.InventoryItem {
	return uc.repo.GetAll(ctx)
}

func (uc *inventoryUseCase) Get(ctx context.Context, id string) *model.InventoryItem {
	for _, item := range uc.repo.GetAll(ctx) {
		if item.ID == id {
			return &item
		}
	}
	return nil
}

func (uc *inventoryUseCase) Add(ctx context.Context, item model.InventoryItem) model.InventoryItem {
	created := uc.repo.Add(ctx, item)
	uc.logger.Info("Inventory item added", zap.String("id", created.ID), zap.String("name", created.Name))
	return created
}

func (uc *inventoryUseCase) Update(ctx context.Context, id string, patch model.InventoryPatch) *model.InventoryItem {
	updated := uc.repo.Update(ctx, id, patch)
	if updated == nil {
		uc.logger.Warn("Inventory item not found for update", zap.String("id", id))
	}
	return updated
}

func (uc *inventoryUseCase) Delete(ctx context.Context, id string) bool {
	return uc.repo.Delete(ctx, id)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context) []model.InventoryItem {
	low := []model.InventoryItem{}
	for _, item := range uc.repo.GetAll(ctx) {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, id string, delta int, reason string) (*model.InventoryItem, error) {
	release, err := uc.locker.Acquire(ctx, "lock:inventory:"+id)
	if err != nil {
		uc.logger.Error("Failed to acquire inventory lock", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	defer release()

	item := uc.Get(ctx, id)
	if item == nil {
		return nil, inventory.ErrItemNotFound
	}

	before := item.Quantity
	after := before + delta
	if after < 0 {
		return nil, fmt.Errorf("%w: %s has %d, need %d", inventory.ErrInsufficientStock, item.Name, before, -delta)
	}

	updated := uc.repo.Update(ctx, id, model.InventoryPatch{Quantity: &after})
	if updated == nil {
		return nil, inventory.ErrItemNotFound
	}

	uc.logger.Info("Stock adjusted",
		zap.String("id", id),
		zap.Int("quantity_before", before),
		zap.Int("quantity_after", updated.Quantity),
		zap.String("reason", reason),
	)
	return updated, nil
}
