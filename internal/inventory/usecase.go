package inventory

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-repair-service/internal/model"
)

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type UseCase interface {
	GetAll(ctx context.Context) []model.InventoryItem
	Get(ctx context.Context, id string) *model.InventoryItem
	Add(ctx context.Context, item model.InventoryItem) model.InventoryItem
	Update(ctx context.Context, id string, patch model.InventoryPatch) *model.InventoryItem
	Delete(ctx context.Context, id string) bool
	ListLowStock(ctx context.Context) []model.InventoryItem
	// AdjustStock changes the quantity by delta and refuses to go below zero.
	AdjustStock(ctx context.Context, id string, delta int, reason string) (*model.InventoryItem, error)
}
