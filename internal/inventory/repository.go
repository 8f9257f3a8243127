package inventory

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
)

// Repository is the remote inventory backend.
type Repository interface {
	storage.Repository[model.InventoryItem, model.InventoryPatch]
}

var Schema = storage.Schema[model.InventoryItem, model.InventoryPatch]{
	Key: localstore.KeyInventory,
	ID:  func(i *model.InventoryItem) string { return i.ID },
	Init: func(i *model.InventoryItem, id string, now time.Time) {
		i.ID = id
		i.CreatedAt = now
		i.UpdatedAt = now
	},
	Apply: func(i *model.InventoryItem, p model.InventoryPatch, now time.Time) {
		p.Apply(i)
		i.UpdatedAt = storage.Touch(i.UpdatedAt, now)
	},
}
