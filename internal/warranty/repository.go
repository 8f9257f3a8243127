package warranty

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
)

type Repository interface {
	storage.Repository[model.Warranty, model.WarrantyPatch]
}

var Schema = storage.Schema[model.Warranty, model.WarrantyPatch]{
	Key: localstore.KeyWarranties,
	ID:  func(w *model.Warranty) string { return w.ID },
	Init: func(w *model.Warranty, id string, now time.Time) {
		w.ID = id
		w.CreatedAt = now
		w.UpdatedAt = now
	},
	Apply: func(w *model.Warranty, p model.WarrantyPatch, now time.Time) {
		p.Apply(w)
		w.UpdatedAt = storage.Touch(w.UpdatedAt, now)
	},
}
