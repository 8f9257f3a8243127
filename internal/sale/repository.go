package sale

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
)

type Repository interface {
	storage.Repository[model.DailySale, storage.NoPatch]
}

// Schema has no Apply: recorded sales are never edited.
var Schema = storage.Schema[model.DailySale, storage.NoPatch]{
	Key: localstore.KeySales,
	ID:  func(s *model.DailySale) string { return s.ID },
	Init: func(s *model.DailySale, id string, now time.Time) {
		s.ID = id
		s.CreatedAt = now
	},
}
