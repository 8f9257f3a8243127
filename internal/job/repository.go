package job

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
)

type Repository interface {
	storage.Repository[model.Job, model.JobPatch]
}

var Schema = storage.Schema[model.Job, model.JobPatch]{
	Key: localstore.KeyJobs,
	ID:  func(j *model.Job) string { return j.ID },
	Init: func(j *model.Job, id string, now time.Time) {
		j.ID = id
		j.CreatedAt = now
		j.UpdatedAt = now
	},
	Apply: func(j *model.Job, p model.JobPatch, now time.Time) {
		p.Apply(j)
		j.UpdatedAt = storage.Touch(j.UpdatedAt, now)
	},
}
