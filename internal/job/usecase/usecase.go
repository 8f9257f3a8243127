package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"go.uber.org/zap"
)

// Describer renders the description of the sale recorded for a finished job.
type Describer interface {
	T(lang, messageID string, data map[string]any) string
}

type jobUseCase struct {
	repo       storage.Collection[model.Job, model.JobPatch]
	inventory  inventory.UseCase
	sales      sale.UseCase
	warranties warranty.UseCase
	publisher  event.Publisher
	describer  Describer
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewJobUseCase(
	repo storage.Collection[model.Job, model.JobPatch],
	inv inventory.UseCase,
	sales sale.UseCase,
	warranties warranty.UseCase,
	publisher event.Publisher,
	describer Describer,
	log logger.ZapLogger,
) job.UseCase {
	return &jobUseCase{
		repo:       repo,
		inventory:  inv,
		sales:      sales,
		warranties: warranties,
		publisher:  publisher,
		describer:  describer,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *jobUseCase) GetAll(ctx context.Context) []model.Job {
	return uc.repo.GetAll(ctx)
}

func (uc *jobUseCase) Get(ctx context.Context, id string) *model.Job {
	for _, j := range uc.repo.GetAll(ctx) {
		if j.ID == id {
			return &j
		}
	}
	return nil
}

func (uc *jobUseCase) Add(ctx context.Context, j model.Job) model.Job {
	if j.Status == "" {
		j.Status = model.JobStatusPending
	}
	if j.StartDate.IsZero() {
		j.StartDate = uc.now()
	}
	if j.PartsUsed == nil {
		j.PartsUsed = []model.PartUsed{}
	}
	created := uc.repo.Add(ctx, j)
	uc.logger.Info("Job created", zap.String("id", created.ID), zap.String("customer", created.CustomerName))
	return created
}

// Update applies a partial edit. A patch that finishes the job goes through
// Save so the completion side effects run.
func (uc *jobUseCase) Update(ctx context.Context, id string, patch model.JobPatch) *model.Job {
	if patch.Status != nil && patch.Status.IsFinished() {
		prev := uc.Get(ctx, id)
		if prev == nil {
			uc.logger.Warn("Job not found for update", zap.String("id", id))
			return nil
		}
		merged := *prev
		patch.Apply(&merged)
		res := uc.Save(ctx, job.SaveInput{Job: merged})
		return &res.Job
	}

	updated := uc.repo.Update(ctx, id, patch)
	if updated == nil {
		uc.logger.Warn("Job not found for update", zap.String("id", id))
	}
	return updated
}

func (uc *jobUseCase) Delete(ctx context.Context, id string) bool {
	return uc.repo.Delete(ctx, id)
}

func (uc *jobUseCase) Counts(ctx context.Context) map[model.JobStatus]int {
	counts := map[model.JobStatus]int{
		model.JobStatusPending:    0,
		model.JobStatusInProgress: 0,
		model.JobStatusCompleted:  0,
		model.JobStatusDelivered:  0,
	}
	for _, j := range uc.repo.GetAll(ctx) {
		counts[j.Status]++
	}
	return counts
}

