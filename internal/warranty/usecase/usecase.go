package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"go.uber.org/zap"
)

type warrantyUseCase struct {
	repo      storage.Collection[model.Warranty, model.WarrantyPatch]
	publisher event.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewWarrantyUseCase(repo storage.Collection[model.Warranty, model.WarrantyPatch], publisher event.Publisher, log logger.ZapLogger) warranty.UseCase {
	return &warrantyUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *warrantyUseCase) GetAll(ctx context.Context) []model.Warranty {
	return uc.repo.GetAll(ctx)
}

func (uc *warrantyUseCase) get(ctx context.Context, id string) *model.Warranty {
	for _, w := range uc.repo.GetAll(ctx) {
		if w.ID == id {
			return &w
		}
	}
	return nil
}

func (uc *warrantyUseCase) FindByJob(ctx context.Context, jobID string) *model.Warranty {
	for _, w := range uc.repo.GetAll(ctx) {
		if w.JobID == jobID {
			return &w
		}
	}
	return nil
}

func (uc *warrantyUseCase) Add(ctx context.Context, w model.Warranty) model.Warranty {
	created := uc.repo.Add(ctx, w)
	uc.logger.Info("Warranty issued",
		zap.String("id", created.ID),
		zap.String("job_id", created.JobID),
		zap.Time("end_date", created.EndDate),
	)
	return created
}

func (uc *warrantyUseCase) Update(ctx context.Context, id string, patch model.WarrantyPatch) *model.Warranty {
	return uc.repo.Update(ctx, id, patch)
}

func (uc *warrantyUseCase) ProcessClaim(ctx context.Context, id, reason string) (*model.Warranty, error) {
	current := uc.get(ctx, id)
	if current == nil {
		return nil, warranty.ErrWarrantyNotFound
	}
	if current.IsClaimed() {
		return nil, warranty.ErrAlreadyClaimed
	}

	claimDate := uc.now()
	inactive := false
	updated := uc.repo.Update(ctx, id, model.WarrantyPatch{
		ClaimDate:   &claimDate,
		ClaimReason: &reason,
		IsActive:    &inactive,
	})
	if updated == nil {
		return nil, warranty.ErrWarrantyNotFound
	}

	ev, err := event.New(event.TypeWarrantyClaimed, event.WarrantyClaimedPayload{
		WarrantyID: updated.ID,
		JobID:      updated.JobID,
		Reason:     reason,
	})
	if err == nil {
		err = uc.publisher.Publish(ctx, updated.ID, ev)
	}
	if err != nil {
		uc.logger.Warn("Failed to publish claim event", zap.String("warranty_id", updated.ID), zap.Error(err))
	}

	uc.logger.Info("Warranty claim processed", zap.String("id", id), zap.String("reason", reason))
	return updated, nil
}

func (uc *warrantyUseCase) ListExpiringSoon(ctx context.Context, now time.Time) []model.Warranty {
	out := []model.Warranty{}
	for _, w := range uc.repo.GetAll(ctx) {
		if w.Status(now) == model.WarrantyStatusExpiringSoon {
			out = append(out, w)
		}
	}
	return out
}
