package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"go.uber.org/zap"
)

type saleUseCase struct {
	repo      storage.Collection[model.DailySale, storage.NoPatch]
	publisher event.Publisher
	logger    logger.ZapLogger
}

func NewSaleUseCase(repo storage.Collection[model.DailySale, storage.NoPatch], publisher event.Publisher, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *saleUseCase) GetAll(ctx context.Context) []model.DailySale {
	return uc.repo.GetAll(ctx)
}

func (uc *saleUseCase) FindByJob(ctx context.Context, jobID string) *model.DailySale {
	for _, s := range uc.repo.GetAll(ctx) {
		if s.JobID != nil && *s.JobID == jobID {
			return &s
		}
	}
	return nil
}

func (uc *saleUseCase) Add(ctx context.Context, s model.DailySale) model.DailySale {
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	created := uc.repo.Add(ctx, s)

	ev, err := event.New(event.TypeSaleRecorded, event.SaleRecordedPayload{
		SaleID:        created.ID,
		Type:          string(created.Type),
		Amount:        created.Amount,
		PaymentMethod: string(created.PaymentMethod),
		JobID:         created.JobID,
	})
	if err == nil {
		err = uc.publisher.Publish(ctx, created.ID, ev)
	}
	if err != nil {
		uc.logger.Warn("Failed to publish sale event", zap.String("sale_id", created.ID), zap.Error(err))
	}
	return created
}

func (uc *saleUseCase) Delete(ctx context.Context, id string) bool {
	return uc.repo.Delete(ctx, id)
}

func (uc *saleUseCase) GetByDate(ctx context.Context, date time.Time) []model.DailySale {
	out := []model.DailySale{}
	for _, s := range uc.repo.GetAll(ctx) {
		if model.SameDay(s.Date, date) {
			out = append(out, s)
		}
	}
	return out
}

func (uc *saleUseCase) DailySummary(ctx context.Context, date time.Time) model.DailySummary {
	return model.Summarize(model.DayKey(date), uc.GetByDate(ctx, date))
}

func (uc *saleUseCase) Report(ctx context.Context, period model.ReportPeriod, now time.Time) (model.SalesReport, error) {
	return model.BuildReport(period, uc.repo.GetAll(ctx), now)
}
