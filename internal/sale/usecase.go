package sale

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/model"
)

type UseCase interface {
	GetAll(ctx context.Context) []model.DailySale
	FindByJob(ctx context.Context, jobID string) *model.DailySale
	Add(ctx context.Context, s model.DailySale) model.DailySale
	Delete(ctx context.Context, id string) bool
	// GetByDate returns the sales whose calendar day (YYYY-MM-DD) matches date's.
	GetByDate(ctx context.Context, date time.Time) []model.DailySale
	DailySummary(ctx context.Context, date time.Time) model.DailySummary
	Report(ctx context.Context, period model.ReportPeriod, now time.Time) (model.SalesReport, error)
}
