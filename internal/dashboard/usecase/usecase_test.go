package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeInventory struct {
	inventory.UseCase
	items []model.InventoryItem
}

func (f fakeInventory) GetAll(context.Context) []model.InventoryItem { return f.items }

type fakeJobs struct {
	job.UseCase
	jobs []model.Job
}

func (f fakeJobs) GetAll(context.Context) []model.Job { return f.jobs }

type fakeWarranties struct {
	warranty.UseCase
	ws []model.Warranty
}

func (f fakeWarranties) GetAll(context.Context) []model.Warranty { return f.ws }

type fakeSales struct {
	sale.UseCase
	sales []model.DailySale
}

func (f fakeSales) GetByDate(_ context.Context, date time.Time) []model.DailySale {
	out := []model.DailySale{}
	for _, s := range f.sales {
		if model.SameDay(s.Date, date) {
			out = append(out, s)
		}
	}
	return out
}

func TestDashboardSummary(t *testing.T) {
	claimed := now.AddDate(0, 0, -1)
	uc := NewDashboardUseCase(
		fakeInventory{items: []model.InventoryItem{
			{Quantity: 0, MinStock: 1},
			{Quantity: 5, MinStock: 1},
			{Quantity: 2, MinStock: 2},
		}},
		fakeJobs{jobs: []model.Job{
			{Status: model.JobStatusPending},
			{Status: model.JobStatusInProgress},
			{Status: model.JobStatusDelivered},
		}},
		fakeWarranties{ws: []model.Warranty{
			{IsActive: true, EndDate: now.AddDate(0, 0, 20)},
			{IsActive: true, EndDate: now.AddDate(0, 0, 3)},
			{IsActive: true, EndDate: now.AddDate(0, 0, -1)},
			{IsActive: false, EndDate: now.AddDate(0, 0, 10), ClaimDate: &claimed},
		}},
		fakeSales{sales: []model.DailySale{
			{Date: now, Amount: 30},
			{Date: now.Add(-time.Hour), Amount: 20},
			{Date: now.AddDate(0, 0, -1), Amount: 99},
		}},
	)

	s, err := uc.Summary(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 2, s.LowStockItems)
	assert.Equal(t, 2, s.PendingJobs)
	assert.Equal(t, 2, s.ActiveWarranties)
	assert.Equal(t, 2, s.TodaySales)
	assert.Equal(t, 50.0, s.TodayRevenue)
}

func TestDashboardSummary_CancelledContext(t *testing.T) {
	uc := NewDashboardUseCase(fakeInventory{}, fakeJobs{}, fakeWarranties{}, fakeSales{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Summary(ctx, now)
	assert.ErrorIs(t, err, context.Canceled)
}

type cancellingJobs struct {
	job.UseCase
	cancel context.CancelFunc
}

func (f cancellingJobs) GetAll(context.Context) []model.Job {
	f.cancel()
	return []model.Job{{Status: model.JobStatusPending}}
}

func TestDashboardSummary_CancelledDuringFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := NewDashboardUseCase(fakeInventory{}, cancellingJobs{cancel: cancel}, fakeWarranties{}, fakeSales{})

	_, err := uc.Summary(ctx, now)
	assert.ErrorIs(t, err, context.Canceled)
}
