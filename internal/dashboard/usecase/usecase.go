package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/dashboard"
	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"golang.org/x/sync/errgroup"
)

type dashboardUseCase struct {
	inventory  inventory.UseCase
	jobs       job.UseCase
	warranties warranty.UseCase
	sales      sale.UseCase
}

func NewDashboardUseCase(inv inventory.UseCase, jobs job.UseCase, warranties warranty.UseCase, sales sale.UseCase) dashboard.UseCase {
	return &dashboardUseCase{
		inventory:  inv,
		jobs:       jobs,
		warranties: warranties,
		sales:      sales,
	}
}

// Summary loads the four collections concurrently. Each goroutine writes only
// its own slice. A context cancelled during the fetch aborts the summary.
func (uc *dashboardUseCase) Summary(ctx context.Context, now time.Time) (dashboard.Summary, error) {
	var (
		items      []model.InventoryItem
		jobs       []model.Job
		warranties []model.Warranty
		sales      []model.DailySale
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fetch(gctx, func() { items = uc.inventory.GetAll(gctx) })
	})
	g.Go(func() error {
		return fetch(gctx, func() { jobs = uc.jobs.GetAll(gctx) })
	})
	g.Go(func() error {
		return fetch(gctx, func() { warranties = uc.warranties.GetAll(gctx) })
	})
	g.Go(func() error {
		return fetch(gctx, func() { sales = uc.sales.GetByDate(gctx, now) })
	})
	if err := g.Wait(); err != nil {
		return dashboard.Summary{}, err
	}

	var s dashboard.Summary
	s.TotalItems = len(items)
	for _, i := range items {
		if i.IsLowStock() {
			s.LowStockItems++
		}
	}
	for _, j := range jobs {
		if j.Status == model.JobStatusPending || j.Status == model.JobStatusInProgress {
			s.PendingJobs++
		}
	}
	for _, w := range warranties {
		switch w.Status(now) {
		case model.WarrantyStatusActive, model.WarrantyStatusExpiringSoon:
			s.ActiveWarranties++
		}
	}
	s.TodaySales = len(sales)
	for _, sl := range sales {
		s.TodayRevenue += sl.Amount
	}
	return s, nil
}

func fetch(ctx context.Context, load func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	load()
	return ctx.Err()
}
