// Package refresher keeps the local mirror warm by re-reading every collection
// on a schedule, so the shop still has recent data when the network drops.
package refresher

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultRefreshSchedule = "0 */5 * * * *"
	DefaultReportSchedule  = "0 0 8 * * *"
	runTimeout             = 30 * time.Second
)

type Config struct {
	// Six-field cron expressions, seconds first.
	RefreshSchedule string
	ReportSchedule  string
	RunImmediately  bool
}

type Refresher struct {
	cron       *cron.Cron
	cfg        Config
	inventory  inventory.UseCase
	jobs       job.UseCase
	warranties warranty.UseCase
	sales      sale.UseCase
	logger     logger.ZapLogger
	now        func() time.Time
}

func New(cfg Config, inv inventory.UseCase, jobs job.UseCase, warranties warranty.UseCase, sales sale.UseCase, log logger.ZapLogger) *Refresher {
	if cfg.RefreshSchedule == "" {
		cfg.RefreshSchedule = DefaultRefreshSchedule
	}
	if cfg.ReportSchedule == "" {
		cfg.ReportSchedule = DefaultReportSchedule
	}
	return &Refresher{
		cron:       cron.New(cron.WithSeconds()),
		cfg:        cfg,
		inventory:  inv,
		jobs:       jobs,
		warranties: warranties,
		sales:      sales,
		logger:     log.With(zap.String("component", "refresher")),
		now:        time.Now,
	}
}

func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.cfg.RefreshSchedule, r.run(r.Refresh)); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", r.cfg.RefreshSchedule, err)
	}
	if _, err := r.cron.AddFunc(r.cfg.ReportSchedule, r.run(func(ctx context.Context) { r.Report(ctx) })); err != nil {
		return fmt.Errorf("schedule report %q: %w", r.cfg.ReportSchedule, err)
	}

	r.cron.Start()
	r.logger.Info("Refresh scheduler started",
		zap.String("refresh", r.cfg.RefreshSchedule),
		zap.String("report", r.cfg.ReportSchedule),
	)

	if r.cfg.RunImmediately {
		go r.run(r.Refresh)()
	}
	return nil
}

// Stop waits for running jobs to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Refresh scheduler stopped")
}

func (r *Refresher) run(fn func(ctx context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		fn(ctx)
	}
}

// Refresh reads each collection through its facade. A successful remote read
// overwrites the local copy as a side effect.
func (r *Refresher) Refresh(ctx context.Context) {
	start := r.now()
	items := len(r.inventory.GetAll(ctx))
	jobs := len(r.jobs.GetAll(ctx))
	warranties := len(r.warranties.GetAll(ctx))
	sales := len(r.sales.GetAll(ctx))

	r.logger.Debug("Collections refreshed",
		zap.Int("inventory", items),
		zap.Int("jobs", jobs),
		zap.Int("warranties", warranties),
		zap.Int("sales", sales),
		zap.Duration("took", r.now().Sub(start)),
	)
}

type Report struct {
	LowStock     int
	ExpiringSoon int
}

// Report logs the items that need restocking and the warranties about to lapse.
func (r *Refresher) Report(ctx context.Context) Report {
	low := r.inventory.ListLowStock(ctx)
	expiring := r.warranties.ListExpiringSoon(ctx, r.now())

	for _, i := range low {
		r.logger.Info("Low stock", zap.String("item_id", i.ID), zap.String("name", i.Name), zap.Int("quantity", i.Quantity), zap.Int("min_stock", i.MinStock))
	}
	for _, w := range expiring {
		r.logger.Info("Warranty expiring soon", zap.String("warranty_id", w.ID), zap.String("customer", w.CustomerName), zap.Time("end_date", w.EndDate))
	}
	return Report{LowStock: len(low), ExpiringSoon: len(expiring)}
}
