package dashboard

import (
	"context"
	"time"
)

type Summary struct {
	TotalItems       int     `json:"totalItems"`
	LowStockItems    int     `json:"lowStockItems"`
	PendingJobs      int     `json:"pendingJobs"`
	ActiveWarranties int     `json:"activeWarranties"`
	TodaySales       int     `json:"todaySales"`
	TodayRevenue     float64 `json:"todayRevenue"`
}

type UseCase interface {
	Summary(ctx context.Context, now time.Time) (Summary, error)
}
