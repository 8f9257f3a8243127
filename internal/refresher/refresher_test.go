package refresher

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventory struct {
	inventory.UseCase
	calls atomic.Int32
	low   []model.InventoryItem
}

func (f *fakeInventory) GetAll(context.Context) []model.InventoryItem {
	f.calls.Add(1)
	return []model.InventoryItem{{ID: "a"}}
}

func (f *fakeInventory) ListLowStock(context.Context) []model.InventoryItem { return f.low }

type fakeJobs struct {
	job.UseCase
	calls atomic.Int32
}

func (f *fakeJobs) GetAll(context.Context) []model.Job {
	f.calls.Add(1)
	return nil
}

type fakeWarranties struct {
	warranty.UseCase
	calls    atomic.Int32
	expiring []model.Warranty
	at       time.Time
}

func (f *fakeWarranties) GetAll(context.Context) []model.Warranty {
	f.calls.Add(1)
	return nil
}

func (f *fakeWarranties) ListExpiringSoon(_ context.Context, now time.Time) []model.Warranty {
	f.at = now
	return f.expiring
}

type fakeSales struct {
	sale.UseCase
	calls atomic.Int32
}

func (f *fakeSales) GetAll(context.Context) []model.DailySale {
	f.calls.Add(1)
	return nil
}

func TestRefresh_ReadsEveryCollection(t *testing.T) {
	inv, jobs, ws, sales := &fakeInventory{}, &fakeJobs{}, &fakeWarranties{}, &fakeSales{}
	r := New(Config{}, inv, jobs, ws, sales, logger.NewNop())

	r.Refresh(context.Background())

	assert.EqualValues(t, 1, inv.calls.Load())
	assert.EqualValues(t, 1, jobs.calls.Load())
	assert.EqualValues(t, 1, ws.calls.Load())
	assert.EqualValues(t, 1, sales.calls.Load())
}

func TestReport(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	inv := &fakeInventory{low: []model.InventoryItem{{ID: "a"}, {ID: "b"}}}
	ws := &fakeWarranties{expiring: []model.Warranty{{ID: "w"}}}
	r := New(Config{}, inv, &fakeJobs{}, ws, &fakeSales{}, logger.NewNop())
	r.now = func() time.Time { return now }

	rep := r.Report(context.Background())

	assert.Equal(t, Report{LowStock: 2, ExpiringSoon: 1}, rep)
	assert.Equal(t, now, ws.at)
}

func TestStart_InvalidSchedule(t *testing.T) {
	r := New(Config{RefreshSchedule: "every minute"}, &fakeInventory{}, &fakeJobs{}, &fakeWarranties{}, &fakeSales{}, logger.NewNop())
	assert.Error(t, r.Start())
}

func TestStart_RunImmediately(t *testing.T) {
	inv := &fakeInventory{}
	r := New(Config{RunImmediately: true}, inv, &fakeJobs{}, &fakeWarranties{}, &fakeSales{}, logger.NewNop())
	require.NoError(t, r.Start())
	defer r.Stop()

	assert.Eventually(t, func() bool { return inv.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}
