package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestWarrantyStatus(t *testing.T) {
	claimed := now.AddDate(0, 0, -2)
	tests := []struct {
		name string
		w    Warranty
		want WarrantyStatus
	}{
		{"claimed wins over everything", Warranty{IsActive: true, EndDate: now.AddDate(0, 0, 30), ClaimDate: &claimed}, WarrantyStatusClaimed},
		{"inactive", Warranty{IsActive: false, EndDate: now.AddDate(0, 0, 30)}, WarrantyStatusInactive},
		{"inactive and expired", Warranty{IsActive: false, EndDate: now.AddDate(0, 0, -1)}, WarrantyStatusInactive},
		{"ends exactly now", Warranty{IsActive: true, EndDate: now}, WarrantyStatusExpired},
		{"expired", Warranty{IsActive: true, EndDate: now.AddDate(0, 0, -1)}, WarrantyStatusExpired},
		{"seven days left", Warranty{IsActive: true, EndDate: now.AddDate(0, 0, 7)}, WarrantyStatusExpiringSoon},
		{"eight days left", Warranty{IsActive: true, EndDate: now.AddDate(0, 0, 8)}, WarrantyStatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.w.Status(now))
		})
	}
}

func TestWarrantyDaysRemaining(t *testing.T) {
	assert.Equal(t, 3, Warranty{EndDate: now.Add(49 * time.Hour)}.DaysRemaining(now))
	assert.Equal(t, -1, Warranty{EndDate: now.Add(-25 * time.Hour)}.DaysRemaining(now))
}

func TestNewWarrantyForJob(t *testing.T) {
	j := Job{ID: "j1", CustomerName: "Ana", DeviceBrand: "Samsung", DeviceModel: "A52", Problem: "pantalla rota", WarrantyDays: 90}

	w := NewWarrantyForJob(j, now)

	assert.Equal(t, "j1", w.JobID)
	assert.Equal(t, "Samsung A52", w.DeviceInfo)
	assert.Equal(t, "pantalla rota", w.WorkDone)
	assert.Equal(t, now.AddDate(0, 0, 90), w.EndDate)
	assert.True(t, w.IsActive)
}

func TestWarrantyPatch_ClaimKeepsInactive(t *testing.T) {
	claimed := now
	w := Warranty{IsActive: true, ClaimDate: &claimed}
	active := true

	WarrantyPatch{IsActive: &active}.Apply(&w)

	assert.False(t, w.IsActive)
}

func TestJobPatch_OnlyProvidedFields(t *testing.T) {
	j := Job{CustomerName: "Ana", Notes: "llamar antes", FinalCost: 10}
	cost := 45.5
	status := JobStatusCompleted

	JobPatch{FinalCost: &cost, Status: &status}.Apply(&j)

	assert.Equal(t, "Ana", j.CustomerName)
	assert.Equal(t, "llamar antes", j.Notes)
	assert.Equal(t, 45.5, j.FinalCost)
	assert.Equal(t, JobStatusCompleted, j.Status)
}

func TestJobHelpers(t *testing.T) {
	assert.Equal(t, 30.0, Job{EstimatedCost: 30}.ChargeAmount())
	assert.Equal(t, 25.0, Job{EstimatedCost: 30, FinalCost: 25}.ChargeAmount())
	assert.Equal(t, "cambio de batería", Job{Problem: "no carga", Diagnosis: "cambio de batería"}.WorkDone())
	assert.Equal(t, "A52", Job{DeviceModel: "A52"}.DeviceInfo())
	assert.True(t, JobStatusDelivered.IsFinished())
	assert.False(t, JobStatusInProgress.IsFinished())
	assert.False(t, JobStatus("lost").Valid())
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, InventoryItem{Quantity: 2, MinStock: 2}.IsLowStock())
	assert.False(t, InventoryItem{Quantity: 3, MinStock: 2}.IsLowStock())
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(now, time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, SameDay(now, now.AddDate(0, 0, 1)))
}

func TestSummarize(t *testing.T) {
	jobID := "j1"
	s := Summarize("2024-05-10", []DailySale{
		{Type: SaleTypeRepair, PaymentMethod: PaymentCash, Amount: 40, JobID: &jobID},
		{Type: SaleTypeAccessorySale, PaymentMethod: PaymentCard, Amount: 10},
	})

	assert.Equal(t, 2, s.TotalSales)
	assert.Equal(t, 1, s.TotalJobs)
	assert.Equal(t, 50.0, s.TotalRevenue)
	assert.Equal(t, Breakdown{Count: 1, Revenue: 40}, s.ByType[SaleTypeRepair])
	assert.Equal(t, Breakdown{}, s.ByType[SaleTypeDeviceSale])
	assert.Equal(t, Breakdown{Count: 1, Revenue: 10}, s.ByPayment[PaymentCard])
}

func TestBuildReport(t *testing.T) {
	sales := []DailySale{
		{Date: now.AddDate(0, 0, -1), Amount: 60, Type: SaleTypeRepair, PaymentMethod: PaymentCash},
		{Date: now, Amount: 40, Type: SaleTypeRepair, PaymentMethod: PaymentCash},
		{Date: now.AddDate(0, 0, -10), Amount: 50, Type: SaleTypeRepair, PaymentMethod: PaymentCash},
		{Date: now.AddDate(0, 0, -30), Amount: 999, Type: SaleTypeRepair, PaymentMethod: PaymentCash},
	}

	r, err := BuildReport(PeriodWeek, sales, now)
	require.NoError(t, err)

	assert.Equal(t, 2, r.TotalSales)
	assert.Equal(t, 100.0, r.TotalRevenue)
	assert.Equal(t, 50.0, r.AverageSale)
	assert.Equal(t, 100, r.GrowthPct)
	require.Len(t, r.Daily, 7)
	assert.Equal(t, "2024-05-10", r.Daily[6].Date)
	assert.Equal(t, 40.0, r.Daily[6].Revenue)

	_, err = BuildReport("decade", sales, now)
	assert.Error(t, err)
}
