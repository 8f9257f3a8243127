package model

import (
	"fmt"
	"math"
	"time"
)

type ReportPeriod string

const (
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
	PeriodYear  ReportPeriod = "year"
)

const day = 24 * time.Hour

// Length is the fixed look-back window of the period.
func (p ReportPeriod) Length() (time.Duration, error) {
	switch p {
	case PeriodWeek:
		return 7 * day, nil
	case PeriodMonth:
		return 30 * day, nil
	case PeriodYear:
		return 365 * day, nil
	}
	return 0, fmt.Errorf("unknown report period %q", p)
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type SalesReport struct {
	Period       ReportPeriod                `json:"period"`
	From         time.Time                   `json:"from"`
	To           time.Time                   `json:"to"`
	TotalSales   int                         `json:"totalSales"`
	TotalRevenue float64                     `json:"totalRevenue"`
	AverageSale  float64                     `json:"averageSale"`
	GrowthPct    int                         `json:"growthPct"`
	ByType       map[SaleType]Breakdown      `json:"byType"`
	ByPayment    map[PaymentMethod]Breakdown `json:"byPayment"`
	Daily        []DailyRevenue              `json:"daily"`
}

// BuildReport aggregates the sales dated within the period ending at now. Growth
// compares revenue with the window of equal length right before it. The daily
// series always covers the last seven days.
func BuildReport(period ReportPeriod, sales []DailySale, now time.Time) (SalesReport, error) {
	length, err := period.Length()
	if err != nil {
		return SalesReport{}, err
	}
	from := now.Add(-length)
	prevFrom := from.Add(-length)

	var current []DailySale
	var previousRevenue float64
	for _, s := range sales {
		switch {
		case !s.Date.Before(from):
			current = append(current, s)
		case !s.Date.Before(prevFrom):
			previousRevenue += s.Amount
		}
	}

	summary := Summarize(DayKey(now), current)
	r := SalesReport{
		Period:       period,
		From:         from,
		To:           now,
		TotalSales:   summary.TotalSales,
		TotalRevenue: summary.TotalRevenue,
		ByType:       summary.ByType,
		ByPayment:    summary.ByPayment,
		GrowthPct:    growth(summary.TotalRevenue, previousRevenue),
	}
	if r.TotalSales > 0 {
		r.AverageSale = r.TotalRevenue / float64(r.TotalSales)
	}

	for i := 6; i >= 0; i-- {
		key := DayKey(now.Add(-time.Duration(i) * day))
		d := DailyRevenue{Date: key}
		for _, s := range current {
			if DayKey(s.Date) == key {
				d.Sales++
				d.Revenue += s.Amount
			}
		}
		r.Daily = append(r.Daily, d)
	}
	return r, nil
}

func growth(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}
