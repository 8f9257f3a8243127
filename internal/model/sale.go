package model

import "time"

type SaleType string

const (
	SaleTypeRepair        SaleType = "repair"
	SaleTypeAccessorySale SaleType = "accessory_sale"
	SaleTypeDeviceSale    SaleType = "device_sale"
)

var SaleTypes = []SaleType{SaleTypeRepair, SaleTypeAccessorySale, SaleTypeDeviceSale}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer}

// DailySale is immutable once recorded.
type DailySale struct {
	ID            string        `json:"id"`
	Date          time.Time     `json:"date"`
	Type          SaleType      `json:"type"`
	Description   string        `json:"description"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CustomerName  *string       `json:"customerName,omitempty"`
	JobID         *string       `json:"jobId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// DayKey is the calendar day of t as YYYY-MM-DD in t's own location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// SameDay compares calendar days by their string form, ignoring time zones.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

type Breakdown struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DailySummary struct {
	Date         string                      `json:"date"`
	TotalSales   int                         `json:"totalSales"`
	TotalJobs    int                         `json:"totalJobs"`
	TotalRevenue float64                     `json:"totalRevenue"`
	ByType       map[SaleType]Breakdown      `json:"byType"`
	ByPayment    map[PaymentMethod]Breakdown `json:"byPayment"`
}

// Summarize aggregates sales. Sales linked to a job count towards TotalJobs.
func Summarize(date string, sales []DailySale) DailySummary {
	s := DailySummary{
		Date:      date,
		ByType:    make(map[SaleType]Breakdown, len(SaleTypes)),
		ByPayment: make(map[PaymentMethod]Breakdown, len(PaymentMethods)),
	}
	for _, t := range SaleTypes {
		s.ByType[t] = Breakdown{}
	}
	for _, m := range PaymentMethods {
		s.ByPayment[m] = Breakdown{}
	}
	for _, sale := range sales {
		s.TotalSales++
		s.TotalRevenue += sale.Amount
		if sale.JobID != nil && *sale.JobID != "" {
			s.TotalJobs++
		}
		bt := s.ByType[sale.Type]
		bt.Count++
		bt.Revenue += sale.Amount
		s.ByType[sale.Type] = bt

		bp := s.ByPayment[sale.PaymentMethod]
		bp.Count++
		bp.Revenue += sale.Amount
		s.ByPayment[sale.PaymentMethod] = bp
	}
	return s
}
