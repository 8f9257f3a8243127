package dto

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/model"
)

type CreateSaleRequest struct {
	Date          *time.Time          `json:"date"`
	Type          model.SaleType      `json:"type" binding:"required,oneof=repair accessory_sale device_sale"`
	Description   string              `json:"description" binding:"required"`
	Amount        float64             `json:"amount" binding:"gt=0"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash card transfer"`
	CustomerName  *string             `json:"customerName"`
	JobID         *string             `json:"jobId"`
}

func (r CreateSaleRequest) ToModel() model.DailySale {
	s := model.DailySale{
		Type:          r.Type,
		Description:   r.Description,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		CustomerName:  r.CustomerName,
		JobID:         r.JobID,
	}
	if r.Date != nil {
		s.Date = *r.Date
	}
	return s
}

type DateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Day parses the query date, defaulting to today.
func (q DateQuery) Day(now time.Time) time.Time {
	if q.Date == "" {
		return now
	}
	d, err := time.ParseInLocation(time.DateOnly, q.Date, now.Location())
	if err != nil {
		return now
	}
	return d
}

type ReportQuery struct {
	Period model.ReportPeriod `form:"period" binding:"omitempty,oneof=week month year"`
}
