package dto

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/model"
)

type Labeler interface {
	Label(lang, prefix, value string) string
}

type WarrantyResponse struct {
	model.Warranty
	Status        model.WarrantyStatus `json:"status"`
	StatusLabel   string               `json:"statusLabel"`
	DaysRemaining int                  `json:"daysRemaining"`
}

func ToWarrantyResponse(w model.Warranty, now time.Time, l Labeler, lang string) WarrantyResponse {
	status := w.Status(now)
	return WarrantyResponse{
		Warranty:      w,
		Status:        status,
		StatusLabel:   l.Label(lang, "warranty.status", string(status)),
		DaysRemaining: w.DaysRemaining(now),
	}
}

func ToWarrantyResponses(ws []model.Warranty, now time.Time, l Labeler, lang string) []WarrantyResponse {
	out := make([]WarrantyResponse, len(ws))
	for i, w := range ws {
		out[i] = ToWarrantyResponse(w, now, l, lang)
	}
	return out
}
