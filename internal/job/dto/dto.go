package dto

import (
	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/model"
)

type Labeler interface {
	Label(lang, prefix, value string) string
}

type JobResponse struct {
	model.Job
	StatusLabel string  `json:"statusLabel"`
	PartsCost   float64 `json:"partsCost"`
}

func ToJobResponse(j model.Job, l Labeler, lang string) JobResponse {
	var cost float64
	for _, p := range j.PartsUsed {
		cost += p.Price * float64(p.Quantity)
	}
	return JobResponse{
		Job:         j,
		StatusLabel: l.Label(lang, "job.status", string(j.Status)),
		PartsCost:   cost,
	}
}

func ToJobResponses(jobs []model.Job, l Labeler, lang string) []JobResponse {
	out := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = ToJobResponse(j, l, lang)
	}
	return out
}

type SaveResponse struct {
	Job      JobResponse      `json:"job"`
	Sale     *model.DailySale `json:"sale,omitempty"`
	Warranty *model.Warranty  `json:"warranty,omitempty"`
	Warnings []string         `json:"warnings"`
}

func ToSaveResponse(res job.SaveResult, l Labeler, lang string) SaveResponse {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return SaveResponse{
		Job:      ToJobResponse(res.Job, l, lang),
		Sale:     res.Sale,
		Warranty: res.Warranty,
		Warnings: warnings,
	}
}
