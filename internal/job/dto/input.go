package dto

import (
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/model"
)

type PartRequest struct {
	ItemID   string  `json:"itemId" binding:"required"`
	ItemName string  `json:"itemName" binding:"required"`
	Quantity int     `json:"quantity" binding:"gt=0"`
	Price    float64 `json:"price" binding:"gte=0"`
}

// SaveJobRequest is the full job form.
type SaveJobRequest struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customerName" binding:"required"`
	CustomerPhone string              `json:"customerPhone" binding:"required"`
	DeviceBrand   string              `json:"deviceBrand" binding:"required"`
	DeviceModel   string              `json:"deviceModel" binding:"required"`
	Problem       string              `json:"problem" binding:"required"`
	Diagnosis     string              `json:"diagnosis"`
	Status        model.JobStatus     `json:"status" binding:"omitempty,oneof=pending in_progress completed delivered"`
	EstimatedCost float64             `json:"estimatedCost" binding:"gt=0"`
	FinalCost     float64             `json:"finalCost" binding:"gte=0"`
	PartsUsed     []PartRequest       `json:"partsUsed" binding:"omitempty,dive"`
	HasWarranty   bool                `json:"hasWarranty"`
	WarrantyDays  int                 `json:"warrantyDays" binding:"gte=0"`
	Notes         string              `json:"notes"`
	StartDate     *time.Time          `json:"startDate"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=cash card transfer"`
}

func (r SaveJobRequest) ToInput() job.SaveInput {
	parts := make([]model.PartUsed, len(r.PartsUsed))
	for i, p := range r.PartsUsed {
		parts[i] = model.PartUsed{ItemID: p.ItemID, ItemName: p.ItemName, Quantity: p.Quantity, Price: p.Price}
	}
	j := model.Job{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		DeviceBrand:   r.DeviceBrand,
		DeviceModel:   r.DeviceModel,
		Problem:       r.Problem,
		Diagnosis:     r.Diagnosis,
		Status:        r.Status,
		EstimatedCost: r.EstimatedCost,
		FinalCost:     r.FinalCost,
		PartsUsed:     parts,
		HasWarranty:   r.HasWarranty,
		WarrantyDays:  r.WarrantyDays,
		Notes:         r.Notes,
	}
	if j.Status == "" {
		j.Status = model.JobStatusPending
	}
	if r.StartDate != nil {
		j.StartDate = *r.StartDate
	}
	return job.SaveInput{Job: j, PaymentMethod: r.PaymentMethod}
}

type UpdateJobRequest struct {
	CustomerName  *string          `json:"customerName" binding:"omitempty,min=1"`
	CustomerPhone *string          `json:"customerPhone"`
	DeviceBrand   *string          `json:"deviceBrand"`
	DeviceModel   *string          `json:"deviceModel"`
	Problem       *string          `json:"problem"`
	Diagnosis     *string          `json:"diagnosis"`
	Status        *model.JobStatus `json:"status" binding:"omitempty,oneof=pending in_progress completed delivered"`
	EstimatedCost *float64         `json:"estimatedCost" binding:"omitempty,gte=0"`
	FinalCost     *float64         `json:"finalCost" binding:"omitempty,gte=0"`
	HasWarranty   *bool            `json:"hasWarranty"`
	WarrantyDays  *int             `json:"warrantyDays" binding:"omitempty,gte=0"`
	Notes         *string          `json:"notes"`
}

func (r UpdateJobRequest) ToPatch() model.JobPatch {
	return model.JobPatch{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		DeviceBrand:   r.DeviceBrand,
		DeviceModel:   r.DeviceModel,
		Problem:       r.Problem,
		Diagnosis:     r.Diagnosis,
		Status:        r.Status,
		EstimatedCost: r.EstimatedCost,
		FinalCost:     r.FinalCost,
		HasWarranty:   r.HasWarranty,
		WarrantyDays:  r.WarrantyDays,
		Notes:         r.Notes,
	}
}

type ListQuery struct {
	Status model.JobStatus `form:"status" binding:"omitempty,oneof=pending in_progress completed delivered"`
}
