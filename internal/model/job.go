package model

import "time"

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusDelivered  JobStatus = "delivered"
)

// Rank returns the position of the status in the job lifecycle, or -1 if unknown.
func (s JobStatus) Rank() int {
	switch s {
	case JobStatusPending:
		return 0
	case JobStatusInProgress:
		return 1
	case JobStatusCompleted:
		return 2
	case JobStatusDelivered:
		return 3
	}
	return -1
}

func (s JobStatus) Valid() bool {
	return s.Rank() >= 0
}

// IsFinished is true once the repair is done, whether or not it was handed back.
func (s JobStatus) IsFinished() bool {
	return s == JobStatusCompleted || s == JobStatusDelivered
}

// PartUsed is a snapshot of an inventory item at the time it went into a repair.
// Later edits to the item do not change it.
type PartUsed struct {
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Job struct {
	ID             string     `json:"id"`
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	DeviceBrand    string     `json:"deviceBrand"`
	DeviceModel    string     `json:"deviceModel"`
	Problem        string     `json:"problem"`
	Diagnosis      string     `json:"diagnosis,omitempty"`
	Status         JobStatus  `json:"status"`
	EstimatedCost  float64    `json:"estimatedCost"`
	FinalCost      float64    `json:"finalCost"`
	PartsUsed      []PartUsed `json:"partsUsed"`
	HasWarranty    bool       `json:"hasWarranty"`
	WarrantyDays   int        `json:"warrantyDays"`
	Notes          string     `json:"notes"`
	StartDate      time.Time  `json:"startDate"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// DeviceInfo is the "brand model" string shown on warranties.
func (j Job) DeviceInfo() string {
	switch {
	case j.DeviceBrand == "":
		return j.DeviceModel
	case j.DeviceModel == "":
		return j.DeviceBrand
	}
	return j.DeviceBrand + " " + j.DeviceModel
}

// ChargeAmount is what the customer pays: the final cost once set, the estimate otherwise.
func (j Job) ChargeAmount() float64 {
	if j.FinalCost > 0 {
		return j.FinalCost
	}
	return j.EstimatedCost
}

// WorkDone describes the repair for a warranty, preferring the diagnosis.
func (j Job) WorkDone() string {
	if j.Diagnosis != "" {
		return j.Diagnosis
	}
	return j.Problem
}

type JobPatch struct {
	CustomerName   *string     `json:"customerName,omitempty"`
	CustomerPhone  *string     `json:"customerPhone,omitempty"`
	DeviceBrand    *string     `json:"deviceBrand,omitempty"`
	DeviceModel    *string     `json:"deviceModel,omitempty"`
	Problem        *string     `json:"problem,omitempty"`
	Diagnosis      *string     `json:"diagnosis,omitempty"`
	Status         *JobStatus  `json:"status,omitempty"`
	EstimatedCost  *float64    `json:"estimatedCost,omitempty"`
	FinalCost      *float64    `json:"finalCost,omitempty"`
	PartsUsed      *[]PartUsed `json:"partsUsed,omitempty"`
	HasWarranty    *bool       `json:"hasWarranty,omitempty"`
	WarrantyDays   *int        `json:"warrantyDays,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	CompletionDate *time.Time  `json:"completionDate,omitempty"`
	DeliveryDate   *time.Time  `json:"deliveryDate,omitempty"`
}

func (p JobPatch) Apply(j *Job) {
	if p.CustomerName != nil {
		j.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		j.CustomerPhone = *p.CustomerPhone
	}
	if p.DeviceBrand != nil {
		j.DeviceBrand = *p.DeviceBrand
	}
	if p.DeviceModel != nil {
		j.DeviceModel = *p.DeviceModel
	}
	if p.Problem != nil {
		j.Problem = *p.Problem
	}
	if p.Diagnosis != nil {
		j.Diagnosis = *p.Diagnosis
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.EstimatedCost != nil {
		j.EstimatedCost = *p.EstimatedCost
	}
	if p.FinalCost != nil {
		j.FinalCost = *p.FinalCost
	}
	if p.PartsUsed != nil {
		j.PartsUsed = append([]PartUsed(nil), (*p.PartsUsed)...)
	}
	if p.HasWarranty != nil {
		j.HasWarranty = *p.HasWarranty
	}
	if p.WarrantyDays != nil {
		j.WarrantyDays = *p.WarrantyDays
	}
	if p.Notes != nil {
		j.Notes = *p.Notes
	}
	if p.CompletionDate != nil {
		t := *p.CompletionDate
		j.CompletionDate = &t
	}
	if p.DeliveryDate != nil {
		t := *p.DeliveryDate
		j.DeliveryDate = &t
	}
}
