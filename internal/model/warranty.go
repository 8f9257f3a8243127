package model

import (
	"math"
	"time"
)

// ExpiringSoonWindow is how close to its end date an active warranty is flagged.
const ExpiringSoonWindow = 7 * 24 * time.Hour

type WarrantyStatus string

const (
	WarrantyStatusActive       WarrantyStatus = "active"
	WarrantyStatusExpiringSoon WarrantyStatus = "expiring_soon"
	WarrantyStatusExpired      WarrantyStatus = "expired"
	WarrantyStatusInactive     WarrantyStatus = "inactive"
	WarrantyStatusClaimed      WarrantyStatus = "claimed"
)

type Warranty struct {
	ID           string     `json:"id"`
	JobID        string     `json:"jobId"`
	CustomerName string     `json:"customerName"`
	DeviceInfo   string     `json:"deviceInfo"`
	WorkDone     string     `json:"workDone"`
	WarrantyDays int        `json:"warrantyDays"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsActive     bool       `json:"isActive"`
	ClaimDate    *time.Time `json:"claimDate,omitempty"`
	ClaimReason  *string    `json:"claimReason,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewWarrantyForJob builds the warranty issued when a job is finished.
func NewWarrantyForJob(j Job, start time.Time) Warranty {
	return Warranty{
		JobID:        j.ID,
		CustomerName: j.CustomerName,
		DeviceInfo:   j.DeviceInfo(),
		WorkDone:     j.WorkDone(),
		WarrantyDays: j.WarrantyDays,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, j.WarrantyDays),
		IsActive:     true,
	}
}

// Status derives the warranty state at now. Checks run in priority order and the
// first match wins.
func (w Warranty) Status(now time.Time) WarrantyStatus {
	switch {
	case w.ClaimDate != nil:
		return WarrantyStatusClaimed
	case !w.IsActive:
		return WarrantyStatusInactive
	case !w.EndDate.After(now):
		return WarrantyStatusExpired
	case w.EndDate.Sub(now) <= ExpiringSoonWindow:
		return WarrantyStatusExpiringSoon
	}
	return WarrantyStatusActive
}

// IsClaimed reports whether a claim has been recorded. Claimed warranties never
// become active again.
func (w Warranty) IsClaimed() bool {
	return w.ClaimDate != nil
}

// DaysRemaining rounds the time left up to whole days. Negative once expired.
func (w Warranty) DaysRemaining(now time.Time) int {
	return int(math.Ceil(w.EndDate.Sub(now).Hours() / 24))
}

type WarrantyPatch struct {
	CustomerName *string    `json:"customerName,omitempty"`
	DeviceInfo   *string    `json:"deviceInfo,omitempty"`
	WorkDone     *string    `json:"workDone,omitempty"`
	WarrantyDays *int       `json:"warrantyDays,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	IsActive     *bool      `json:"isActive,omitempty"`
	ClaimDate    *time.Time `json:"claimDate,omitempty"`
	ClaimReason  *string    `json:"claimReason,omitempty"`
}

// Apply merges the patch. A claimed warranty stays inactive whatever the patch says.
func (p WarrantyPatch) Apply(w *Warranty) {
	if p.CustomerName != nil {
		w.CustomerName = *p.CustomerName
	}
	if p.DeviceInfo != nil {
		w.DeviceInfo = *p.DeviceInfo
	}
	if p.WorkDone != nil {
		w.WorkDone = *p.WorkDone
	}
	if p.WarrantyDays != nil {
		w.WarrantyDays = *p.WarrantyDays
	}
	if p.StartDate != nil {
		w.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		w.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		w.IsActive = *p.IsActive
	}
	if p.ClaimDate != nil {
		t := *p.ClaimDate
		w.ClaimDate = &t
	}
	if p.ClaimReason != nil {
		r := *p.ClaimReason
		w.ClaimReason = &r
	}
	if w.ClaimDate != nil {
		w.IsActive = false
	}
}
