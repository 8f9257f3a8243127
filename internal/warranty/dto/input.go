package dto

type ClaimRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active expiring_soon expired inactive claimed"`
}
