package dto

import "github.com/fekuna/omnipos-repair-service/internal/model"

type ItemResponse struct {
	model.InventoryItem
	LowStock bool `json:"lowStock"`
}

func ToItemResponse(i model.InventoryItem) ItemResponse {
	return ItemResponse{InventoryItem: i, LowStock: i.IsLowStock()}
}

func ToItemResponses(items []model.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ToItemResponse(item)
	}
	return out
}
