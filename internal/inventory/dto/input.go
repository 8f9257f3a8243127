package dto

import "github.com/fekuna/omnipos-repair-service/internal/model"

type CreateItemRequest struct {
	Name     string         `json:"name" binding:"required"`
	Category model.Category `json:"category" binding:"required,oneof=screen battery accessory"`
	Brand    string         `json:"brand"`
	Model    string         `json:"model"`
	Quantity int            `json:"quantity" binding:"gte=0"`
	Price    float64        `json:"price" binding:"gte=0"`
	MinStock int            `json:"minStock" binding:"gte=0"`
}

func (r CreateItemRequest) ToModel() model.InventoryItem {
	return model.InventoryItem{
		Name:     r.Name,
		Category: r.Category,
		Brand:    r.Brand,
		Model:    r.Model,
		Quantity: r.Quantity,
		Price:    r.Price,
		MinStock: r.MinStock,
	}
}

type UpdateItemRequest struct {
	Name     *string         `json:"name" binding:"omitempty,min=1"`
	Category *model.Category `json:"category" binding:"omitempty,oneof=screen battery accessory"`
	Brand    *string         `json:"brand"`
	Model    *string         `json:"model"`
	Quantity *int            `json:"quantity" binding:"omitempty,gte=0"`
	Price    *float64        `json:"price" binding:"omitempty,gte=0"`
	MinStock *int            `json:"minStock" binding:"omitempty,gte=0"`
}

func (r UpdateItemRequest) ToPatch() model.InventoryPatch {
	return model.InventoryPatch{
		Name:     r.Name,
		Category: r.Category,
		Brand:    r.Brand,
		Model:    r.Model,
		Quantity: r.Quantity,
		Price:    r.Price,
		MinStock: r.MinStock,
	}
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}
