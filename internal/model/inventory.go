package model

import "time"

type Category string

const (
	CategoryScreen    Category = "screen"
	CategoryBattery   Category = "battery"
	CategoryAccessory Category = "accessory"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryScreen, CategoryBattery, CategoryAccessory:
		return true
	}
	return false
}

type InventoryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	MinStock  int       `json:"minStock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the item is at or below its minimum stock threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// InventoryPatch carries a partial update. Nil fields are left untouched.
type InventoryPatch struct {
	Name     *string   `json:"name,omitempty"`
	Category *Category `json:"category,omitempty"`
	Brand    *string   `json:"brand,omitempty"`
	Model    *string   `json:"model,omitempty"`
	Quantity *int      `json:"quantity,omitempty"`
	Price    *float64  `json:"price,omitempty"`
	MinStock *int      `json:"minStock,omitempty"`
}

func (p InventoryPatch) Apply(i *InventoryItem) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Brand != nil {
		i.Brand = *p.Brand
	}
	if p.Model != nil {
		i.Model = *p.Model
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.MinStock != nil {
		i.MinStock = *p.MinStock
	}
}

func (p InventoryPatch) IsEmpty() bool {
	return p == InventoryPatch{}
}
