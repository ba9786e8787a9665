package model

import "time"

// CartItemEntity is one pending selection in a buyer's cart. Nothing is
// held against stock while the item sits here; availability is re-checked
// at checkout.
type CartItemEntity struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"-"`
	ProductID uint64    `db:"product_id" json:"product_id"`
	VarietyID *uint64   `db:"variety_id" json:"variety_id,omitempty"`
	Quantity  int64     `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CartItemRequest struct {
	ProductID uint64  `json:"product_id" validate:"required"`
	VarietyID *uint64 `json:"variety_id,omitempty"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
}

// CartView is a cart item resolved against the catalog for display.
// Prices here are live and informational; the checkout snapshot is what
// an order keeps.
type CartView struct {
	ProductID      uint64  `json:"product_id"`
	VarietyID      *uint64 `json:"variety_id,omitempty"`
	ProductName    string  `json:"product_name"`
	VarietyName    string  `json:"variety_name,omitempty"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int64   `json:"quantity"`
	AvailableStock int64   `json:"available_stock"`
}

type CartResponse struct {
	Items []CartView `json:"items"`
	Total float64    `json:"total"`
}
