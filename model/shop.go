package model

import "time"

type ShopEntity struct {
	ID        uint64     `db:"id" json:"id"`
	SellerID  uint64     `db:"seller_id" json:"seller_id"`
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ShopStats is recomputed from the order and product tables on every read;
// there are no stored counters to drift.
type ShopStats struct {
	ShopID        uint64  `json:"shop_id"`
	TotalProducts int64   `json:"total_products"`
	TotalOrders   int64   `json:"total_orders"`
	TotalSales    float64 `json:"total_sales"`
}
