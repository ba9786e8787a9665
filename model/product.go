package model

import (
	"time"

	"github.com/muhammadheryan/marketplace/constant"
)

// ProductEntity represents the product table entity. Stock on the product
// row is only authoritative for products without varieties; a variety line
// item always resolves against its own counters.
type ProductEntity struct {
	ID              uint64                 `db:"id" json:"id"`
	ShopID          uint64                 `db:"shop_id" json:"shop_id"`
	SellerID        uint64                 `db:"seller_id" json:"seller_id"`
	Name            string                 `db:"name" json:"name"`
	Description     string                 `db:"description" json:"description,omitempty"`
	Price           float64                `db:"price" json:"price"`
	DiscountedPrice *float64               `db:"discounted_price" json:"discounted_price,omitempty"`
	Stock           int64                  `db:"stock" json:"stock"`
	MinStock        int64                  `db:"min_stock" json:"min_stock"`
	Status          constant.ProductStatus `db:"status" json:"status"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time             `db:"updated_at" json:"updated_at,omitempty"`

	Varieties []VarietyEntity `db:"-" json:"varieties,omitempty"`
}

// VarietyEntity is a named sub-SKU with independent price and stock.
type VarietyEntity struct {
	ID        uint64  `db:"id" json:"id"`
	ProductID uint64  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Stock     int64   `db:"stock" json:"stock"`
	MinStock  int64   `db:"min_stock" json:"min_stock"`
}

// EffectivePrice returns the unit price a checkout snapshots for a line
// item on this product: the variety price when a variety is selected,
// otherwise the discounted price when set, otherwise the base price.
func (p *ProductEntity) EffectivePrice(varietyID *uint64) (float64, bool) {
	if varietyID != nil {
		for _, v := range p.Varieties {
			if v.ID == *varietyID {
				return v.Price, true
			}
		}
		return 0, false
	}
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice, true
	}
	return p.Price, true
}

// AvailableStock returns the stock counter a line item draws from.
func (p *ProductEntity) AvailableStock(varietyID *uint64) (int64, bool) {
	if varietyID != nil {
		for _, v := range p.Varieties {
			if v.ID == *varietyID {
				return v.Stock, true
			}
		}
		return 0, false
	}
	return p.Stock, true
}

type VarietyRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int64   `json:"stock" validate:"gte=0"`
	MinStock int64   `json:"min_stock" validate:"gte=0"`
}

type CreateProductRequest struct {
	ShopID          uint64           `json:"shop_id" validate:"required"`
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description"`
	Price           float64          `json:"price" validate:"required,gt=0"`
	DiscountedPrice *float64         `json:"discounted_price,omitempty" validate:"omitempty,gt=0"`
	Stock           int64            `json:"stock" validate:"gte=0"`
	MinStock        int64            `json:"min_stock" validate:"gte=0"`
	Varieties       []VarietyRequest `json:"varieties,omitempty" validate:"omitempty,dive"`
}

type ProductListItem struct {
	ID     uint64                 `db:"id" json:"id"`
	ShopID uint64                 `db:"shop_id" json:"shop_id"`
	Name   string                 `db:"name" json:"name"`
	Price  float64                `db:"price" json:"price"`
	Stock  int64                  `db:"stock" json:"stock"`
	Status constant.ProductStatus `db:"status" json:"status"`
}

type ProductListResponse struct {
	Items      []ProductListItem `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}
