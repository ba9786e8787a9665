package model

import (
	"time"

	"github.com/muhammadheryan/marketplace/constant"
)

type CheckoutItem struct {
	ProductID uint64  `json:"product_id" validate:"required"`
	VarietyID *uint64 `json:"variety_id,omitempty"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string         `json:"payment_method" validate:"required"`
}

// CartCheckoutRequest checks out whatever currently sits in the buyer's cart.
type CartCheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// OrderEntity is the order table row. Immutable after insert except for
// status and version; version guards concurrent status writes.
type OrderEntity struct {
	ID            uint64               `db:"id"`
	UserID        uint64               `db:"user_id"`
	Total         float64              `db:"total"`
	PaymentMethod string               `db:"payment_method"`
	Status        constant.OrderStatus `db:"status"`
	Version       int64                `db:"version"`
	CreatedAt     time.Time            `db:"created_at"`
}

// OrderItemEntity snapshots product id, shop id and unit price at checkout
// time. Later product edits never touch these rows.
type OrderItemEntity struct {
	ID        uint64  `db:"id"`
	OrderID   uint64  `db:"order_id"`
	ProductID uint64  `db:"product_id"`
	ShopID    uint64  `db:"shop_id"`
	VarietyID *uint64 `db:"variety_id"`
	UnitPrice float64 `db:"unit_price"`
	Quantity  int64   `db:"quantity"`
}

type StatusHistoryEntity struct {
	ID        uint64               `db:"id"`
	OrderID   uint64               `db:"order_id"`
	Status    constant.OrderStatus `db:"status"`
	Actor     string               `db:"actor"`
	Message   string               `db:"message"`
	CreatedAt time.Time            `db:"created_at"`
}

// OrderDetail is the minimal row-locked view used during status updates.
type OrderDetail struct {
	ID      uint64               `db:"id"`
	UserID  uint64               `db:"user_id"`
	Status  constant.OrderStatus `db:"status"`
	Version int64                `db:"version"`
}

type UpdateStatusRequest struct {
	Status  constant.OrderStatus `json:"status" validate:"required"`
	Message string               `json:"message,omitempty"`
}

// OrderItemView and friends follow the persisted interop shape consumed
// by the storefront and seller dashboards.
type OrderItemView struct {
	Product   uint64  `json:"product"`
	Shop      uint64  `json:"shop"`
	Variety   *uint64 `json:"variety,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int64   `json:"quantity"`
}

type StatusHistoryView struct {
	Status    constant.OrderStatus `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
	Actor     string               `json:"actor"`
	Message   string               `json:"message,omitempty"`
}

type OrderResponse struct {
	ID            uint64               `json:"_id"`
	Customer      uint64               `json:"customer"`
	Items         []OrderItemView      `json:"items"`
	Total         float64              `json:"total"`
	PaymentMethod string               `json:"paymentMethod"`
	Status        constant.OrderStatus `json:"status"`
	StatusHistory []StatusHistoryView  `json:"statusHistory"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ShopSubtotal sums unitPrice*quantity over the line items belonging to
// one shop. The order total is the sum over all shops.
func (o *OrderResponse) ShopSubtotal(shopID uint64) float64 {
	var sub float64
	for _, it := range o.Items {
		if it.Shop == shopID {
			sub += it.UnitPrice * float64(it.Quantity)
		}
	}
	return sub
}

type OrderSummary struct {
	ID        uint64               `db:"id" json:"_id"`
	Customer  uint64               `db:"user_id" json:"customer"`
	Total     float64              `db:"total" json:"total"`
	Status    constant.OrderStatus `db:"status" json:"status"`
	CreatedAt time.Time            `db:"created_at" json:"createdAt"`
}
