package model

import "testing"

func fptr(v float64) *float64 { return &v }

func uptr(v uint64) *uint64 { return &v }

func TestProductEntity_EffectivePrice(t *testing.T) {
	p := &ProductEntity{
		ID:    1,
		Price: 100,
		Varieties: []VarietyEntity{
			{ID: 11, Price: 120},
		},
	}

	tests := []struct {
		name      string
		product   *ProductEntity
		varietyID *uint64
		want      float64
		wantOK    bool
	}{
		{"base price", p, nil, 100, true},
		{"variety price wins over product price", p, uptr(11), 120, true},
		{"unknown variety", p, uptr(99), 0, false},
		{
			"discounted price wins over base price",
			&ProductEntity{Price: 100, DiscountedPrice: fptr(80)},
			nil, 80, true,
		},
		{
			"variety price ignores the discount",
			&ProductEntity{Price: 100, DiscountedPrice: fptr(80), Varieties: []VarietyEntity{{ID: 11, Price: 120}}},
			uptr(11), 120, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.product.EffectivePrice(tt.varietyID)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("EffectivePrice() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProductEntity_AvailableStock(t *testing.T) {
	p := &ProductEntity{
		Stock: 7,
		Varieties: []VarietyEntity{
			{ID: 11, Stock: 3},
		},
	}

	if got, ok := p.AvailableStock(nil); !ok || got != 7 {
		t.Fatalf("AvailableStock(nil) = (%v, %v), want (7, true)", got, ok)
	}
	if got, ok := p.AvailableStock(uptr(11)); !ok || got != 3 {
		t.Fatalf("AvailableStock(11) = (%v, %v), want (3, true)", got, ok)
	}
	if _, ok := p.AvailableStock(uptr(99)); ok {
		t.Fatal("AvailableStock(99) ok = true, want false")
	}
}

func TestOrderResponse_ShopSubtotal(t *testing.T) {
	o := &OrderResponse{
		Total: 35,
		Items: []OrderItemView{
			{Product: 1, Shop: 7, UnitPrice: 10, Quantity: 2},
			{Product: 2, Shop: 8, UnitPrice: 5, Quantity: 3},
		},
	}

	if got := o.ShopSubtotal(7); got != 20 {
		t.Fatalf("ShopSubtotal(7) = %v, want 20", got)
	}
	if got := o.ShopSubtotal(8); got != 15 {
		t.Fatalf("ShopSubtotal(8) = %v, want 15", got)
	}
	if got := o.ShopSubtotal(9); got != 0 {
		t.Fatalf("ShopSubtotal(9) = %v, want 0", got)
	}
	if o.ShopSubtotal(7)+o.ShopSubtotal(8) != o.Total {
		t.Fatal("shop subtotals should sum to the order total")
	}
}
