package cart_test

import (
	"context"
	"errors"
	"testing"

	appcart "github.com/muhammadheryan/marketplace/application/cart"
	"github.com/muhammadheryan/marketplace/constant"
	cartmocks "github.com/muhammadheryan/marketplace/mocks/repository/cart"
	productmocks "github.com/muhammadheryan/marketplace/mocks/repository/product"
	"github.com/muhammadheryan/marketplace/model"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestCartApp_AddItem(t *testing.T) {
	type fields struct {
		cartRepo    *cartmocks.CartRepository
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.CartItemRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: active product is upserted",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			req: &model.CartItemRequest{ProductID: 1, Quantity: 2},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, Price: 15, Stock: 5, Status: constant.ProductStatusActive,
				}, nil).Once()
				f.cartRepo.On("UpsertItem", mock.Anything, mock.MatchedBy(func(it *model.CartItemEntity) bool {
					return it.UserID == 1 && it.ProductID == 1 && it.Quantity == 2
				})).Return(nil).Once()
			},
		},
		{
			name: "error: zero quantity",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			req:     &model.CartItemRequest{ProductID: 1, Quantity: 0},
			wantErr: true,
			errCode: constant.ErrInvalidQuantity,
		},
		{
			name: "error: product not found",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			req: &model.CartItemRequest{ProductID: 404, Quantity: 1},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
		{
			name: "error: inactive product",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			req: &model.CartItemRequest{ProductID: 2, Quantity: 1},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(2)).Return(&model.ProductEntity{
					ID: 2, Status: constant.ProductStatusDraft,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotActive,
		},
		{
			name: "error: unknown variety",
			fields: fields{
				cartRepo:    cartmocks.NewCartRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			},
			req: &model.CartItemRequest{ProductID: 3, VarietyID: uintPtr(99), Quantity: 1},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(3)).Return(&model.ProductEntity{
					ID: 3, Status: constant.ProductStatusActive,
					Varieties: []model.VarietyEntity{{ID: 31, Price: 9, Stock: 4}},
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcart.NewCartApp(tt.fields.cartRepo, tt.fields.productRepo)

			err := app.AddItem(context.Background(), 1, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddItem() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

func TestCartApp_GetCart(t *testing.T) {
	cartRepo := cartmocks.NewCartRepository(t)
	productRepo := productmocks.NewProductRepository(t)

	cartRepo.On("GetItems", mock.Anything, uint64(1)).Return([]model.CartItemEntity{
		{UserID: 1, ProductID: 1, Quantity: 2},
		{UserID: 1, ProductID: 2, Quantity: 1}, // product vanished since
		{UserID: 1, ProductID: 3, VarietyID: uintPtr(31), Quantity: 3},
	}, nil).Once()

	productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
		ID: 1, Name: "apple", Price: 15, Stock: 5, Status: constant.ProductStatusActive,
	}, nil).Once()
	productRepo.On("GetByID", mock.Anything, uint64(2)).Return(nil, nil).Once()
	productRepo.On("GetByID", mock.Anything, uint64(3)).Return(&model.ProductEntity{
		ID: 3, Name: "shirt", Price: 40, Status: constant.ProductStatusActive,
		Varieties: []model.VarietyEntity{{ID: 31, Name: "large", Price: 45, Stock: 4}},
	}, nil).Once()

	app := appcart.NewCartApp(cartRepo, productRepo)

	got, err := app.GetCart(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}

	if len(got.Items) != 2 {
		t.Fatalf("GetCart() items = %d, want 2 (vanished product skipped)", len(got.Items))
	}
	if got.Total != 15*2+45*3 {
		t.Fatalf("GetCart() total = %v, want %v", got.Total, float64(15*2+45*3))
	}
	if got.Items[1].VarietyName != "large" {
		t.Fatalf("variety name = %q, want %q", got.Items[1].VarietyName, "large")
	}
	if got.Items[1].UnitPrice != 45 {
		t.Fatalf("variety unit price = %v, want 45", got.Items[1].UnitPrice)
	}
}

func TestCartApp_RemoveItem(t *testing.T) {
	cartRepo := cartmocks.NewCartRepository(t)
	productRepo := productmocks.NewProductRepository(t)

	cartRepo.On("RemoveItem", mock.Anything, uint64(1), uint64(2), (*uint64)(nil)).Return(nil).Once()

	app := appcart.NewCartApp(cartRepo, productRepo)
	if err := app.RemoveItem(context.Background(), 1, 2, nil); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
}

func TestCartApp_ClearCart(t *testing.T) {
	cartRepo := cartmocks.NewCartRepository(t)
	productRepo := productmocks.NewProductRepository(t)

	cartRepo.On("Clear", mock.Anything, uint64(1)).Return(nil).Once()

	app := appcart.NewCartApp(cartRepo, productRepo)
	if err := app.ClearCart(context.Background(), 1); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}
}
