package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	appcatalog "github.com/muhammadheryan/marketplace/application/catalog"
	"github.com/muhammadheryan/marketplace/constant"
	productmocks "github.com/muhammadheryan/marketplace/mocks/repository/product"
	redismocks "github.com/muhammadheryan/marketplace/mocks/repository/redis"
	shopmocks "github.com/muhammadheryan/marketplace/mocks/repository/shop"
	txmocks "github.com/muhammadheryan/marketplace/mocks/repository/tx"
	"github.com/muhammadheryan/marketplace/model"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/policy"
	"github.com/stretchr/testify/mock"
)

func floatPtr(v float64) *float64 { return &v }

func TestCatalogApp_CreateProduct(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		productRepo *productmocks.ProductRepository
		shopRepo    *shopmocks.ShopRepository
		redisRepo   *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		actor    policy.Actor
		req      *model.CreateProductRequest
		mockCall func(f fields)
		wantID   uint64
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: seller creates draft in own shop",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 5, Role: constant.RoleSeller},
			req: &model.CreateProductRequest{
				ShopID: 10,
				Name:   "apple",
				Price:  120,
				Stock:  10,
				Varieties: []model.VarietyRequest{
					{Name: "green", Price: 110, Stock: 4},
				},
			},
			mockCall: func(f fields) {
				f.shopRepo.On("GetByID", mock.Anything, uint64(10)).Return(&model.ShopEntity{ID: 10, SellerID: 5}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.productRepo.On("CreateTx", mock.Anything, tx, mock.MatchedBy(func(p *model.ProductEntity) bool {
					return p.ShopID == 10 && p.SellerID == 5 &&
						p.Status == constant.ProductStatusDraft &&
						len(p.Varieties) == 1 && p.Varieties[0].Price == 110
				})).Return(uint64(42), nil).Once()
			},
			wantID: 42,
		},
		{
			name: "error: discounted price above base price",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 5, Role: constant.RoleSeller},
			req: &model.CreateProductRequest{
				ShopID:          10,
				Name:            "apple",
				Price:           100,
				DiscountedPrice: floatPtr(150),
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: seller cannot create in someone else's shop",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 6, Role: constant.RoleSeller},
			req:   &model.CreateProductRequest{ShopID: 10, Name: "apple", Price: 100},
			mockCall: func(f fields) {
				f.shopRepo.On("GetByID", mock.Anything, uint64(10)).Return(&model.ShopEntity{ID: 10, SellerID: 5}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name: "error: shop not found",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 5, Role: constant.RoleSeller},
			req:   &model.CreateProductRequest{ShopID: 404, Name: "apple", Price: 100},
			mockCall: func(f fields) {
				f.shopRepo.On("GetByID", mock.Anything, uint64(404)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcatalog.NewCatalogApp(tt.fields.txRepo, tt.fields.productRepo, tt.fields.shopRepo, tt.fields.redisRepo)

			got, err := app.CreateProduct(context.Background(), tt.actor, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}
			if got != tt.wantID {
				t.Fatalf("CreateProduct() id = %d, want %d", got, tt.wantID)
			}
		})
	}
}

func TestCatalogApp_ApproveProduct(t *testing.T) {
	type fields struct {
		txRepo      *txmocks.TxRepository
		productRepo *productmocks.ProductRepository
		shopRepo    *shopmocks.ShopRepository
		redisRepo   *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		actor    policy.Actor
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: admin approves pending product",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 9, Role: constant.RoleAdmin},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, SellerID: 5, Status: constant.ProductStatusPending,
				}, nil).Once()
				f.productRepo.On("UpdateStatus", mock.Anything, uint64(1), constant.ProductStatusActive).Return(nil).Once()
				f.redisRepo.On("InvalidateProduct", mock.Anything, uint64(1)).Return(nil).Once()
			},
		},
		{
			name: "error: seller cannot approve own product",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 5, Role: constant.RoleSeller},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
					ID: 1, SellerID: 5, Status: constant.ProductStatusPending,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name: "error: product not found",
			fields: fields{
				txRepo:      txmocks.NewTxRepository(t),
				productRepo: productmocks.NewProductRepository(t),
				shopRepo:    shopmocks.NewShopRepository(t),
				redisRepo:   redismocks.NewRepository(t),
			},
			actor: policy.Actor{UserID: 9, Role: constant.RoleAdmin},
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, uint64(1)).Return(nil, nil).Once()
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
			app := appcatalog.NewCatalogApp(tt.fields.txRepo, tt.fields.productRepo, tt.fields.shopRepo, tt.fields.redisRepo)

			err := app.ApproveProduct(context.Background(), tt.actor, 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApproveProduct() error = %v, wantErr %v", err, tt.wantErr)
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

func TestCatalogApp_SubmitForReview(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	productRepo := productmocks.NewProductRepository(t)
	shopRepo := shopmocks.NewShopRepository(t)
	redisRepo := redismocks.NewRepository(t)

	productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.ProductEntity{
		ID: 1, SellerID: 5, Status: constant.ProductStatusDraft,
	}, nil).Once()
	productRepo.On("UpdateStatus", mock.Anything, uint64(1), constant.ProductStatusPending).Return(nil).Once()
	redisRepo.On("InvalidateProduct", mock.Anything, uint64(1)).Return(nil).Once()

	app := appcatalog.NewCatalogApp(txRepo, productRepo, shopRepo, redisRepo)
	if err := app.SubmitForReview(context.Background(), policy.Actor{UserID: 5, Role: constant.RoleSeller}, 1); err != nil {
		t.Fatalf("SubmitForReview() error = %v", err)
	}
}

func TestCatalogApp_GetProduct(t *testing.T) {
	t.Run("cache miss falls through and fills the cache", func(t *testing.T) {
		txRepo := txmocks.NewTxRepository(t)
		productRepo := productmocks.NewProductRepository(t)
		shopRepo := shopmocks.NewShopRepository(t)
		redisRepo := redismocks.NewRepository(t)

		p := &model.ProductEntity{ID: 1, Name: "apple", Price: 120, Status: constant.ProductStatusActive}

		redisRepo.On("GetCachedProduct", mock.Anything, uint64(1)).Return(nil, nil).Once()
		productRepo.On("GetByID", mock.Anything, uint64(1)).Return(p, nil).Once()
		redisRepo.On("CacheProduct", mock.Anything, p, mock.Anything).Return(nil).Once()

		app := appcatalog.NewCatalogApp(txRepo, productRepo, shopRepo, redisRepo)
		got, err := app.GetProduct(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetProduct() error = %v", err)
		}
		if got.Name != "apple" {
			t.Fatalf("GetProduct() name = %q, want %q", got.Name, "apple")
		}
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		txRepo := txmocks.NewTxRepository(t)
		productRepo := productmocks.NewProductRepository(t)
		shopRepo := shopmocks.NewShopRepository(t)
		redisRepo := redismocks.NewRepository(t)

		redisRepo.On("GetCachedProduct", mock.Anything, uint64(1)).Return(&model.ProductEntity{
			ID: 1, Name: "apple",
		}, nil).Once()

		app := appcatalog.NewCatalogApp(txRepo, productRepo, shopRepo, redisRepo)
		got, err := app.GetProduct(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetProduct() error = %v", err)
		}
		if got.ID != 1 {
			t.Fatalf("GetProduct() id = %d, want 1", got.ID)
		}
	})
}

func TestCatalogApp_ListProducts(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	productRepo := productmocks.NewProductRepository(t)
	shopRepo := shopmocks.NewShopRepository(t)
	redisRepo := redismocks.NewRepository(t)

	// zero page and perPage fall back to defaults
	productRepo.On("List", mock.Anything, 1, 10).Return([]model.ProductListItem{
		{ID: 1, Name: "apple", Price: 120, Status: constant.ProductStatusActive},
	}, int64(1), nil).Once()

	app := appcatalog.NewCatalogApp(txRepo, productRepo, shopRepo, redisRepo)
	got, err := app.ListProducts(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if got.Page != 1 || got.PerPage != 10 || got.TotalCount != 1 {
		t.Fatalf("ListProducts() = %+v, want page 1 perPage 10 total 1", got)
	}
}
