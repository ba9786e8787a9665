package shop_test

import (
	"context"
	"errors"
	"testing"

	appshop "github.com/muhammadheryan/marketplace/application/shop"
	"github.com/muhammadheryan/marketplace/constant"
	shopmocks "github.com/muhammadheryan/marketplace/mocks/repository/shop"
	"github.com/muhammadheryan/marketplace/model"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestShopApp_GetStats(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(m *shopmocks.ShopRepository)
		want     *model.ShopStats
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: stats recomputed from source tables",
			mockCall: func(m *shopmocks.ShopRepository) {
				m.On("GetByID", mock.Anything, uint64(10)).Return(&model.ShopEntity{ID: 10, SellerID: 5}, nil).Once()
				m.On("Stats", mock.Anything, uint64(10)).Return(&model.ShopStats{
					ShopID:        10,
					TotalProducts: 3,
					TotalOrders:   7,
					TotalSales:    1240,
				}, nil).Once()
			},
			want: &model.ShopStats{ShopID: 10, TotalProducts: 3, TotalOrders: 7, TotalSales: 1240},
		},
		{
			name: "error: shop not found",
			mockCall: func(m *shopmocks.ShopRepository) {
				m.On("GetByID", mock.Anything, uint64(10)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: stats query fails",
			mockCall: func(m *shopmocks.ShopRepository) {
				m.On("GetByID", mock.Anything, uint64(10)).Return(&model.ShopEntity{ID: 10, SellerID: 5}, nil).Once()
				m.On("Stats", mock.Anything, uint64(10)).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := shopmocks.NewShopRepository(t)
			tt.mockCall(repo)

			app := appshop.NewShopApp(repo)
			got, err := app.GetStats(context.Background(), 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetStats() error = %v, wantErr %v", err, tt.wantErr)
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
			if *got != *tt.want {
				t.Fatalf("GetStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
