package shop

import (
	"context"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	shoprepo "github.com/muhammadheryan/marketplace/repository/shop"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
)

// ShopApp is the statistics projector: a pure read model recomputed from
// the product and order tables on each call.
type ShopApp interface {
	GetStats(ctx context.Context, shopID uint64) (*model.ShopStats, error)
}

type shopAppImpl struct {
	shopRepo shoprepo.ShopRepository
}

func NewShopApp(shopRepo shoprepo.ShopRepository) ShopApp {
	return &shopAppImpl{shopRepo: shopRepo}
}

func (s *shopAppImpl) GetStats(ctx context.Context, shopID uint64) (*model.ShopStats, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		logger.Error("[GetStats] get shop", zap.Uint64("shop_id", shopID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if shop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	stats, err := s.shopRepo.Stats(ctx, shopID)
	if err != nil {
		logger.Error("[GetStats] compute stats", zap.Uint64("shop_id", shopID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return stats, nil
}
