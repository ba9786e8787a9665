package catalog

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	productrepo "github.com/muhammadheryan/marketplace/repository/product"
	redisrepo "github.com/muhammadheryan/marketplace/repository/redis"
	shoprepo "github.com/muhammadheryan/marketplace/repository/shop"
	txrepo "github.com/muhammadheryan/marketplace/repository/tx"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"github.com/muhammadheryan/marketplace/utils/policy"
	"go.uber.org/zap"
)

const productCacheTTL = 5 * time.Minute

// CatalogApp owns the product lifecycle: sellers create drafts and submit
// them for review, admins approve or reject, and only active products are
// purchasable.
type CatalogApp interface {
	CreateProduct(ctx context.Context, actor policy.Actor, req *model.CreateProductRequest) (uint64, error)
	SubmitForReview(ctx context.Context, actor policy.Actor, productID uint64) error
	ApproveProduct(ctx context.Context, actor policy.Actor, productID uint64) error
	RejectProduct(ctx context.Context, actor policy.Actor, productID uint64) error
	ArchiveProduct(ctx context.Context, actor policy.Actor, productID uint64) error
	GetProduct(ctx context.Context, productID uint64) (*model.ProductEntity, error)
	ListProducts(ctx context.Context, page, perPage int) (*model.ProductListResponse, error)
	ListShopProducts(ctx context.Context, actor policy.Actor, shopID uint64) ([]model.ProductListItem, error)
}

type catalogAppImpl struct {
	txRepo      txrepo.TxRepository
	productRepo productrepo.ProductRepository
	shopRepo    shoprepo.ShopRepository
	redisRepo   redisrepo.Repository
}

func NewCatalogApp(txRepo txrepo.TxRepository, productRepo productrepo.ProductRepository, shopRepo shoprepo.ShopRepository, redisRepo redisrepo.Repository) CatalogApp {
	return &catalogAppImpl{
		txRepo:      txRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		redisRepo:   redisRepo,
	}
}

func (s *catalogAppImpl) CreateProduct(ctx context.Context, actor policy.Actor, req *model.CreateProductRequest) (uint64, error) {
	if req.DiscountedPrice != nil && *req.DiscountedPrice > req.Price {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	shop, err := s.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		logger.Error("[CreateProduct] get shop", zap.Uint64("shop_id", req.ShopID), zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	if shop == nil {
		return 0, errors.SetCustomError(constant.ErrNotFound)
	}
	if !policy.CanManageProduct(actor, shop.SellerID) {
		return 0, errors.SetCustomError(constant.ErrForbidden)
	}

	entity := &model.ProductEntity{
		ShopID:          req.ShopID,
		SellerID:        shop.SellerID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Stock:           req.Stock,
		MinStock:        req.MinStock,
		Status:          constant.ProductStatusDraft,
	}
	for _, v := range req.Varieties {
		entity.Varieties = append(entity.Varieties, model.VarietyEntity{
			Name:     v.Name,
			Price:    v.Price,
			Stock:    v.Stock,
			MinStock: v.MinStock,
		})
	}

	var productID uint64
	err = txrepo.WithinTx(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		id, err := s.productRepo.CreateTx(ctx, tx, entity)
		if err != nil {
			return err
		}
		productID = id
		return nil
	})
	if err != nil {
		logger.Error("[CreateProduct] create product", zap.String("error", err.Error()))
		return 0, errors.SetCustomError(constant.ErrInternal)
	}
	return productID, nil
}

func (s *catalogAppImpl) SubmitForReview(ctx context.Context, actor policy.Actor, productID uint64) error {
	return s.changeStatus(ctx, actor, productID, constant.ProductStatusPending, false)
}

// ApproveProduct makes the product purchasable.
func (s *catalogAppImpl) ApproveProduct(ctx context.Context, actor policy.Actor, productID uint64) error {
	return s.changeStatus(ctx, actor, productID, constant.ProductStatusActive, true)
}

func (s *catalogAppImpl) RejectProduct(ctx context.Context, actor policy.Actor, productID uint64) error {
	return s.changeStatus(ctx, actor, productID, constant.ProductStatusRejected, true)
}

func (s *catalogAppImpl) ArchiveProduct(ctx context.Context, actor policy.Actor, productID uint64) error {
	return s.changeStatus(ctx, actor, productID, constant.ProductStatusArchived, false)
}

func (s *catalogAppImpl) changeStatus(ctx context.Context, actor policy.Actor, productID uint64, status constant.ProductStatus, moderation bool) error {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[ChangeProductStatus] get product", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
			"product_id": productID,
		})
	}

	if moderation {
		if !policy.CanModerateProduct(actor) {
			return errors.SetCustomError(constant.ErrForbidden)
		}
	} else if !policy.CanManageProduct(actor, p.SellerID) {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	if err := s.productRepo.UpdateStatus(ctx, productID, status); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
				"product_id": productID,
			})
		}
		logger.Error("[ChangeProductStatus] update status", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.InvalidateProduct(ctx, productID); err != nil {
		logger.Warn("[ChangeProductStatus] invalidate cache", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
	}
	return nil
}

// GetProduct serves the detail view through the Redis cache; misses fall
// through to the catalog store.
func (s *catalogAppImpl) GetProduct(ctx context.Context, productID uint64) (*model.ProductEntity, error) {
	if cached, err := s.redisRepo.GetCachedProduct(ctx, productID); err == nil && cached != nil {
		return cached, nil
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[GetProduct] get product", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
			"product_id": productID,
		})
	}

	if err := s.redisRepo.CacheProduct(ctx, p, productCacheTTL); err != nil {
		logger.Warn("[GetProduct] cache product", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
	}
	return p, nil
}

func (s *catalogAppImpl) ListProducts(ctx context.Context, page, perPage int) (*model.ProductListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	items, total, err := s.productRepo.List(ctx, page, perPage)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *catalogAppImpl) ListShopProducts(ctx context.Context, actor policy.Actor, shopID uint64) ([]model.ProductListItem, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		logger.Error("[ListShopProducts] get shop", zap.Uint64("shop_id", shopID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if shop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if !policy.CanManageProduct(actor, shop.SellerID) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	items, err := s.productRepo.ListByShop(ctx, shopID)
	if err != nil {
		logger.Error("[ListShopProducts] list products", zap.Uint64("shop_id", shopID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}
