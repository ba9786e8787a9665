package cart

import (
	"context"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	cartrepo "github.com/muhammadheryan/marketplace/repository/cart"
	productrepo "github.com/muhammadheryan/marketplace/repository/product"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
)

// CartApp manages a buyer's pending selections. The cart holds no stock;
// availability shown here is informational and re-checked at checkout.
type CartApp interface {
	AddItem(ctx context.Context, buyerID uint64, req *model.CartItemRequest) error
	RemoveItem(ctx context.Context, buyerID, productID uint64, varietyID *uint64) error
	GetCart(ctx context.Context, buyerID uint64) (*model.CartResponse, error)
	ClearCart(ctx context.Context, buyerID uint64) error
}

type cartAppImpl struct {
	cartRepo    cartrepo.CartRepository
	productRepo productrepo.ProductRepository
}

func NewCartApp(cartRepo cartrepo.CartRepository, productRepo productrepo.ProductRepository) CartApp {
	return &cartAppImpl{cartRepo: cartRepo, productRepo: productRepo}
}

// AddItem upserts the product/variety pair; adding an existing pair
// replaces its quantity.
func (s *cartAppImpl) AddItem(ctx context.Context, buyerID uint64, req *model.CartItemRequest) error {
	if req.Quantity <= 0 {
		return errors.SetCustomErrorWithDetails(constant.ErrInvalidQuantity, map[string]any{
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
		})
	}

	p, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		logger.Error("[AddItem] get product", zap.Uint64("product_id", req.ProductID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
			"product_id": req.ProductID,
		})
	}
	if p.Status != constant.ProductStatusActive {
		return errors.SetCustomErrorWithDetails(constant.ErrProductNotActive, map[string]any{
			"product_id": req.ProductID,
			"status":     p.Status,
		})
	}
	if req.VarietyID != nil {
		if _, ok := p.AvailableStock(req.VarietyID); !ok {
			return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
				"product_id": req.ProductID,
				"variety_id": *req.VarietyID,
			})
		}
	}

	err = s.cartRepo.UpsertItem(ctx, &model.CartItemEntity{
		UserID:    buyerID,
		ProductID: req.ProductID,
		VarietyID: req.VarietyID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Error("[AddItem] upsert cart item", zap.Uint64("buyer_id", buyerID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *cartAppImpl) RemoveItem(ctx context.Context, buyerID, productID uint64, varietyID *uint64) error {
	if err := s.cartRepo.RemoveItem(ctx, buyerID, productID, varietyID); err != nil {
		logger.Error("[RemoveItem] remove cart item", zap.Uint64("buyer_id", buyerID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// GetCart resolves the stored selections against the catalog. Items whose
// product has since vanished or been deactivated are skipped rather than
// failing the whole view.
func (s *cartAppImpl) GetCart(ctx context.Context, buyerID uint64) (*model.CartResponse, error) {
	items, err := s.cartRepo.GetItems(ctx, buyerID)
	if err != nil {
		logger.Error("[GetCart] get cart items", zap.Uint64("buyer_id", buyerID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	resp := &model.CartResponse{Items: make([]model.CartView, 0, len(items))}
	for _, item := range items {
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("[GetCart] get product", zap.Uint64("product_id", item.ProductID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if p == nil || p.Status != constant.ProductStatusActive {
			continue
		}

		unitPrice, ok := p.EffectivePrice(item.VarietyID)
		if !ok {
			continue
		}
		available, _ := p.AvailableStock(item.VarietyID)

		view := model.CartView{
			ProductID:      item.ProductID,
			VarietyID:      item.VarietyID,
			ProductName:    p.Name,
			UnitPrice:      unitPrice,
			Quantity:       item.Quantity,
			AvailableStock: available,
		}
		if item.VarietyID != nil {
			for _, v := range p.Varieties {
				if v.ID == *item.VarietyID {
					view.VarietyName = v.Name
				}
			}
		}
		resp.Items = append(resp.Items, view)
		resp.Total += unitPrice * float64(item.Quantity)
	}
	return resp, nil
}

func (s *cartAppImpl) ClearCart(ctx context.Context, buyerID uint64) error {
	if err := s.cartRepo.Clear(ctx, buyerID); err != nil {
		logger.Error("[ClearCart] clear cart", zap.Uint64("buyer_id", buyerID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
