package order

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	orderrepo "github.com/muhammadheryan/marketplace/repository/order"
	productrepo "github.com/muhammadheryan/marketplace/repository/product"
	shoprepo "github.com/muhammadheryan/marketplace/repository/shop"
	txrepo "github.com/muhammadheryan/marketplace/repository/tx"
	"github.com/muhammadheryan/marketplace/thirdparty/rabbitmq"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"github.com/muhammadheryan/marketplace/utils/policy"
	"go.uber.org/zap"
)

// OrderApp drives the order status state machine and the order read side.
// Cancellation reverses the snapshotted stock quantities in the same
// transaction as the status write.
type OrderApp interface {
	UpdateStatus(ctx context.Context, actor policy.Actor, orderID uint64, req *model.UpdateStatusRequest) (*model.OrderResponse, error)
	CancelOrder(ctx context.Context, actor policy.Actor, orderID uint64) (*model.OrderResponse, error)
	GetOrder(ctx context.Context, actor policy.Actor, orderID uint64) (*model.OrderResponse, error)
	ListByBuyer(ctx context.Context, actor policy.Actor, buyerID uint64) ([]model.OrderSummary, error)
	ListByShop(ctx context.Context, actor policy.Actor, shopID uint64) ([]model.OrderSummary, error)
}

type orderAppImpl struct {
	txRepo      txrepo.TxRepository
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	shopRepo    shoprepo.ShopRepository
	publisher   *rabbitmq.Publisher
}

func NewOrderApp(txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, shopRepo shoprepo.ShopRepository, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		publisher:   publisher,
	}
}

func (s *orderAppImpl) UpdateStatus(ctx context.Context, actor policy.Actor, orderID uint64, req *model.UpdateStatusRequest) (*model.OrderResponse, error) {
	if !KnownStatus(req.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	actorShops, err := s.actorShops(ctx, actor)
	if err != nil {
		return nil, err
	}

	err = txrepo.WithinTx(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		detail, err := s.orderRepo.GetDetailTx(ctx, tx, orderID)
		if err != nil {
			logger.Error("[UpdateStatus] get order detail", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if detail == nil {
			return errors.SetCustomError(constant.ErrNotFound)
		}

		items, err := s.orderRepo.GetItemsTx(ctx, tx, orderID)
		if err != nil {
			logger.Error("[UpdateStatus] get order items", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}

		ref := policy.OrderRef{CustomerID: detail.UserID, ShopIDs: orderShops(items)}
		if !policy.CanDriveTransition(actor, ref, actorShops, detail.Status, req.Status) {
			return errors.SetCustomError(constant.ErrForbidden)
		}
		if !CanTransition(detail.Status, req.Status) {
			return errors.SetCustomErrorWithDetails(constant.ErrInvalidStatusTransition, map[string]any{
				"from": detail.Status,
				"to":   req.Status,
			})
		}

		if req.Status == constant.OrderStatusCancelled {
			if err := s.reverseStockTx(ctx, tx, orderID, items); err != nil {
				return err
			}
		}

		affected, err := s.orderRepo.UpdateStatusTx(ctx, tx, orderID, req.Status, detail.Version)
		if err != nil {
			logger.Error("[UpdateStatus] update status", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if affected == 0 {
			return errors.SetCustomError(constant.ErrConcurrentModification)
		}

		if err := s.orderRepo.AppendHistoryTx(ctx, tx, orderID, req.Status, actor.String(), req.Message); err != nil {
			logger.Error("[UpdateStatus] append history", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		return nil
	})
	if err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) {
			return nil, ce
		}
		logger.Error("[UpdateStatus] tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	resp, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil || resp == nil {
		logger.Error("[UpdateStatus] load order", zap.Uint64("order_id", orderID), zap.Any("error", err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		msg := rabbitmq.OrderEventMessage{
			OrderID:    resp.ID,
			CustomerID: resp.Customer,
			Status:     resp.Status,
			Total:      resp.Total,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishOrderEvent(msg); err != nil {
			logger.Error("[UpdateStatus] publish order event", zap.String("error", err.Error()))
		}
	}
	return resp, nil
}

func (s *orderAppImpl) CancelOrder(ctx context.Context, actor policy.Actor, orderID uint64) (*model.OrderResponse, error) {
	return s.UpdateStatus(ctx, actor, orderID, &model.UpdateStatusRequest{Status: constant.OrderStatusCancelled})
}

// reverseStockTx restores each line item's quantity to the same counter
// the checkout decremented, using the snapshotted quantities. It never
// re-resolves the product: a product deleted since the order was placed
// makes the reversal a logged no-op for that line, not a failure.
func (s *orderAppImpl) reverseStockTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItemEntity) error {
	for _, it := range items {
		affected, err := s.productRepo.IncrementStockTx(ctx, tx, it.ProductID, it.VarietyID, it.Quantity)
		if err != nil {
			logger.Error("[CancelOrder] reverse stock", zap.Uint64("order_id", orderID), zap.Uint64("product_id", it.ProductID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if affected == 0 {
			logger.Warn("[CancelOrder] orphaned reversal",
				zap.Uint64("order_id", orderID),
				zap.Uint64("product_id", it.ProductID),
				zap.Any("variety_id", it.VarietyID),
				zap.Int64("quantity", it.Quantity),
			)
		}
	}
	return nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, actor policy.Actor, orderID uint64) (*model.OrderResponse, error) {
	resp, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if resp == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	actorShops, err := s.actorShops(ctx, actor)
	if err != nil {
		return nil, err
	}
	ref := policy.OrderRef{CustomerID: resp.Customer, ShopIDs: viewShops(resp.Items)}
	if !policy.CanViewOrder(actor, ref, actorShops) {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return resp, nil
}

func (s *orderAppImpl) ListByBuyer(ctx context.Context, actor policy.Actor, buyerID uint64) ([]model.OrderSummary, error) {
	if !actor.IsAdmin() && actor.UserID != buyerID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	summaries, err := s.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		logger.Error("[ListByBuyer] list orders", zap.Uint64("buyer_id", buyerID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return summaries, nil
}

func (s *orderAppImpl) ListByShop(ctx context.Context, actor policy.Actor, shopID uint64) ([]model.OrderSummary, error) {
	if !actor.IsAdmin() {
		shop, err := s.shopRepo.GetByID(ctx, shopID)
		if err != nil {
			logger.Error("[ListByShop] get shop", zap.Uint64("shop_id", shopID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if shop == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		if shop.SellerID != actor.UserID {
			return nil, errors.SetCustomError(constant.ErrForbidden)
		}
	}

	summaries, err := s.orderRepo.ListByShop(ctx, shopID)
	if err != nil {
		logger.Error("[ListByShop] list orders", zap.Uint64("shop_id", shopID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return summaries, nil
}

func (s *orderAppImpl) actorShops(ctx context.Context, actor policy.Actor) ([]uint64, error) {
	if actor.Role != constant.RoleSeller {
		return nil, nil
	}
	shops, err := s.shopRepo.GetShopIDsBySeller(ctx, actor.UserID)
	if err != nil {
		logger.Error("[OrderApp] get seller shops", zap.Uint64("seller_id", actor.UserID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return shops, nil
}

func orderShops(items []model.OrderItemEntity) []uint64 {
	seen := make(map[uint64]bool, len(items))
	shops := make([]uint64, 0, len(items))
	for _, it := range items {
		if !seen[it.ShopID] {
			seen[it.ShopID] = true
			shops = append(shops, it.ShopID)
		}
	}
	return shops
}

func viewShops(items []model.OrderItemView) []uint64 {
	seen := make(map[uint64]bool, len(items))
	shops := make([]uint64, 0, len(items))
	for _, it := range items {
		if !seen[it.Shop] {
			seen[it.Shop] = true
			shops = append(shops, it.Shop)
		}
	}
	return shops
}
