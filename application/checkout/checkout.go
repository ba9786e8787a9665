package checkout

import (
	"context"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	cartrepo "github.com/muhammadheryan/marketplace/repository/cart"
	orderrepo "github.com/muhammadheryan/marketplace/repository/order"
	productrepo "github.com/muhammadheryan/marketplace/repository/product"
	txrepo "github.com/muhammadheryan/marketplace/repository/tx"
	"github.com/muhammadheryan/marketplace/thirdparty/rabbitmq"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"github.com/muhammadheryan/marketplace/utils/policy"
	"go.uber.org/zap"
)

// CheckoutApp converts a buyer's requested line items into one committed
// order, or fails the whole checkout with no stock mutated. Stock is
// decremented directly at commit; there is no separate hold phase.
type CheckoutApp interface {
	Checkout(ctx context.Context, buyerID uint64, req *model.CheckoutRequest) (*model.OrderResponse, error)
	CheckoutCart(ctx context.Context, buyerID uint64, req *model.CartCheckoutRequest) (*model.OrderResponse, error)
}

type checkoutAppImpl struct {
	txRepo      txrepo.TxRepository
	productRepo productrepo.ProductRepository
	orderRepo   orderrepo.OrderRepository
	cartRepo    cartrepo.CartRepository
	publisher   *rabbitmq.Publisher
}

func NewCheckoutApp(txRepo txrepo.TxRepository, productRepo productrepo.ProductRepository, orderRepo orderrepo.OrderRepository, cartRepo cartrepo.CartRepository, publisher *rabbitmq.Publisher) CheckoutApp {
	return &checkoutAppImpl{
		txRepo:      txRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
	}
}

func (s *checkoutAppImpl) Checkout(ctx context.Context, buyerID uint64, req *model.CheckoutRequest) (*model.OrderResponse, error) {
	return s.checkout(ctx, buyerID, req.Items, req.PaymentMethod, false)
}

// CheckoutCart checks out the buyer's current cart and empties it in the
// same transaction, so a failed checkout leaves the cart intact.
func (s *checkoutAppImpl) CheckoutCart(ctx context.Context, buyerID uint64, req *model.CartCheckoutRequest) (*model.OrderResponse, error) {
	cartItems, err := s.cartRepo.GetItems(ctx, buyerID)
	if err != nil {
		logger.Error("[CheckoutCart] get cart items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(cartItems) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	items := make([]model.CheckoutItem, 0, len(cartItems))
	for _, ci := range cartItems {
		items = append(items, model.CheckoutItem{
			ProductID: ci.ProductID,
			VarietyID: ci.VarietyID,
			Quantity:  ci.Quantity,
		})
	}
	return s.checkout(ctx, buyerID, items, req.PaymentMethod, true)
}

func (s *checkoutAppImpl) checkout(ctx context.Context, buyerID uint64, items []model.CheckoutItem, paymentMethod string, clearCart bool) (*model.OrderResponse, error) {
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.SetCustomErrorWithDetails(constant.ErrInvalidQuantity, map[string]any{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			})
		}
	}

	var orderID uint64
	err := txrepo.WithinTx(ctx, s.txRepo, func(tx *sqlx.Tx) error {
		// phase 1: lock and validate every line item in request order.
		// Nothing is decremented until all of them pass, so a failure on
		// item N never strands decrements from items 1..N-1.
		products := make([]*model.ProductEntity, len(items))
		requested := make(map[counterKey]int64, len(items))
		for i, item := range items {
			p, err := s.productRepo.GetForUpdateTx(ctx, tx, item.ProductID)
			if err != nil {
				logger.Error("[Checkout] get product", zap.Uint64("product_id", item.ProductID), zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
			if p == nil {
				return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
					"product_id": item.ProductID,
				})
			}
			if p.Status != constant.ProductStatusActive {
				return errors.SetCustomErrorWithDetails(constant.ErrProductNotActive, map[string]any{
					"product_id": item.ProductID,
					"status":     p.Status,
				})
			}
			available, ok := p.AvailableStock(item.VarietyID)
			if !ok {
				return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
					"product_id": item.ProductID,
					"variety_id": item.VarietyID,
				})
			}
			// cumulative per counter, so two line items drawing from the
			// same stock cannot jointly pass what neither could alone
			key := newCounterKey(item)
			requested[key] += item.Quantity
			if available < requested[key] {
				return insufficientStockError(item, available-requested[key]+item.Quantity)
			}
			products[i] = p
		}

		// phase 2: decrement each counter and snapshot unit prices. The
		// conditional update backstops the validate phase when one product
		// appears in several line items.
		orderItems := make([]model.OrderItemEntity, 0, len(items))
		var total float64
		for i, item := range items {
			affected, err := s.productRepo.DecrementStockTx(ctx, tx, item.ProductID, item.VarietyID, item.Quantity)
			if err != nil {
				logger.Error("[Checkout] decrement stock", zap.Uint64("product_id", item.ProductID), zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
			if affected == 0 {
				return insufficientStockError(item, 0)
			}

			unitPrice, ok := products[i].EffectivePrice(item.VarietyID)
			if !ok {
				return errors.SetCustomErrorWithDetails(constant.ErrProductNotFound, map[string]any{
					"product_id": item.ProductID,
					"variety_id": item.VarietyID,
				})
			}
			orderItems = append(orderItems, model.OrderItemEntity{
				ProductID: item.ProductID,
				ShopID:    products[i].ShopID,
				VarietyID: item.VarietyID,
				UnitPrice: unitPrice,
				Quantity:  item.Quantity,
			})
			total += unitPrice * float64(item.Quantity)
		}

		actor := policy.Actor{UserID: buyerID, Role: constant.RoleBuyer}
		id, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.OrderEntity{
			UserID:        buyerID,
			Total:         total,
			PaymentMethod: paymentMethod,
			Status:        constant.OrderStatusPending,
		}, orderItems, actor.String())
		if err != nil {
			logger.Error("[Checkout] insert order", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		orderID = id

		if clearCart {
			if err := s.cartRepo.ClearTx(ctx, tx, buyerID); err != nil {
				logger.Error("[Checkout] clear cart", zap.String("error", err.Error()))
				return errors.SetCustomError(constant.ErrInternal)
			}
		}
		return nil
	})
	if err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) {
			return nil, ce
		}
		logger.Error("[Checkout] tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	resp, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil || resp == nil {
		logger.Error("[Checkout] load created order", zap.Uint64("order_id", orderID), zap.Any("error", err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if s.publisher != nil {
		msg := rabbitmq.OrderEventMessage{
			OrderID:    resp.ID,
			CustomerID: resp.Customer,
			Status:     resp.Status,
			Total:      resp.Total,
			OccurredAt: resp.CreatedAt,
		}
		if err := s.publisher.PublishOrderEvent(msg); err != nil {
			logger.Error("[Checkout] publish order event", zap.String("error", err.Error()))
		}
	}

	return resp, nil
}

type counterKey struct {
	productID uint64
	varietyID uint64
	isVariety bool
}

func newCounterKey(item model.CheckoutItem) counterKey {
	k := counterKey{productID: item.ProductID}
	if item.VarietyID != nil {
		k.varietyID = *item.VarietyID
		k.isVariety = true
	}
	return k
}

func insufficientStockError(item model.CheckoutItem, available int64) errors.CustomError {
	details := map[string]any{
		"product_id": item.ProductID,
		"requested":  item.Quantity,
		"available":  available,
	}
	if item.VarietyID != nil {
		details["variety_id"] = *item.VarietyID
	}
	return errors.SetCustomErrorWithDetails(constant.ErrInsufficientStock, details)
}
