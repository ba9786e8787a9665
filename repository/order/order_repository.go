package order

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity, items []model.OrderItemEntity, actor string) (uint64, error)
	GetDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error)
	GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItemEntity, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus, expectedVersion int64) (int64, error)
	AppendHistoryTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus, actor, message string) error
	GetWithItems(ctx context.Context, orderID uint64) (*model.OrderResponse, error)
	ListByBuyer(ctx context.Context, userID uint64) ([]model.OrderSummary, error)
	ListByShop(ctx context.Context, shopID uint64) ([]model.OrderSummary, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

// InsertOrderTx persists the order, its snapshotted line items and the
// initial history entry in the caller's transaction.
func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity, items []model.OrderItemEntity, actor string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO `order` (user_id, total, payment_method, status, version, created_at) VALUES (?, ?, ?, ?, 1, NOW())",
		order.UserID, order.Total, order.PaymentMethod, order.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	orderID := uint64(id)

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_item (order_id, product_id, shop_id, variety_id, unit_price, quantity) VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, it.ProductID, it.ShopID, it.VarietyID, it.UnitPrice, it.Quantity); err != nil {
			return 0, err
		}
	}

	if err := r.AppendHistoryTx(ctx, tx, orderID, order.Status, actor, ""); err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetDetailTx locks the order row so two concurrent status updates on the
// same order serialize behind the lock.
func (r *SQL) GetDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	row := tx.QueryRowxContext(ctx, "SELECT id, user_id, status, version FROM `order` WHERE id = ? FOR UPDATE", orderID)
	if err := row.StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItemEntity, error) {
	rows, err := tx.QueryxContext(ctx,
		`SELECT id, order_id, product_id, shop_id, variety_id, unit_price, quantity FROM order_item WHERE order_id = ? ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItemEntity, 0)
	for rows.Next() {
		var it model.OrderItemEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// UpdateStatusTx bumps the version together with the status; zero affected
// rows means another writer got there first.
func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus, expectedVersion int64) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE `order` SET status = ?, version = version + 1 WHERE id = ? AND version = ?",
		status, orderID, expectedVersion)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQL) AppendHistoryTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus, actor, message string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO order_status_history (order_id, status, actor, message, created_at) VALUES (?, ?, ?, ?, NOW())`,
		orderID, status, actor, message)
	return err
}

func (r *SQL) GetWithItems(ctx context.Context, orderID uint64) (*model.OrderResponse, error) {
	var order model.OrderEntity
	row := r.conn.QueryRowxContext(ctx,
		"SELECT id, user_id, total, payment_method, status, version, created_at FROM `order` WHERE id = ?", orderID)
	if err := row.StructScan(&order); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	resp := &model.OrderResponse{
		ID:            order.ID,
		Customer:      order.UserID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		Items:         make([]model.OrderItemView, 0),
		StatusHistory: make([]model.StatusHistoryView, 0),
	}

	itemRows, err := r.conn.QueryxContext(ctx,
		`SELECT id, order_id, product_id, shop_id, variety_id, unit_price, quantity FROM order_item WHERE order_id = ? ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it model.OrderItemEntity
		if err := itemRows.StructScan(&it); err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, model.OrderItemView{
			Product:   it.ProductID,
			Shop:      it.ShopID,
			Variety:   it.VarietyID,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	histRows, err := r.conn.QueryxContext(ctx,
		`SELECT id, order_id, status, actor, message, created_at FROM order_status_history WHERE order_id = ? ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer histRows.Close()
	for histRows.Next() {
		var h model.StatusHistoryEntity
		if err := histRows.StructScan(&h); err != nil {
			return nil, err
		}
		resp.StatusHistory = append(resp.StatusHistory, model.StatusHistoryView{
			Status:    h.Status,
			Timestamp: h.CreatedAt,
			Actor:     h.Actor,
			Message:   h.Message,
		})
	}

	return resp, nil
}

const listSummaryColumns = "o.id, o.user_id, o.total, o.status, o.created_at"

func (r *SQL) ListByBuyer(ctx context.Context, userID uint64) ([]model.OrderSummary, error) {
	query := "SELECT " + listSummaryColumns + " FROM `order` o WHERE o.user_id = ? ORDER BY o.id DESC"
	return r.listSummaries(ctx, query, userID)
}

// ListByShop returns orders containing at least one line item from the
// shop; a multi-shop order shows up for each of its sellers.
func (r *SQL) ListByShop(ctx context.Context, shopID uint64) ([]model.OrderSummary, error) {
	query := "SELECT DISTINCT " + listSummaryColumns +
		" FROM `order` o JOIN order_item oi ON oi.order_id = o.id WHERE oi.shop_id = ? ORDER BY o.id DESC"
	return r.listSummaries(ctx, query, shopID)
}

func (r *SQL) listSummaries(ctx context.Context, query string, arg any) ([]model.OrderSummary, error) {
	rows, err := r.conn.QueryxContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]model.OrderSummary, 0)
	for rows.Next() {
		var s model.OrderSummary
		if err := rows.StructScan(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
