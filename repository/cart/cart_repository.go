package cart

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CartRepository interface {
	GetItems(ctx context.Context, userID uint64) ([]model.CartItemEntity, error)
	UpsertItem(ctx context.Context, item *model.CartItemEntity) error
	RemoveItem(ctx context.Context, userID, productID uint64, varietyID *uint64) error
	Clear(ctx context.Context, userID uint64) error
	ClearTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error
}

func NewCartRepository(conn *sqlx.DB) CartRepository {
	return &SQL{conn: conn}
}

const getItemsQuery = `SELECT id, user_id, product_id, variety_id, quantity, created_at
FROM cart_item WHERE user_id = ? ORDER BY created_at, id`

func (s *SQL) GetItems(ctx context.Context, userID uint64) ([]model.CartItemEntity, error) {
	rows, err := s.conn.QueryxContext(ctx, getItemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CartItemEntity, 0)
	for rows.Next() {
		var it model.CartItemEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// UpsertItem replaces the quantity when the same product/variety pair is
// already in the cart. The cart never holds stock, so no guard is needed.
func (s *SQL) UpsertItem(ctx context.Context, item *model.CartItemEntity) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO cart_item (user_id, product_id, variety_id, quantity, created_at)
VALUES (?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)`,
		item.UserID, item.ProductID, item.VarietyID, item.Quantity)
	return err
}

func (s *SQL) RemoveItem(ctx context.Context, userID, productID uint64, varietyID *uint64) error {
	if varietyID != nil {
		_, err := s.conn.ExecContext(ctx,
			`DELETE FROM cart_item WHERE user_id = ? AND product_id = ? AND variety_id = ?`,
			userID, productID, *varietyID)
		return err
	}
	_, err := s.conn.ExecContext(ctx,
		`DELETE FROM cart_item WHERE user_id = ? AND product_id = ? AND variety_id IS NULL`,
		userID, productID)
	return err
}

func (s *SQL) Clear(ctx context.Context, userID uint64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM cart_item WHERE user_id = ?`, userID)
	return err
}

// ClearTx empties the cart inside the checkout transaction so a failed
// checkout leaves the cart untouched.
func (s *SQL) ClearTx(ctx context.Context, tx *sqlx.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM cart_item WHERE user_id = ?`, userID)
	return err
}
