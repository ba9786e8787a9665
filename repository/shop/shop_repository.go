package shop

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/marketplace/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ShopRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.ShopEntity, error)
	GetShopIDsBySeller(ctx context.Context, sellerID uint64) ([]uint64, error)
	Stats(ctx context.Context, shopID uint64) (*model.ShopStats, error)
}

func NewShopRepository(conn *sqlx.DB) ShopRepository {
	return &SQL{conn: conn}
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ShopEntity, error) {
	var shop model.ShopEntity
	row := s.conn.QueryRowxContext(ctx, `SELECT id, seller_id, name, created_at, updated_at FROM shop WHERE id = ?`, id)
	if err := row.StructScan(&shop); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (s *SQL) GetShopIDsBySeller(ctx context.Context, sellerID uint64) ([]uint64, error) {
	rows, err := s.conn.QueryxContext(ctx, `SELECT id FROM shop WHERE seller_id = ?`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Stats recomputes the shop aggregates from the product and order tables
// on every call. Full scans, but always consistent with the source of
// truth; cancelled orders do not count towards sales.
func (s *SQL) Stats(ctx context.Context, shopID uint64) (*model.ShopStats, error) {
	stats := &model.ShopStats{ShopID: shopID}

	if err := s.conn.GetContext(ctx, &stats.TotalProducts,
		`SELECT COUNT(*) FROM product WHERE shop_id = ?`, shopID); err != nil {
		return nil, err
	}

	if err := s.conn.GetContext(ctx, &stats.TotalOrders,
		"SELECT COUNT(DISTINCT o.id) FROM `order` o JOIN order_item oi ON oi.order_id = o.id WHERE oi.shop_id = ? AND o.status != 'cancelled'",
		shopID); err != nil {
		return nil, err
	}

	var sales sql.NullFloat64
	if err := s.conn.GetContext(ctx, &sales,
		"SELECT SUM(oi.unit_price * oi.quantity) FROM order_item oi JOIN `order` o ON o.id = oi.order_id WHERE oi.shop_id = ? AND o.status != 'cancelled'",
		shopID); err != nil {
		return nil, err
	}
	if sales.Valid {
		stats.TotalSales = sales.Float64
	}

	return stats, nil
}
