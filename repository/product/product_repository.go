package product

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

// ProductRepository is the catalog store. Stock mutations are conditional
// updates keyed by product or variety id so that concurrent checkouts on
// the same counter can never both pass.
type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error)
	ListByShop(ctx context.Context, shopID uint64) ([]model.ProductListItem, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, p *model.ProductEntity) (uint64, error)
	UpdateStatus(ctx context.Context, id uint64, status constant.ProductStatus) error
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductEntity, error)
	DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, varietyID *uint64, qty int64) (int64, error)
	IncrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, varietyID *uint64, qty int64) (int64, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	listProductsBase = `SELECT id, shop_id, name, price, stock, status FROM product WHERE status = ?`

	countProductsQuery = `SELECT COUNT(*) FROM product WHERE status = ?`

	getProductQuery = `SELECT id, shop_id, seller_id, name, description, price, discounted_price, stock, min_stock, status, created_at, updated_at
FROM product WHERE id = ?`

	getVarietiesQuery = `SELECT id, product_id, name, price, stock, min_stock FROM product_variety WHERE product_id = ? ORDER BY id`
)

func (s *SQL) List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error) {
	offset := (page - 1) * perPage

	query := listProductsBase + " ORDER BY id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, constant.ProductStatusActive, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ProductListItem, 0)
	for rows.Next() {
		var it model.ProductListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsQuery, constant.ProductStatusActive); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) ListByShop(ctx context.Context, shopID uint64) ([]model.ProductListItem, error) {
	query := `SELECT id, shop_id, name, price, stock, status FROM product WHERE shop_id = ? ORDER BY id`
	rows, err := s.conn.QueryxContext(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProductListItem, 0)
	for rows.Next() {
		var it model.ProductListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductEntity, error) {
	var p model.ProductEntity
	if err := s.conn.QueryRowxContext(ctx, getProductQuery, id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	varieties, err := s.loadVarieties(ctx, s.conn, id)
	if err != nil {
		return nil, err
	}
	p.Varieties = varieties
	return &p, nil
}

func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, p *model.ProductEntity) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO product (shop_id, seller_id, name, description, price, discounted_price, stock, min_stock, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		p.ShopID, p.SellerID, p.Name, p.Description, p.Price, p.DiscountedPrice, p.Stock, p.MinStock, p.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, v := range p.Varieties {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_variety (product_id, name, price, stock, min_stock) VALUES (?, ?, ?, ?, ?)`,
			uint64(id), v.Name, v.Price, v.Stock, v.MinStock); err != nil {
			return 0, err
		}
	}
	return uint64(id), nil
}

func (s *SQL) UpdateStatus(ctx context.Context, id uint64, status constant.ProductStatus) error {
	res, err := s.conn.ExecContext(ctx, `UPDATE product SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetForUpdateTx locks the product row (and its variety rows) for the
// remainder of the transaction, so validate-then-decrement is atomic with
// respect to other checkouts.
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductEntity, error) {
	var p model.ProductEntity
	if err := tx.QueryRowxContext(ctx, getProductQuery+" FOR UPDATE", id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	varieties, err := s.loadVarieties(ctx, tx, id, "FOR UPDATE")
	if err != nil {
		return nil, err
	}
	p.Varieties = varieties
	return &p, nil
}

// DecrementStockTx decrements the counter the line item draws from, but
// only when enough stock remains. Returns the number of rows updated;
// zero means the guard rejected the decrement.
func (s *SQL) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, varietyID *uint64, qty int64) (int64, error) {
	var res sql.Result
	var err error
	if varietyID != nil {
		res, err = tx.ExecContext(ctx,
			`UPDATE product_variety SET stock = stock - ? WHERE id = ? AND product_id = ? AND stock >= ?`,
			qty, *varietyID, productID, qty)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE product SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			qty, productID, qty)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IncrementStockTx restores stock after a cancellation. Zero affected rows
// means the product or variety no longer exists; the caller treats that as
// an orphaned reversal, not a failure.
func (s *SQL) IncrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, varietyID *uint64, qty int64) (int64, error) {
	var res sql.Result
	var err error
	if varietyID != nil {
		res, err = tx.ExecContext(ctx,
			`UPDATE product_variety SET stock = stock + ? WHERE id = ? AND product_id = ?`,
			qty, *varietyID, productID)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE product SET stock = stock + ? WHERE id = ?`,
			qty, productID)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQL) loadVarieties(ctx context.Context, q sqlx.QueryerContext, productID uint64, suffix ...string) ([]model.VarietyEntity, error) {
	query := getVarietiesQuery
	if len(suffix) > 0 {
		query += " " + suffix[0]
	}
	rows, err := q.QueryxContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	varieties := make([]model.VarietyEntity, 0)
	for rows.Next() {
		var v model.VarietyEntity
		if err := rows.StructScan(&v); err != nil {
			return nil, err
		}
		varieties = append(varieties, v)
	}
	return varieties, nil
}
