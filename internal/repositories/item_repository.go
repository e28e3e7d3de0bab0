package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/utils"
)

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context, page, size int) ([]*models.Item, int, error)
	SearchItemsByName(ctx context.Context, name string, page, size int) ([]*models.Item, int, error)
	ListItemsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Item, int, error)
	ListLowStockItems(ctx context.Context, threshold int) ([]*models.Item, error)
}

type itemRepository struct {
	DB *sql.DB
}

func NewItemRepo(db *sql.DB) ItemRepository {
	return &itemRepository{DB: db}
}

func (r *itemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO items (name, unit_price, stock_available, discount, qty_to_allow_discount, category_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING item_id, last_updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, item.Name, item.UnitPrice, item.StockAvailable, item.Discount, item.QtyToAllowDiscount, item.CategoryID).Scan(&item.ID, &item.LastUpdatedAt)
}

func (r *itemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.Item{}

	query := `SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at
			  FROM items
			  WHERE item_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&item.ID, &item.Name, &item.UnitPrice, &item.StockAvailable, &item.Discount, &item.QtyToAllowDiscount, &item.CategoryID, &item.LastUpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return item, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE items SET name = $1, unit_price = $2, stock_available = $3, discount = $4, qty_to_allow_discount = $5, category_id = $6, last_updated_at = NOW()
			  WHERE item_id = $7
			  RETURNING last_updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, item.Name, item.UnitPrice, item.StockAvailable, item.Discount, item.QtyToAllowDiscount, item.CategoryID, item.ID).Scan(&item.LastUpdatedAt)
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM items WHERE item_id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("querying database: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *itemRepository) ListItems(ctx context.Context, page, size int) ([]*models.Item, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM items`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at
			  FROM items
			  ORDER BY item_id
			  LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	return scanItems(rows, total)
}

// SearchItemsByName backs the billing screen's item picker. Matching is
// case-insensitive on any substring.
func (r *itemRepository) SearchItemsByName(ctx context.Context, name string, page, size int) ([]*models.Item, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pattern := "%" + name + "%"

	var total int

	countQuery := `SELECT COUNT(*) FROM items WHERE LOWER(name) LIKE LOWER($1)`

	err := r.DB.QueryRowContext(dbCtx, countQuery, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at
			  FROM items
			  WHERE LOWER(name) LIKE LOWER($1)
			  ORDER BY name
			  LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, pattern, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	return scanItems(rows, total)
}

func (r *itemRepository) ListItemsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Item, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM items WHERE category_id = $1`

	err := r.DB.QueryRowContext(dbCtx, countQuery, categoryID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at
			  FROM items
			  WHERE category_id = $1
			  ORDER BY item_id
			  LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, categoryID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	return scanItems(rows, total)
}

func (r *itemRepository) ListLowStockItems(ctx context.Context, threshold int) ([]*models.Item, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT item_id, name, unit_price, stock_available, discount, qty_to_allow_discount, category_id, last_updated_at
			  FROM items
			  WHERE stock_available <= $1
			  ORDER BY stock_available
	`

	rows, err := r.DB.QueryContext(dbCtx, query, threshold)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items, _, err := scanItems(rows, 0)

	return items, err
}

func scanItems(rows *sql.Rows, total int) ([]*models.Item, int, error) {
	var items []*models.Item

	for rows.Next() {
		item := &models.Item{}

		err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice, &item.StockAvailable, &item.Discount, &item.QtyToAllowDiscount, &item.CategoryID, &item.LastUpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
