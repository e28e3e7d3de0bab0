package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/utils"
	"github.com/shopspring/decimal"
)

// ErrInsufficientStock aborts a sale whose stock guard failed at commit time.
// The pre-check in the service narrows the window; this closes it.
var ErrInsufficientStock = errors.New("insufficient stock for sale item")

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *models.Sale) error
	GetSaleByID(ctx context.Context, id int64) (*models.Sale, error)
	ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error)
	ListSalesByCustomer(ctx context.Context, customerID int64, page, size int) ([]*models.Sale, int, error)
	UpdateSalePayment(ctx context.Context, id int64, paid decimal.Decimal) (*models.Sale, error)
}

type saleRepository struct {
	DB *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepository{DB: db}
}

// CreateSale persists the sale header, its frozen lines, and the matching
// stock decrements in one transaction. The stock guard inside the UPDATE makes
// overselling impossible even under concurrent checkouts.
func (r *saleRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer tx.Rollback()

	saleQuery := `INSERT INTO sales (customer_id, sub_total, total_discount, total_amount, paid, balance)
				  VALUES ($1, $2, $3, $4, $5, $6)
				  RETURNING sale_id, created_at
	`

	err = tx.QueryRowContext(dbCtx, saleQuery, sale.CustomerID, sale.SubTotal, sale.TotalDiscount, sale.TotalAmount, sale.Paid, sale.Balance).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	itemQuery := `INSERT INTO sale_items (sale_id, item_id, item_name, qty, unit_price, discount_amount, item_total)
				  VALUES ($1, $2, $3, $4, $5, $6, $7)
				  RETURNING sale_item_id
	`

	stockQuery := `UPDATE items SET stock_available = stock_available - $1, last_updated_at = NOW()
				   WHERE item_id = $2 AND stock_available >= $1`

	for i := range sale.Items {
		line := &sale.Items[i]
		line.SaleID = sale.ID

		err = tx.QueryRowContext(dbCtx, itemQuery, line.SaleID, line.ItemID, line.ItemName, line.Qty, line.UnitPrice, line.DiscountAmount, line.ItemTotal).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("inserting sale item: %w", err)
		}

		result, err := tx.ExecContext(dbCtx, stockQuery, line.Qty, line.ItemID)
		if err != nil {
			return fmt.Errorf("updating stock: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if rows == 0 {
			return fmt.Errorf("item %q: %w", line.ItemName, ErrInsufficientStock)
		}
	}

	return tx.Commit()
}

func (r *saleRepository) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sale := &models.Sale{}

	query := `SELECT sale_id, customer_id, sub_total, total_discount, total_amount, paid, balance, created_at
			  FROM sales
			  WHERE sale_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&sale.ID, &sale.CustomerID, &sale.SubTotal, &sale.TotalDiscount, &sale.TotalAmount, &sale.Paid, &sale.Balance, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	itemsQuery := `SELECT sale_item_id, sale_id, item_id, item_name, qty, unit_price, discount_amount, item_total
				   FROM sale_items
				   WHERE sale_id = $1
				   ORDER BY sale_item_id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, id)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var line models.SaleItem

		err := rows.Scan(&line.ID, &line.SaleID, &line.ItemID, &line.ItemName, &line.Qty, &line.UnitPrice, &line.DiscountAmount, &line.ItemTotal)
		if err != nil {
			return nil, err
		}

		sale.Items = append(sale.Items, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) ListSales(ctx context.Context, page, size int) ([]*models.Sale, int, error) {
	query := `SELECT sale_id, customer_id, sub_total, total_discount, total_amount, paid, balance, created_at
			  FROM sales
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2
	`

	countQuery := `SELECT COUNT(*) FROM sales`

	return r.listSales(ctx, countQuery, query, nil, page, size)
}

func (r *saleRepository) ListSalesByCustomer(ctx context.Context, customerID int64, page, size int) ([]*models.Sale, int, error) {
	query := `SELECT sale_id, customer_id, sub_total, total_discount, total_amount, paid, balance, created_at
			  FROM sales
			  WHERE customer_id = $3
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2
	`

	countQuery := `SELECT COUNT(*) FROM sales WHERE customer_id = $1`

	return r.listSales(ctx, countQuery, query, &customerID, page, size)
}

func (r *saleRepository) listSales(ctx context.Context, countQuery, query string, customerID *int64, page, size int) ([]*models.Sale, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countArgs := []any{}
	if customerID != nil {
		countArgs = append(countArgs, *customerID)
	}

	err := r.DB.QueryRowContext(dbCtx, countQuery, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	args := []any{size, offset}
	if customerID != nil {
		args = append(args, *customerID)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var sales []*models.Sale

	for rows.Next() {
		sale := &models.Sale{}

		err := rows.Scan(&sale.ID, &sale.CustomerID, &sale.SubTotal, &sale.TotalDiscount, &sale.TotalAmount, &sale.Paid, &sale.Balance, &sale.CreatedAt)
		if err != nil {
			return nil, 0, err
		}

		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// UpdateSalePayment records a later settlement against an open balance. The
// balance is recomputed in SQL from the stored total, never trusted from the
// caller.
func (r *saleRepository) UpdateSalePayment(ctx context.Context, id int64, paid decimal.Decimal) (*models.Sale, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sale := &models.Sale{}

	query := `UPDATE sales SET paid = $1, balance = total_amount - $1
			  WHERE sale_id = $2
			  RETURNING sale_id, customer_id, sub_total, total_discount, total_amount, paid, balance, created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, paid, id).Scan(&sale.ID, &sale.CustomerID, &sale.SubTotal, &sale.TotalDiscount, &sale.TotalAmount, &sale.Paid, &sale.Balance, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return sale, nil
}
