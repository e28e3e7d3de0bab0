package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/utils"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeactivateCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context, page, size int) ([]*models.Customer, int, error)
	SearchCustomersByName(ctx context.Context, name string, page, size int) ([]*models.Customer, int, error)
}

type customerRepository struct {
	DB *sql.DB
}

func NewCustomerRepo(db *sql.DB) CustomerRepository {
	return &customerRepository{DB: db}
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO customers (name, telephone, address, is_active)
			  VALUES ($1, $2, $3, TRUE)
			  RETURNING id, is_active, last_updated
	`

	return r.DB.QueryRowContext(dbCtx, query, customer.Name, customer.Telephone, customer.Address).Scan(&customer.ID, &customer.IsActive, &customer.LastUpdated)
}

func (r *customerRepository) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}

	query := `SELECT id, name, telephone, address, is_active, last_updated
			  FROM customers
			  WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&customer.ID, &customer.Name, &customer.Telephone, &customer.Address, &customer.IsActive, &customer.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return customer, nil
}

// GetCustomerByTelephone returns (nil, nil) when no customer carries the
// number. Telephone is the lookup key the billing screen resolves on.
func (r *customerRepository) GetCustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	customer := &models.Customer{}

	query := `SELECT id, name, telephone, address, is_active, last_updated
			  FROM customers
			  WHERE telephone = $1 AND is_active = TRUE`

	err := r.DB.QueryRowContext(dbCtx, query, telephone).Scan(&customer.ID, &customer.Name, &customer.Telephone, &customer.Address, &customer.IsActive, &customer.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE customers SET name = $1, telephone = $2, address = $3, last_updated = NOW()
			  WHERE id = $4
			  RETURNING last_updated
	`

	return r.DB.QueryRowContext(dbCtx, query, customer.Name, customer.Telephone, customer.Address, customer.ID).Scan(&customer.LastUpdated)
}

// DeactivateCustomer is a soft delete so sale history keeps its customer rows.
func (r *customerRepository) DeactivateCustomer(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE customers SET is_active = FALSE, last_updated = NOW() WHERE id = $1`

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

func (r *customerRepository) ListCustomers(ctx context.Context, page, size int) ([]*models.Customer, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM customers WHERE is_active = TRUE`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT id, name, telephone, address, is_active, last_updated
			  FROM customers
			  WHERE is_active = TRUE
			  ORDER BY id
			  LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var customers []*models.Customer

	for rows.Next() {
		customer := &models.Customer{}

		err := rows.Scan(&customer.ID, &customer.Name, &customer.Telephone, &customer.Address, &customer.IsActive, &customer.LastUpdated)
		if err != nil {
			return nil, 0, err
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *customerRepository) SearchCustomersByName(ctx context.Context, name string, page, size int) ([]*models.Customer, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pattern := "%" + name + "%"

	var total int

	countQuery := `SELECT COUNT(*) FROM customers WHERE is_active = TRUE AND LOWER(name) LIKE LOWER($1)`

	err := r.DB.QueryRowContext(dbCtx, countQuery, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT id, name, telephone, address, is_active, last_updated
			  FROM customers
			  WHERE is_active = TRUE AND LOWER(name) LIKE LOWER($1)
			  ORDER BY name
			  LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, pattern, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var customers []*models.Customer

	for rows.Next() {
		customer := &models.Customer{}

		err := rows.Scan(&customer.ID, &customer.Name, &customer.Telephone, &customer.Address, &customer.IsActive, &customer.LastUpdated)
		if err != nil {
			return nil, 0, err
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}
