package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/utils"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, page, size int) ([]*models.Category, int, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name)
			  VALUES ($1)
			  RETURNING category_id, last_updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name).Scan(&category.ID, &category.LastUpdatedAt)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT category_id, name, last_updated_at
			  FROM categories
			  WHERE category_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&category.ID, &category.Name, &category.LastUpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET name = $1, last_updated_at = NOW()
			  WHERE category_id = $2
			  RETURNING last_updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.ID).Scan(&category.LastUpdatedAt)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM categories WHERE category_id = $1`

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

func (r *categoryRepository) ListCategories(ctx context.Context, page, size int) ([]*models.Category, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM categories`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT category_id, name, last_updated_at
			  FROM categories
			  ORDER BY name
			  LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}

		err := rows.Scan(&category.ID, &category.Name, &category.LastUpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
