package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/utils"
)

type StaffRepository interface {
	CreateStaff(ctx context.Context, staff *models.Staff) error
	GetStaffByID(ctx context.Context, id int64) (*models.Staff, error)
	GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error)
	UpdateStaff(ctx context.Context, staff *models.Staff) error
	DeleteStaff(ctx context.Context, id int64) error
	ListStaff(ctx context.Context, page, size int) ([]*models.Staff, int, error)
}

type staffRepository struct {
	DB *sql.DB
}

func NewStaffRepo(db *sql.DB) StaffRepository {
	return &staffRepository{DB: db}
}

func (r *staffRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO staff (name, telephone, address, username, password, email, role)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, last_updated
	`

	return r.DB.QueryRowContext(dbCtx, query, staff.Name, staff.Telephone, staff.Address, staff.Username, staff.Password, staff.Email, staff.Role).Scan(&staff.ID, &staff.LastUpdated)
}

func (r *staffRepository) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	staff := &models.Staff{}

	query := `SELECT id, name, telephone, address, username, password, email, role, last_updated
			  FROM staff
			  WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&staff.ID, &staff.Name, &staff.Telephone, &staff.Address, &staff.Username, &staff.Password, &staff.Email, &staff.Role, &staff.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return staff, nil
}

// GetStaffByUsername returns (nil, nil) when the username is unknown so the
// login path can fail with the same message as a wrong password.
func (r *staffRepository) GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	staff := &models.Staff{}

	query := `SELECT id, name, telephone, address, username, password, email, role, last_updated
			  FROM staff
			  WHERE username = $1`

	err := r.DB.QueryRowContext(dbCtx, query, username).Scan(&staff.ID, &staff.Name, &staff.Telephone, &staff.Address, &staff.Username, &staff.Password, &staff.Email, &staff.Role, &staff.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return staff, nil
}

func (r *staffRepository) UpdateStaff(ctx context.Context, staff *models.Staff) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE staff SET name = $1, telephone = $2, address = $3, email = $4, role = $5, last_updated = NOW()
			  WHERE id = $6
			  RETURNING last_updated
	`

	return r.DB.QueryRowContext(dbCtx, query, staff.Name, staff.Telephone, staff.Address, staff.Email, staff.Role, staff.ID).Scan(&staff.LastUpdated)
}

func (r *staffRepository) DeleteStaff(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM staff WHERE id = $1`

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

func (r *staffRepository) ListStaff(ctx context.Context, page, size int) ([]*models.Staff, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM staff`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT id, name, telephone, address, username, password, email, role, last_updated
			  FROM staff
			  ORDER BY id
			  LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var staffMembers []*models.Staff

	for rows.Next() {
		staff := &models.Staff{}

		err := rows.Scan(&staff.ID, &staff.Name, &staff.Telephone, &staff.Address, &staff.Username, &staff.Password, &staff.Email, &staff.Role, &staff.LastUpdated)
		if err != nil {
			return nil, 0, err
		}

		staffMembers = append(staffMembers, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return staffMembers, total, nil
}
