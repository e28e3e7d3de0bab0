package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/internal/utils"
	"github.com/shopspring/decimal"
)

type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type analyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{DB: db}
}

// GetDashboardStats feeds the manager dashboard. Change figures compare the
// current day/month against the previous one.
func (r *analyticsRepository) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.DashboardStats{}

	customerQuery := `SELECT COUNT(*),
					  COUNT(*) FILTER (WHERE last_updated >= date_trunc('month', NOW()))
					  FROM customers
					  WHERE is_active = TRUE`

	err := r.DB.QueryRowContext(dbCtx, customerQuery).Scan(&stats.TotalCustomers, &stats.CustomerChange)
	if err != nil {
		return nil, fmt.Errorf("querying customer stats: %w", err)
	}

	stockQuery := `SELECT COALESCE(SUM(stock_available), 0),
				   COUNT(*) FILTER (WHERE last_updated_at >= date_trunc('month', NOW()))
				   FROM items`

	err = r.DB.QueryRowContext(dbCtx, stockQuery).Scan(&stats.ItemsInStock, &stats.StockChange)
	if err != nil {
		return nil, fmt.Errorf("querying stock stats: %w", err)
	}

	var today, yesterday decimal.Decimal

	salesQuery := `SELECT COALESCE(SUM(total_amount) FILTER (WHERE created_at >= date_trunc('day', NOW())), 0),
				   COALESCE(SUM(total_amount) FILTER (WHERE created_at >= date_trunc('day', NOW()) - INTERVAL '1 day'
					   AND created_at < date_trunc('day', NOW())), 0)
				   FROM sales`

	err = r.DB.QueryRowContext(dbCtx, salesQuery).Scan(&today, &yesterday)
	if err != nil {
		return nil, fmt.Errorf("querying sales stats: %w", err)
	}

	stats.TodaysSales = today
	stats.SalesChange = today.Sub(yesterday)

	return stats, nil
}
