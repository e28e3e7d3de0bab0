package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/pahanaedu/pos-platform/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

func New(cfg *config.Config) (*Repository, CustomerRepository, ItemRepository, CategoryRepository, StaffRepository, SaleRepository, AnalyticsRepository, error) {

	// Every query goes through the instrumented driver so DB spans land in the
	// same trace as the HTTP request.
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)

	if err != nil {
		return nil, nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := otelsql.RegisterDBStatsMetrics(db,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	); err != nil {
		return nil, nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to register db metrics: %w", err)
	}

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	postgresInstance := &Repository{DB: db}
	customerRepo := NewCustomerRepo(db)
	itemRepo := NewItemRepo(db)
	categoryRepo := NewCategoryRepo(db)
	staffRepo := NewStaffRepo(db)
	saleRepo := NewSaleRepo(db)
	analyticsRepo := NewAnalyticsRepo(db)

	return postgresInstance, customerRepo, itemRepo, categoryRepo, staffRepo, saleRepo, analyticsRepo, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
