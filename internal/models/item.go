package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry. Discount is a percentage (0-100) that applies in
// full once the ordered quantity reaches QtyToAllowDiscount, never prorated
// below it.
type Item struct {
	ID                 int64           `json:"item_id"`
	Name               string          `json:"name" validate:"required"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	StockAvailable     int             `json:"stock_available"`
	Discount           decimal.Decimal `json:"discount"`
	QtyToAllowDiscount int             `json:"qty_to_allow_discount"`
	CategoryID         int64           `json:"category_id"`
	LastUpdatedAt      time.Time       `json:"last_updated_at"`
}

type CreateItemRequest struct {
	Name               string          `json:"name" validate:"required,max=150"`
	UnitPrice          decimal.Decimal `json:"unit_price" validate:"required"`
	StockAvailable     int             `json:"stock_available" validate:"min=0"`
	Discount           decimal.Decimal `json:"discount"`
	QtyToAllowDiscount int             `json:"qty_to_allow_discount" validate:"min=1"`
	CategoryID         int64           `json:"category_id" validate:"required"`
}

type UpdateItemRequest struct {
	Name               string          `json:"name" validate:"required,max=150"`
	UnitPrice          decimal.Decimal `json:"unit_price" validate:"required"`
	StockAvailable     int             `json:"stock_available" validate:"min=0"`
	Discount           decimal.Decimal `json:"discount"`
	QtyToAllowDiscount int             `json:"qty_to_allow_discount" validate:"min=1"`
	CategoryID         int64           `json:"category_id" validate:"required"`
}

type Category struct {
	ID            int64     `json:"category_id"`
	Name          string    `json:"name" validate:"required"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateCategoryRequest struct {
	CategoryID int64  `json:"category_id" validate:"required"`
	Name       string `json:"name" validate:"required,max=100"`
}
