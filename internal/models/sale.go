package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is a frozen line of a persisted sale. Name and UnitPrice are
// captured at sale time so later catalog edits never alter history.
type SaleItem struct {
	ID             int64           `json:"sale_item_id"`
	SaleID         int64           `json:"sale_id"`
	ItemID         int64           `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Qty            int             `json:"qty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ItemTotal      decimal.Decimal `json:"item_total"`
}

// Sale is immutable once created, except for the paid/balance adjustment
// done by the dedicated payment-update operation.
type Sale struct {
	ID            int64           `json:"sale_id"`
	CustomerID    int64           `json:"customer_id"`
	Items         []SaleItem      `json:"items,omitempty"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Paid          decimal.Decimal `json:"paid"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleItemInput carries a cart line to the server. The discount and total are
// the terminal's view; the server recomputes both from the catalog before
// persisting.
type SaleItemInput struct {
	ItemID         int64           `json:"item_id" validate:"required"`
	Qty            int             `json:"qty" validate:"required,min=1"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ItemTotal      decimal.Decimal `json:"item_total"`
}

type CreateSaleRequest struct {
	Customer  CustomerInput   `json:"customer" validate:"required"`
	SaleItems []SaleItemInput `json:"saleItems" validate:"required,min=1,dive"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
}

type UpdateSalePaymentRequest struct {
	Paid decimal.Decimal `json:"paid" validate:"required"`
}

// Invoice is the snapshot handed to the receipt renderer after a sale is
// committed.
type Invoice struct {
	ReceiptNumber string          `json:"receipt_number"`
	SaleID        int64           `json:"sale_id"`
	Customer      Customer        `json:"customer"`
	Items         []SaleItem      `json:"items"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Paid          decimal.Decimal `json:"paid"`
	Balance       decimal.Decimal `json:"balance"`
	IssuedAt      time.Time       `json:"issued_at"`
}

type DashboardStats struct {
	TotalCustomers int             `json:"totalCustomers"`
	CustomerChange int             `json:"customerChange"`
	ItemsInStock   int             `json:"itemsInStock"`
	StockChange    int             `json:"stockChange"`
	TodaysSales    decimal.Decimal `json:"todaysSales"`
	SalesChange    decimal.Decimal `json:"salesChange"`
}
