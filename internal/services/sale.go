package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/billing"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
	"github.com/shopspring/decimal"
)

type SaleService interface {
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error)
	GetSaleByID(ctx context.Context, id int64) (*models.Sale, error)
	ListSales(ctx context.Context, page, pageSize int) ([]*models.Sale, int, error)
	ListSalesByCustomer(ctx context.Context, customerID int64, page, pageSize int) ([]*models.Sale, int, error)
	UpdateSalePayment(ctx context.Context, id int64, req *models.UpdateSalePaymentRequest) (*models.Sale, error)
}

// ReceiptMailer sends the back-office copy of a committed sale. Mail failures
// are logged, never surfaced: the sale already stands.
type ReceiptMailer interface {
	SendSaleRecord(ctx context.Context, invoice *models.Invoice) error
}

type saleService struct {
	repo         repository.SaleRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	mailer       ReceiptMailer
}

func NewSaleService(repo repository.SaleRepository, customerRepo repository.CustomerRepository, itemRepo repository.ItemRepository, mailer ReceiptMailer) SaleService {
	return &saleService{
		repo:         repo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		mailer:       mailer,
	}
}

// CreateSale is the single write path for checkouts. The customer is resolved
// or created from the telephone number, and every line is repriced from the
// catalog; the terminal's figures are display values, not authority.
func (s *saleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {

	if req.Paid.IsNegative() {
		return nil, errors.ValidationError("Paid amount cannot be negative")
	}

	customer, err := s.findOrCreateCustomer(ctx, &req.Customer)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		CustomerID: customer.ID,
		SubTotal:   decimal.Zero,
	}

	for _, input := range req.SaleItems {
		item, err := s.itemRepo.GetItemByID(ctx, input.ItemID)
		if err != nil {
			return nil, errors.NotFoundError("Sale item no longer exists").WithError(err)
		}

		if input.Qty > item.StockAvailable {
			return nil, errors.InsufficientStockError(item.Name, item.StockAvailable)
		}

		discountAmount, lineTotal := billing.ComputeLine(*item, input.Qty)

		sale.Items = append(sale.Items, models.SaleItem{
			ItemID:         item.ID,
			ItemName:       item.Name,
			Qty:            input.Qty,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: discountAmount,
			ItemTotal:      lineTotal,
		})

		gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(input.Qty)))
		sale.SubTotal = sale.SubTotal.Add(gross)
		sale.TotalDiscount = sale.TotalDiscount.Add(discountAmount)
	}

	sale.TotalAmount = sale.SubTotal.Sub(sale.TotalDiscount)
	sale.Paid = req.Paid
	sale.Balance = sale.TotalAmount.Sub(req.Paid)

	err = s.repo.CreateSale(ctx, sale)
	if stderrors.Is(err, repository.ErrInsufficientStock) {
		return nil, errors.NewAppError(errors.ErrCodeInsufficientStock, "Stock changed while the sale was in progress", http.StatusConflict).WithError(err)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to record sale").WithError(err)
	}

	s.mailSaleRecord(ctx, customer, sale)

	return sale, nil
}

func (s *saleService) findOrCreateCustomer(ctx context.Context, input *models.CustomerInput) (*models.Customer, error) {

	customer, err := s.customerRepo.GetCustomerByTelephone(ctx, input.Telephone)
	if err != nil {
		return nil, errors.DatabaseError("Failed to resolve customer").WithError(err)
	}

	if customer != nil {
		return customer, nil
	}

	customer = &models.Customer{
		Name:      input.Name,
		Telephone: input.Telephone,
		Address:   input.Address,
	}

	err = s.customerRepo.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create customer for sale").WithError(err)
	}

	return customer, nil
}

func (s *saleService) mailSaleRecord(ctx context.Context, customer *models.Customer, sale *models.Sale) {
	if s.mailer == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx)

	invoice := &models.Invoice{
		SaleID:        sale.ID,
		Customer:      *customer,
		Items:         sale.Items,
		SubTotal:      sale.SubTotal,
		TotalDiscount: sale.TotalDiscount,
		TotalAmount:   sale.TotalAmount,
		Paid:          sale.Paid,
		Balance:       sale.Balance,
		IssuedAt:      time.Now(),
	}

	if err := s.mailer.SendSaleRecord(ctx, invoice); err != nil {
		logger.Error("Failed to mail sale record", slog.Int64("saleId", sale.ID), slog.Any("error", err))
	}
}

func (s *saleService) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {

	sale, err := s.repo.GetSaleByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Sale not found").WithError(err)
	}

	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, page, pageSize int) ([]*models.Sale, int, error) {

	sales, total, err := s.repo.ListSales(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch sales").WithError(err)
	}

	return sales, total, nil
}

func (s *saleService) ListSalesByCustomer(ctx context.Context, customerID int64, page, pageSize int) ([]*models.Sale, int, error) {

	sales, total, err := s.repo.ListSalesByCustomer(ctx, customerID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch customer sales").WithError(err)
	}

	return sales, total, nil
}

func (s *saleService) UpdateSalePayment(ctx context.Context, id int64, req *models.UpdateSalePaymentRequest) (*models.Sale, error) {

	if req.Paid.IsNegative() {
		return nil, errors.ValidationError("Paid amount cannot be negative")
	}

	sale, err := s.repo.UpdateSalePayment(ctx, id, req.Paid)
	if err != nil {
		return nil, errors.NotFoundError("Sale not found").WithError(err)
	}

	return sale, nil
}
