package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/shopspring/decimal"
)

// SaleCreator persists a finished cart as one atomic sale.
type SaleCreator interface {
	CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error)
}

// CustomerGetter hydrates the customer record for the printable invoice.
type CustomerGetter interface {
	CustomerByID(ctx context.Context, id int64) (*models.Customer, error)
}

// ReceiptPrinter renders a finalized invoice snapshot. Print failures never
// roll back the sale.
type ReceiptPrinter interface {
	Print(ctx context.Context, invoice *models.Invoice) error
}

var (
	ErrIncompleteCustomer = errors.New("customer name, telephone and address are required")
	ErrEmptyCart          = errors.New("at least one item is required to create a sale")
)

// Checkout glues the cart and resolver to the persistence and receipt
// collaborators for one terminal.
type Checkout struct {
	cart      *Cart
	resolver  *Resolver
	sales     SaleCreator
	customers CustomerGetter
	printer   ReceiptPrinter
}

func NewCheckout(cart *Cart, resolver *Resolver, sales SaleCreator, customers CustomerGetter, printer ReceiptPrinter) *Checkout {
	return &Checkout{
		cart:      cart,
		resolver:  resolver,
		sales:     sales,
		customers: customers,
		printer:   printer,
	}
}

func (co *Checkout) Cart() *Cart         { return co.cart }
func (co *Checkout) Resolver() *Resolver { return co.resolver }

// SubmitResult reports a committed sale. ReceiptErr carries a post-commit
// receipt failure: the sale stands, only the print step was skipped.
type SubmitResult struct {
	Sale       *models.Sale
	ReceiptErr error
}

// Submit validates the cart and candidate customer, sends one atomic
// creation request, prints the receipt and resets the terminal state. On a
// validation or persistence failure the cart is left untouched so the
// cashier can retry.
func (co *Checkout) Submit(ctx context.Context) (*SubmitResult, error) {

	customer := co.resolver.Customer()
	if customer.Name == "" || customer.Telephone == "" || customer.Address == "" {
		return nil, ErrIncompleteCustomer
	}

	if co.cart.Empty() {
		return nil, ErrEmptyCart
	}

	paid, err := ParsePaidInput(co.cart.PaidInput())
	if err != nil {
		return nil, err
	}

	totals := co.cart.Totals()
	lines := co.cart.Lines()

	req := &models.CreateSaleRequest{
		Customer:  customer,
		SaleItems: make([]models.SaleItemInput, 0, len(lines)),
		Paid:      paid,
		Balance:   totals.TotalAmount.Sub(paid),
	}

	for _, line := range lines {
		req.SaleItems = append(req.SaleItems, models.SaleItemInput{
			ItemID:         line.Item.ID,
			Qty:            line.Qty,
			DiscountAmount: line.DiscountAmount,
			ItemTotal:      line.LineTotal,
		})
	}

	sale, err := co.sales.CreateSale(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Sale: sale}
	result.ReceiptErr = co.printReceipt(ctx, sale, lines, totals, paid)

	co.cart.Reset()
	co.resolver.Reset()

	return result, nil
}

func (co *Checkout) printReceipt(ctx context.Context, sale *models.Sale, lines []LineItem, totals Totals, paid decimal.Decimal) error {

	customer, err := co.customers.CustomerByID(ctx, sale.CustomerID)
	if err != nil {
		return err
	}

	if customer == nil {
		return errors.New("customer record missing for receipt")
	}

	invoice := &models.Invoice{
		ReceiptNumber: uuid.NewString(),
		SaleID:        sale.ID,
		Customer:      *customer,
		Items:         make([]models.SaleItem, 0, len(lines)),
		SubTotal:      totals.SubTotal,
		TotalDiscount: totals.TotalDiscount,
		TotalAmount:   totals.TotalAmount,
		Paid:          paid,
		Balance:       totals.TotalAmount.Sub(paid),
		IssuedAt:      time.Now(),
	}

	for _, line := range lines {
		invoice.Items = append(invoice.Items, models.SaleItem{
			SaleID:         sale.ID,
			ItemID:         line.Item.ID,
			ItemName:       line.Item.Name,
			Qty:            line.Qty,
			UnitPrice:      line.Item.UnitPrice,
			DiscountAmount: line.DiscountAmount,
			ItemTotal:      line.LineTotal,
		})
	}

	return co.printer.Print(ctx, invoice)
}
