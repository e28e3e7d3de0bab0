// Package billing holds the in-memory sale workflow of a POS terminal: the
// cart of line items, the customer resolver and the checkout flow. All money
// arithmetic uses decimals; nothing here performs I/O except through the
// collaborator interfaces.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/shopspring/decimal"
)

// Catalog resolves an item identifier to its current catalog record.
// A nil item with a nil error means the identifier is unknown.
type Catalog interface {
	ItemByID(ctx context.Context, id int64) (*models.Item, error)
}

var (
	ErrNoSelection  = errors.New("no item selected")
	ErrItemNotFound = errors.New("item not found in catalog")
	ErrLineNotFound = errors.New("item is not in the cart")
)

// InsufficientStockError rejects a quantity above the catalog's stock
// ceiling. The cart line keeps its previous quantity.
type InsufficientStockError struct {
	ItemName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d units of %s available in stock", e.Available, e.ItemName)
}

// InvalidPaidInputError marks a non-empty paid-amount input that does not
// parse as a number. Totals treats such input as zero for display; checkout
// refuses to submit it.
type InvalidPaidInputError struct {
	Input string
}

func (e *InvalidPaidInputError) Error() string {
	return fmt.Sprintf("paid amount %q is not a valid number", e.Input)
}

// LineItem is one catalog item inside the cart with its computed discount
// and total. Invariant: LineTotal = UnitPrice*Qty - DiscountAmount.
type LineItem struct {
	Item           models.Item
	Qty            int
	DiscountAmount decimal.Decimal
	LineTotal      decimal.Decimal
}

// Totals is the aggregate view derived from the current lines and the raw
// paid-amount input.
type Totals struct {
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalAmount   decimal.Decimal
	Paid          decimal.Decimal
	Balance       decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeLine applies the all-or-nothing threshold discount: the full
// percentage once qty reaches the item's threshold, zero below it.
func ComputeLine(item models.Item, qty int) (discountAmount, lineTotal decimal.Decimal) {
	gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))

	if qty >= item.QtyToAllowDiscount {
		discountAmount = gross.Mul(item.Discount).Div(oneHundred)
	} else {
		discountAmount = decimal.Zero
	}

	return discountAmount, gross.Sub(discountAmount)
}

// Cart is the mutable sale-in-progress. Lines keep insertion order, one line
// per distinct catalog item. A Cart is driven by a single terminal workflow
// and is not safe for concurrent use.
type Cart struct {
	catalog   Catalog
	lines     []*LineItem
	paidInput string
}

func NewCart(catalog Catalog) *Cart {
	return &Cart{catalog: catalog}
}

func (c *Cart) find(itemID int64) *LineItem {
	for _, line := range c.lines {
		if line.Item.ID == itemID {
			return line
		}
	}

	return nil
}

// AddItem adds one unit of the selected catalog item. An item already in the
// cart has its quantity bumped instead of gaining a second line.
func (c *Cart) AddItem(ctx context.Context, itemID int64) error {

	if itemID == 0 {
		return ErrNoSelection
	}

	if line := c.find(itemID); line != nil {
		return c.UpdateQuantity(itemID, line.Qty+1)
	}

	item, err := c.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item == nil {
		return ErrItemNotFound
	}

	c.lines = append(c.lines, &LineItem{
		Item:           *item,
		Qty:            1,
		DiscountAmount: decimal.Zero,
		LineTotal:      item.UnitPrice,
	})

	return nil
}

// UpdateQuantity sets a line's quantity and recomputes its discount and
// total. Quantities at or below zero are coerced to 1; removal is only ever
// done through RemoveItem. A quantity above the stock ceiling is rejected
// and the line is left untouched.
func (c *Cart) UpdateQuantity(itemID int64, newQty int) error {

	line := c.find(itemID)
	if line == nil {
		return ErrLineNotFound
	}

	if newQty <= 0 {
		newQty = 1
	}

	if newQty > line.Item.StockAvailable {
		return &InsufficientStockError{ItemName: line.Item.Name, Available: line.Item.StockAvailable}
	}

	line.Qty = newQty
	line.DiscountAmount, line.LineTotal = ComputeLine(line.Item, newQty)

	return nil
}

// RemoveItem deletes the line unconditionally. Removing an absent item is a
// no-op.
func (c *Cart) RemoveItem(itemID int64) {

	kept := c.lines[:0]

	for _, line := range c.lines {
		if line.Item.ID != itemID {
			kept = append(kept, line)
		}
	}

	c.lines = kept
}

func (c *Cart) SetPaidInput(raw string) {
	c.paidInput = raw
}

func (c *Cart) PaidInput() string {
	return c.paidInput
}

// Lines returns the cart contents in display order.
func (c *Cart) Lines() []LineItem {

	out := make([]LineItem, 0, len(c.lines))

	for _, line := range c.lines {
		out = append(out, *line)
	}

	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// ParsePaidInput is the strict parse used at submission: empty means zero,
// anything else must be a valid non-negative decimal.
func ParsePaidInput(raw string) (decimal.Decimal, error) {

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}

	paid, err := decimal.NewFromString(trimmed)
	if err != nil || paid.IsNegative() {
		return decimal.Zero, &InvalidPaidInputError{Input: raw}
	}

	return paid, nil
}

// Totals derives the aggregate amounts from the current lines and payment
// input. Pure and deterministic; an unparseable paid input counts as zero so
// the running balance never blocks typing.
func (c *Cart) Totals() Totals {

	subTotal := decimal.Zero
	totalDiscount := decimal.Zero

	for _, line := range c.lines {
		subTotal = subTotal.Add(line.Item.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
		totalDiscount = totalDiscount.Add(line.DiscountAmount)
	}

	totalAmount := subTotal.Sub(totalDiscount)

	paid, err := ParsePaidInput(c.paidInput)
	if err != nil {
		paid = decimal.Zero
	}

	return Totals{
		SubTotal:      subTotal,
		TotalDiscount: totalDiscount,
		TotalAmount:   totalAmount,
		Paid:          paid,
		Balance:       totalAmount.Sub(paid),
	}
}

// Reset empties the cart for the next sale.
func (c *Cart) Reset() {
	c.lines = nil
	c.paidInput = ""
}
