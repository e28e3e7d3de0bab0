// Package receipt renders committed sales into the fixed-width slips the
// store's 80mm thermal printer expects, and mails record copies to the back
// office.
package receipt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pahanaedu/pos-platform/internal/models"
)

// 80mm paper fits 42 characters of the printer's default font.
const lineWidth = 42

func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	pad := (lineWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func rule() string {
	return strings.Repeat("-", lineWidth)
}

func labelled(label, value string) string {
	gap := lineWidth - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

// Render produces the plain-text slip for a committed sale.
func Render(invoice *models.Invoice) string {
	var b strings.Builder

	b.WriteString(center("PAHANA EDU") + "\n")
	b.WriteString(center("Educational Supplies") + "\n")
	b.WriteString(rule() + "\n")

	if invoice.ReceiptNumber != "" {
		b.WriteString(labelled("Receipt", invoice.ReceiptNumber) + "\n")
	}
	b.WriteString(labelled("Sale No", fmt.Sprintf("%d", invoice.SaleID)) + "\n")
	b.WriteString(labelled("Date", invoice.IssuedAt.Format("2006-01-02 15:04")) + "\n")
	b.WriteString(labelled("Customer", invoice.Customer.Name) + "\n")
	b.WriteString(labelled("Telephone", invoice.Customer.Telephone) + "\n")
	b.WriteString(rule() + "\n")

	for _, line := range invoice.Items {
		b.WriteString(line.ItemName + "\n")
		detail := fmt.Sprintf("%d x %s", line.Qty, line.UnitPrice.StringFixed(2))
		b.WriteString(labelled("  "+detail, line.ItemTotal.StringFixed(2)) + "\n")

		if !line.DiscountAmount.IsZero() {
			b.WriteString(labelled("  discount", "-"+line.DiscountAmount.StringFixed(2)) + "\n")
		}
	}

	b.WriteString(rule() + "\n")
	b.WriteString(labelled("Sub Total", invoice.SubTotal.StringFixed(2)) + "\n")
	b.WriteString(labelled("Discount", invoice.TotalDiscount.StringFixed(2)) + "\n")
	b.WriteString(labelled("Total", invoice.TotalAmount.StringFixed(2)) + "\n")
	b.WriteString(labelled("Paid", invoice.Paid.StringFixed(2)) + "\n")
	b.WriteString(labelled("Balance", invoice.Balance.StringFixed(2)) + "\n")
	b.WriteString(rule() + "\n")
	b.WriteString(center("Thank you for shopping with us!") + "\n")

	return b.String()
}

// Printer writes rendered slips to the device behind w, typically the spool
// file of the terminal's thermal printer.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Print(ctx context.Context, invoice *models.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := io.WriteString(p.w, Render(invoice)); err != nil {
		return fmt.Errorf("writing receipt: %w", err)
	}

	return nil
}
