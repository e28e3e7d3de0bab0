package receipt

import (
	"context"
	"fmt"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends the back-office record copy of each committed sale.
type Mailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	toEmail   string
}

func NewMailer(apiKey, fromEmail, fromName, toEmail string) *Mailer {
	return &Mailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
	}
}

func (m *Mailer) SendSaleRecord(ctx context.Context, invoice *models.Invoice) error {

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail("", m.toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("Sale #%d - %s", invoice.SaleID, invoice.TotalAmount.StringFixed(2))
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", Render(invoice)))

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send sale record, status code: %d", response.StatusCode)
	}

	return nil
}
