package notify

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/tenant"
)

// Mailer sends transactional customer email over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a new Mailer from the smtp config section.
func NewMailer() *Mailer {
	host := viper.GetString("smtp.host")
	port := viper.GetInt("smtp.port")
	from := viper.GetString("smtp.from")

	if host == "" {
		host = "smtp"
	}
	if port == 0 {
		port = 587
	}
	if from == "" {
		from = "noreply@eatech.ch"
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, viper.GetString("smtp.user"), viper.GetString("smtp.password")),
		from:   from,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func formatAmount(cents int64, cur currency.Currency) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, cur.String())
}

// SendOrderConfirmation mails the customer after an order is placed.
func (m *Mailer) SendOrderConfirmation(_ context.Context, t *tenant.Tenant, o *order.Order) error {
	subject := fmt.Sprintf("%s: order %s received", t.Name, o.Number)
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for your order %s at %s.\nTotal: %s.\n\nWe will let you know as soon as it is being prepared.",
		o.Contact.Name, o.Number, t.Name, formatAmount(o.TotalCents, o.Currency))

	return m.send(o.Contact.Email, subject, body)
}

// SendStatusUpdate mails the customer about fulfillment progress.
func (m *Mailer) SendStatusUpdate(_ context.Context, t *tenant.Tenant, o *order.Order) error {
	subject := fmt.Sprintf("%s: order %s is %s", t.Name, o.Number, o.Status)
	body := fmt.Sprintf("Hi %s,\n\nYour order %s is now %s.", o.Contact.Name, o.Number, o.Status)
	if o.EstimatedReadyAt != nil {
		body += fmt.Sprintf("\nEstimated ready at %s.", o.EstimatedReadyAt.In(t.Location()).Format("15:04"))
	}

	return m.send(o.Contact.Email, subject, body)
}

// SendCancellation mails the customer after a cancellation.
func (m *Mailer) SendCancellation(_ context.Context, t *tenant.Tenant, o *order.Order) error {
	subject := fmt.Sprintf("%s: order %s cancelled", t.Name, o.Number)
	body := fmt.Sprintf("Hi %s,\n\nYour order %s has been cancelled.", o.Contact.Name, o.Number)
	if o.CancelReason != "" {
		body += fmt.Sprintf("\nReason: %s.", o.CancelReason)
	}
	if o.PaymentStatus == order.PaymentPaid {
		body += "\nYour payment will be refunded."
	}

	return m.send(o.Contact.Email, subject, body)
}

// SendFeedbackRequest mails the customer an hour after delivery.
func (m *Mailer) SendFeedbackRequest(_ context.Context, t *tenant.Tenant, o *order.Order) error {
	subject := fmt.Sprintf("%s: how was your order?", t.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe hope you enjoyed order %s from %s. We would love to hear your feedback!",
		o.Contact.Name, o.Number, t.Name)

	return m.send(o.Contact.Email, subject, body)
}
