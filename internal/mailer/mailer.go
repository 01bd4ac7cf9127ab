// Package mailer sends transactional mail over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"caelis-storefront/internal/config"
	"caelis-storefront/internal/model"

	"github.com/shopspring/decimal"
)

type SMTPMailer struct {
	host       string
	port       string
	user       string
	pass       string
	adminEmail string
}

func New(cfg *config.Mail) *SMTPMailer {
	return &SMTPMailer{
		host:       cfg.Host,
		port:       cfg.Port,
		user:       cfg.User,
		pass:       cfg.Pass,
		adminEmail: cfg.AdminEmail,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, order *model.Order) error {
	subject := fmt.Sprintf("Order Confirmation #%s", order.OrderID)
	return m.send(ctx, order.CustomerEmail, subject, orderConfirmationBody(order))
}

func (m *SMTPMailer) SendSubscriptionNotification(ctx context.Context, subscriberEmail string) error {
	if m.adminEmail == "" {
		return fmt.Errorf("admin email not configured")
	}
	return m.send(ctx, m.adminEmail, "New Newsletter Subscriber", subscriptionBody(subscriberEmail))
}

func orderConfirmationBody(order *model.Order) string {
	var b strings.Builder
	b.WriteString("<h2>Order Confirmation</h2>")
	b.WriteString("<p>Thank you for your purchase!</p>")
	fmt.Fprintf(&b, "<p><strong>Order ID:</strong> %s</p>", order.OrderID)
	fmt.Fprintf(&b, "<p><strong>Amount:</strong> %s %s</p>", order.Amount.StringFixed(2), order.Currency)
	b.WriteString("<hr><h3>Order Details:</h3><ul>")
	for _, p := range order.Products {
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
		fmt.Fprintf(&b, "<li>%s x %d - %s</li>", p.Name, p.Quantity, lineTotal.StringFixed(2))
	}
	b.WriteString("</ul><hr>")
	b.WriteString("<p>We'll notify you when your order ships.</p>")
	b.WriteString("<p>Thank you for shopping with Caelis!</p>")
	return b.String()
}

func subscriptionBody(subscriberEmail string) string {
	var b strings.Builder
	b.WriteString("<h2>New Subscriber Alert</h2>")
	b.WriteString("<p>A new user has subscribed to your newsletter:</p>")
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", subscriberEmail)
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", time.Now().Format(time.RFC1123))
	b.WriteString("<hr><p>This is an automated notification from your Caelis e-commerce site.</p>")
	return b.String()
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if m.host == "" || m.user == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := net.JoinHostPort(m.host, m.port)
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if err := c.Auth(smtp.PlainAuth("", m.user, m.pass, m.host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := c.Mail(m.user); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := message(m.user, to, subject, htmlBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return c.Quit()
}

func message(from, to, subject, htmlBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return b.String()
}
