package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/molnpaket/checkout/internal/logger"
)

// Sender sends the transactional checkout emails. The checkout service calls
// it best-effort after the subscription result is determined.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, req OrderConfirmationRequest) error
	SendWelcome(ctx context.Context, req WelcomeRequest) error
}

type service struct {
	client *Client
	logger *logger.Logger
}

// NewService creates the email sender backed by the Resend client
func NewService(client *Client, logger *logger.Logger) Sender {
	return &service{
		client: client,
		logger: logger,
	}
}

func (s *service) SendOrderConfirmation(ctx context.Context, req OrderConfirmationRequest) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping order confirmation",
			"to", req.ToAddress,
		)
		return nil
	}

	htmlContent, err := s.renderTemplate("order-confirmation.html", map[string]interface{}{
		"name":               req.Name,
		"product_name":       req.ProductName,
		"quantity":           req.Quantity,
		"subtotal":           req.Quote.Subtotal.StringFixed(2),
		"discount_row":       s.discountRow(req),
		"tax":                req.Quote.Tax.StringFixed(2),
		"total":              req.Quote.Total.StringFixed(2),
		"first_billing_date": req.FirstBillingDate,
	})
	if err != nil {
		return err
	}

	messageID, err := s.client.Send(ctx, req.ToAddress, "Orderbekräftelse – "+req.ProductName, htmlContent)
	if err != nil {
		s.logger.Errorw("failed to send order confirmation email",
			"error", err,
			"to", req.ToAddress,
		)
		return err
	}

	s.logger.Infow("order confirmation email sent",
		"message_id", messageID,
		"to", req.ToAddress,
	)
	return nil
}

func (s *service) SendWelcome(ctx context.Context, req WelcomeRequest) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping welcome email",
			"to", req.ToAddress,
		)
		return nil
	}

	htmlContent, err := s.renderTemplate("welcome.html", map[string]interface{}{
		"name": req.Name,
	})
	if err != nil {
		return err
	}

	messageID, err := s.client.Send(ctx, req.ToAddress, "Välkommen till Molnpaket!", htmlContent)
	if err != nil {
		s.logger.Errorw("failed to send welcome email",
			"error", err,
			"to", req.ToAddress,
		)
		return err
	}

	s.logger.Infow("welcome email sent",
		"message_id", messageID,
		"to", req.ToAddress,
	)
	return nil
}

// discountRow renders the optional discount line of the confirmation table.
func (s *service) discountRow(req OrderConfirmationRequest) string {
	if req.DiscountDescription == "" || req.Quote.Discount.IsZero() {
		return ""
	}
	return fmt.Sprintf(
		`<tr><td>Rabatt (%s)</td><td style="text-align:right">&minus;%s kr</td></tr>`,
		req.DiscountDescription,
		req.Quote.Discount.StringFixed(2),
	)
}

func (s *service) renderTemplate(name string, data map[string]interface{}) (string, error) {
	content, err := s.readTemplate(name)
	if err != nil {
		s.logger.Errorw("failed to read email template",
			"error", err,
			"template", name,
		)
		return "", err
	}
	return replacePlaceholders(content, data), nil
}

// readTemplate reads an HTML template from the assets directory
func (s *service) readTemplate(templatePath string) (string, error) {
	if !filepath.IsAbs(templatePath) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		templatePath = filepath.Join(cwd, "assets", "email-templates", templatePath)
	}

	content, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file: %w", err)
	}

	return string(content), nil
}

// replacePlaceholders replaces {{key}} placeholders in the template
func replacePlaceholders(template string, data map[string]interface{}) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, fmt.Sprintf("%v", value))
	}
	return result
}
