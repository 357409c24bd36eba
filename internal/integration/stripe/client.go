package stripe

import (
	"github.com/molnpaket/checkout/internal/config"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client handles Stripe API client setup and configuration
type Client struct {
	sc     *stripe.Client
	logger *logger.Logger
}

// NewClient creates a new Stripe client from the configured secret key
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		sc:     stripe.NewClient(cfg.Stripe.SecretKey, nil),
		logger: logger,
	}
}

// API returns the underlying Stripe API client
func (c *Client) API() *stripe.Client {
	return c.sc
}

// providerMessage extracts the human-readable message from a Stripe API
// error, falling back to the raw error string.
func providerMessage(err error) string {
	if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
