package stripe

import (
	"context"
	"strings"

	"github.com/molnpaket/checkout/internal/domain/payments"
	ierr "github.com/molnpaket/checkout/internal/errors"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

// minorUnitFactor converts Stripe minor-unit amounts to currency decimal.
var minorUnitFactor = decimal.NewFromInt(100)

// Gateway implements payments.Gateway against the Stripe API.
type Gateway struct {
	client *Client
	logger *logger.Logger
}

// NewGateway creates a new Stripe payment gateway
func NewGateway(client *Client, logger *logger.Logger) payments.Gateway {
	return &Gateway{
		client: client,
		logger: logger,
	}
}

// CreateCustomer creates a Stripe customer from the checkout contact fields
// with the payment method attached as the invoice default.
func (g *Gateway) CreateCustomer(ctx context.Context, input payments.CreateCustomerInput) (*payments.Customer, error) {
	params := &stripe.CustomerCreateParams{
		Email:         stripe.String(input.Email),
		Name:          stripe.String(input.Name),
		PaymentMethod: stripe.String(input.PaymentMethodID),
		InvoiceSettings: &stripe.CustomerCreateInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(input.PaymentMethodID),
		},
		Metadata: map[string]string{
			"company": input.Company,
		},
	}

	if input.Phone != "" {
		params.Phone = stripe.String(input.Phone)
	}

	// Country maps to an address sub-object only when provided
	if input.Country != "" {
		params.Address = &stripe.AddressParams{
			Country: stripe.String(input.Country),
		}
	}

	customer, err := g.client.API().V1Customers.Create(ctx, params)
	if err != nil {
		g.logger.Errorw("failed to create customer in Stripe",
			"error", err,
			"email", input.Email,
		)
		return nil, ierr.WithError(err).
			WithHint(providerMessage(err)).
			Mark(ierr.ErrProvider)
	}

	return &payments.Customer{ID: customer.ID}, nil
}

// CreateSubscription creates a subscription anchored at input.BillingAnchor
// for both the billing cycle and the trial end, prorated, with payment left
// incomplete until the customer confirms.
func (g *Gateway) CreateSubscription(ctx context.Context, input payments.CreateSubscriptionInput) (*payments.Subscription, error) {
	anchor := input.BillingAnchor.Unix()

	params := &stripe.SubscriptionCreateParams{
		Customer: stripe.String(input.CustomerID),
		Currency: stripe.String(strings.ToLower(input.Currency)),
		Items: []*stripe.SubscriptionCreateItemParams{
			{
				Price:    stripe.String(input.PriceID),
				Quantity: stripe.Int64(input.Quantity),
			},
		},
		BillingCycleAnchor: stripe.Int64(anchor),
		TrialEnd:           stripe.Int64(anchor),
		ProrationBehavior:  stripe.String("create_prorations"),
		PaymentBehavior:    stripe.String("default_incomplete"),
		Expand:             []*string{stripe.String("latest_invoice.payment_intent")},
	}

	if input.PromotionCodeID != "" {
		params.Discounts = []*stripe.SubscriptionCreateDiscountParams{
			{PromotionCode: stripe.String(input.PromotionCodeID)},
		}
	}

	subscription, err := g.client.API().V1Subscriptions.Create(ctx, params)
	if err != nil {
		g.logger.Errorw("failed to create subscription in Stripe",
			"error", err,
			"customer_id", input.CustomerID,
			"price_id", input.PriceID,
		)
		return nil, ierr.WithError(err).
			WithHint(providerMessage(err)).
			Mark(ierr.ErrProvider)
	}

	return &payments.Subscription{
		ID:     subscription.ID,
		Status: string(subscription.Status),
	}, nil
}

// FindActivePromotionCode looks up at most one active promotion code
// matching the given code exactly.
func (g *Gateway) FindActivePromotionCode(ctx context.Context, code string) (*payments.PromotionCode, error) {
	params := &stripe.PromotionCodeListParams{
		Code:   stripe.String(code),
		Active: stripe.Bool(true),
	}
	params.Limit = stripe.Int64(1)

	var (
		result  *payments.PromotionCode
		iterErr error
		yielded bool
	)
	g.client.API().V1PromotionCodes.List(ctx, params)(func(promo *stripe.PromotionCode, err error) bool {
		yielded = true
		if err != nil {
			g.logger.Warnw("failed to list promotion codes in Stripe",
				"error", err,
				"code", code,
			)
			iterErr = ierr.WithError(err).
				WithHint(providerMessage(err)).
				Mark(ierr.ErrProvider)
			return false
		}
		result = mapPromotionCode(promo)
		return false
	})
	if yielded {
		return result, iterErr
	}

	return nil, nil
}

// GetSubscriptionDiscount retrieves the discount attached to a subscription,
// if any, with the coupon expanded.
func (g *Gateway) GetSubscriptionDiscount(ctx context.Context, subscriptionID string) (*payments.Discount, error) {
	params := &stripe.SubscriptionRetrieveParams{
		Expand: []*string{
			stripe.String("discounts"),
		},
	}

	subscription, err := g.client.API().V1Subscriptions.Retrieve(ctx, subscriptionID, params)
	if err != nil {
		g.logger.Warnw("failed to retrieve subscription from Stripe",
			"error", err,
			"subscription_id", subscriptionID,
		)
		return nil, ierr.WithError(err).
			WithHint(providerMessage(err)).
			Mark(ierr.ErrProvider)
	}

	if len(subscription.Discounts) == 0 || subscription.Discounts[0].Coupon == nil {
		return nil, nil
	}

	coupon := subscription.Discounts[0].Coupon
	return &payments.Discount{
		PercentOff: decimal.NewFromFloat(coupon.PercentOff),
		AmountOff:  decimal.NewFromInt(coupon.AmountOff).Div(minorUnitFactor),
	}, nil
}

func mapPromotionCode(promo *stripe.PromotionCode) *payments.PromotionCode {
	pc := &payments.PromotionCode{ID: promo.ID}
	if promo.Coupon != nil {
		pc.PercentOff = decimal.NewFromFloat(promo.Coupon.PercentOff)
		pc.AmountOff = decimal.NewFromInt(promo.Coupon.AmountOff).Div(minorUnitFactor)
	}
	return pc
}
