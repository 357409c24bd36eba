package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerInput carries the contact fields collected at checkout.
// Country becomes a provider address sub-object only when set; Company is
// stored as free-form metadata on the provider customer.
type CreateCustomerInput struct {
	Email           string
	Name            string
	Phone           string
	Country         string
	Company         string
	PaymentMethodID string
}

// Customer is the provider-side customer reference.
type Customer struct {
	ID string
}

// CreateSubscriptionInput describes the subscription to create. BillingAnchor
// anchors both the billing cycle and the trial end so the customer is not
// charged before that date.
type CreateSubscriptionInput struct {
	CustomerID      string
	PriceID         string
	Quantity        int64
	Currency        string
	BillingAnchor   time.Time
	PromotionCodeID string
}

// Subscription is the provider-side subscription reference.
type Subscription struct {
	ID     string
	Status string
}

// PromotionCode is an active redeemable code. Exactly one of PercentOff and
// AmountOff is positive; AmountOff is in currency decimal, not minor units.
type PromotionCode struct {
	ID         string
	PercentOff decimal.Decimal
	AmountOff  decimal.Decimal
}

// Discount is the coupon attached to a created subscription, same
// percentage-or-fixed semantics as PromotionCode.
type Discount struct {
	PercentOff decimal.Decimal
	AmountOff  decimal.Decimal
}

// Gateway is the payment provider surface the checkout flow needs. The
// Stripe implementation lives in internal/integration/stripe; tests use the
// in-memory gateway from internal/testutil.
type Gateway interface {
	// CreateCustomer creates a provider customer with the given payment
	// method attached as the default for invoices.
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*Customer, error)

	// CreateSubscription creates an incomplete subscription awaiting payment
	// confirmation, anchored to input.BillingAnchor.
	CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*Subscription, error)

	// FindActivePromotionCode returns the single active promotion code
	// matching code exactly, or nil when none exists.
	FindActivePromotionCode(ctx context.Context, code string) (*PromotionCode, error)

	// GetSubscriptionDiscount returns the discount attached to a created
	// subscription, or nil when the subscription has none.
	GetSubscriptionDiscount(ctx context.Context, subscriptionID string) (*Discount, error)
}
