package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/molnpaket/checkout/internal/domain/payments"
)

// InMemoryPaymentGateway is a payments.Gateway for tests. It records every
// call and can be primed with promotion codes, discounts and failures.
type InMemoryPaymentGateway struct {
	mu sync.Mutex

	PromotionCodes        map[string]*payments.PromotionCode
	SubscriptionDiscounts map[string]*payments.Discount

	CustomerErr     error
	SubscriptionErr error
	PromotionErr    error
	DiscountErr     error

	CreatedCustomers     []payments.CreateCustomerInput
	CreatedSubscriptions []payments.CreateSubscriptionInput
	PromotionLookups     []string
	DiscountLookups      []string
}

func NewInMemoryPaymentGateway() *InMemoryPaymentGateway {
	return &InMemoryPaymentGateway{
		PromotionCodes:        make(map[string]*payments.PromotionCode),
		SubscriptionDiscounts: make(map[string]*payments.Discount),
	}
}

func (g *InMemoryPaymentGateway) CreateCustomer(_ context.Context, input payments.CreateCustomerInput) (*payments.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.CustomerErr != nil {
		return nil, g.CustomerErr
	}

	g.CreatedCustomers = append(g.CreatedCustomers, input)
	return &payments.Customer{
		ID: fmt.Sprintf("cus_test_%d", len(g.CreatedCustomers)),
	}, nil
}

func (g *InMemoryPaymentGateway) CreateSubscription(_ context.Context, input payments.CreateSubscriptionInput) (*payments.Subscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.SubscriptionErr != nil {
		return nil, g.SubscriptionErr
	}

	g.CreatedSubscriptions = append(g.CreatedSubscriptions, input)
	return &payments.Subscription{
		ID:     fmt.Sprintf("sub_test_%d", len(g.CreatedSubscriptions)),
		Status: "trialing",
	}, nil
}

func (g *InMemoryPaymentGateway) FindActivePromotionCode(_ context.Context, code string) (*payments.PromotionCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.PromotionLookups = append(g.PromotionLookups, code)

	if g.PromotionErr != nil {
		return nil, g.PromotionErr
	}
	return g.PromotionCodes[code], nil
}

func (g *InMemoryPaymentGateway) GetSubscriptionDiscount(_ context.Context, subscriptionID string) (*payments.Discount, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.DiscountLookups = append(g.DiscountLookups, subscriptionID)

	if g.DiscountErr != nil {
		return nil, g.DiscountErr
	}
	return g.SubscriptionDiscounts[subscriptionID], nil
}

// TotalCalls returns how many provider calls were issued.
func (g *InMemoryPaymentGateway) TotalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.CreatedCustomers) +
		len(g.CreatedSubscriptions) +
		len(g.PromotionLookups) +
		len(g.DiscountLookups)
}

// Clear resets recorded calls between tests.
func (g *InMemoryPaymentGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.CreatedCustomers = nil
	g.CreatedSubscriptions = nil
	g.PromotionLookups = nil
	g.DiscountLookups = nil
}
