package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/molnpaket/checkout/internal/api/dto"
	"github.com/molnpaket/checkout/internal/domain/billing"
	"github.com/molnpaket/checkout/internal/domain/catalog"
	"github.com/molnpaket/checkout/internal/domain/payments"
	"github.com/molnpaket/checkout/internal/email"
	ierr "github.com/molnpaket/checkout/internal/errors"
	"github.com/molnpaket/checkout/internal/logger"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "sek"

// CheckoutService handles coupon lookup and subscription creation.
type CheckoutService interface {
	// CheckCoupon resolves a promotion code to a discount description.
	// Provider failures degrade to "not valid"; it never returns an error.
	CheckCoupon(ctx context.Context, req dto.CheckCouponRequest) *dto.CheckCouponResponse

	// Subscribe validates the request, creates the provider customer and
	// subscription, and triggers the confirmation emails best-effort.
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (*dto.SubscribeResponse, error)
}

type checkoutService struct {
	catalog *catalog.Catalog
	gateway payments.Gateway
	mailer  email.Sender
	logger  *logger.Logger
	now     func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	catalog *catalog.Catalog,
	gateway payments.Gateway,
	mailer email.Sender,
	logger *logger.Logger,
) CheckoutService {
	return &checkoutService{
		catalog: catalog,
		gateway: gateway,
		mailer:  mailer,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *checkoutService) CheckCoupon(ctx context.Context, req dto.CheckCouponRequest) *dto.CheckCouponResponse {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return &dto.CheckCouponResponse{Valid: false}
	}

	promo, err := s.gateway.FindActivePromotionCode(ctx, code)
	if err != nil {
		s.logger.Warnw("coupon lookup failed, treating code as not valid",
			"error", err,
			"code", code,
		)
		return &dto.CheckCouponResponse{Valid: false}
	}
	if promo == nil {
		return &dto.CheckCouponResponse{Valid: false}
	}

	resp := &dto.CheckCouponResponse{
		Valid:       true,
		CouponID:    promo.ID,
		Description: discountDescription(promo.PercentOff, promo.AmountOff),
	}
	if promo.PercentOff.IsPositive() {
		resp.PercentOff = lo.ToPtr(promo.PercentOff)
	}
	if promo.AmountOff.IsPositive() {
		resp.AmountOff = lo.ToPtr(promo.AmountOff)
	}
	return resp
}

func (s *checkoutService) Subscribe(ctx context.Context, req dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, ok := s.catalog.Get(req.ProductKey)
	if !ok {
		return nil, ierr.NewError("unknown product key").
			WithHint(dto.MsgUnknownProduct).
			WithReportableDetails(map[string]any{
				"productKey": req.ProductKey,
			}).
			Mark(ierr.ErrValidation)
	}

	anchor := billing.NextBillingAnchor(s.now())

	customer, err := s.gateway.CreateCustomer(ctx, payments.CreateCustomerInput{
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		Country:         req.Country,
		Company:         req.Company,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		return nil, err
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	subscription, err := s.gateway.CreateSubscription(ctx, payments.CreateSubscriptionInput{
		CustomerID:      customer.ID,
		PriceID:         product.PriceIDForCurrency(req.Currency),
		Quantity:        req.Quantity,
		Currency:        currency,
		BillingAnchor:   anchor,
		PromotionCodeID: req.CouponID,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SubscribeResponse{
		Success:          true,
		CustomerID:       customer.ID,
		SubscriptionID:   subscription.ID,
		Status:           subscription.Status,
		FirstBillingDate: anchor.Format("2006-01-02"),
	}

	// The response is settled at this point; email is best-effort and its
	// failure is logged, never surfaced, never retried.
	s.sendCheckoutEmails(ctx, req, product, subscription.ID, resp.FirstBillingDate)

	return resp, nil
}

func (s *checkoutService) sendCheckoutEmails(
	ctx context.Context,
	req dto.SubscribeRequest,
	product catalog.Product,
	subscriptionID string,
	firstBillingDate string,
) {
	var discount *payments.Discount
	if req.CouponID != "" {
		var err error
		discount, err = s.gateway.GetSubscriptionDiscount(ctx, subscriptionID)
		if err != nil {
			s.logger.Warnw("failed to fetch subscription discount for confirmation email",
				"error", err,
				"subscription_id", subscriptionID,
			)
			discount = nil
		}
	}

	quote := email.ComputeQuote(product.MonthlyPrice, req.Quantity, discount)

	var description string
	if discount != nil {
		description = discountDescription(discount.PercentOff, discount.AmountOff)
	}

	if err := s.mailer.SendOrderConfirmation(ctx, email.OrderConfirmationRequest{
		ToAddress:           req.Email,
		Name:                req.Name,
		ProductName:         product.Name,
		Quantity:            req.Quantity,
		Quote:               quote,
		DiscountDescription: description,
		FirstBillingDate:    firstBillingDate,
	}); err != nil {
		s.logger.Errorw("order confirmation email failed",
			"error", err,
			"subscription_id", subscriptionID,
		)
	}

	if err := s.mailer.SendWelcome(ctx, email.WelcomeRequest{
		ToAddress: req.Email,
		Name:      req.Name,
	}); err != nil {
		s.logger.Errorw("welcome email failed",
			"error", err,
			"subscription_id", subscriptionID,
		)
	}
}

// discountDescription renders the human-readable discount, percentage form
// taking precedence over the fixed-amount form.
func discountDescription(percentOff, amountOff decimal.Decimal) string {
	if percentOff.IsPositive() {
		return fmt.Sprintf("%s%% rabatt", percentOff.String())
	}
	if amountOff.IsPositive() {
		return fmt.Sprintf("%s kr rabatt", amountOff.String())
	}
	return ""
}
