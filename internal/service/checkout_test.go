package service

import (
	"context"
	"testing"
	"time"

	"github.com/molnpaket/checkout/internal/api/dto"
	"github.com/molnpaket/checkout/internal/config"
	"github.com/molnpaket/checkout/internal/domain/catalog"
	"github.com/molnpaket/checkout/internal/domain/payments"
	ierr "github.com/molnpaket/checkout/internal/errors"
	"github.com/molnpaket/checkout/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  CheckoutService
	now      time.Time
	ctx      context.Context
	validReq dto.SubscribeRequest
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	cfg := s.GetConfig()
	cfg.Checkout.Products = map[string]config.ProductConfig{
		"premiumE5": {
			PriceID:      "price_sek_e5",
			Name:         "Premium Paket E5",
			MonthlyPrice: "899",
		},
		"secCloud": {
			PriceID:      "price_sek_sec",
			EURPriceID:   "price_eur_sec",
			Name:         "Sec-Cloud Paket",
			MonthlyPrice: "499",
		},
	}

	cat, err := catalog.NewCatalog(cfg)
	s.Require().NoError(err)

	s.now = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	s.ctx = context.Background()

	svc := NewCheckoutService(cat, s.GetGateway(), s.GetMailer(), s.GetLogger())
	svc.(*checkoutService).now = func() time.Time { return s.now }
	s.service = svc

	s.validReq = dto.SubscribeRequest{
		Email:           "anna@example.se",
		Name:            "Anna Andersson",
		Company:         "Andersson AB",
		Phone:           "+46701234567",
		Country:         "SE",
		PaymentMethodID: "pm_card_visa",
		ProductKey:      "premiumE5",
		Quantity:        2,
	}
}

// ---- coupon lookup ----

func (s *CheckoutServiceSuite) TestCheckCouponEmptyCode() {
	resp := s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: ""})
	s.False(resp.Valid)
	s.Zero(s.GetGateway().TotalCalls(), "empty code must not reach the provider")

	resp = s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: "   "})
	s.False(resp.Valid)
	s.Zero(s.GetGateway().TotalCalls())
}

func (s *CheckoutServiceSuite) TestCheckCouponNotFound() {
	resp := s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: "NOPE"})
	s.False(resp.Valid)
	s.Empty(resp.CouponID)
	s.Equal([]string{"NOPE"}, s.GetGateway().PromotionLookups)
}

func (s *CheckoutServiceSuite) TestCheckCouponPercent() {
	s.GetGateway().PromotionCodes["SPRING10"] = &payments.PromotionCode{
		ID:         "promo_1",
		PercentOff: decimal.NewFromInt(10),
	}

	resp := s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: "SPRING10"})
	s.True(resp.Valid)
	s.Equal("promo_1", resp.CouponID)
	s.Equal("10% rabatt", resp.Description)
	s.Require().NotNil(resp.PercentOff)
	s.True(resp.PercentOff.Equal(decimal.NewFromInt(10)))
	s.Nil(resp.AmountOff)
}

func (s *CheckoutServiceSuite) TestCheckCouponFixedAmount() {
	s.GetGateway().PromotionCodes["SAVE50"] = &payments.PromotionCode{
		ID:        "promo_2",
		AmountOff: decimal.NewFromInt(50),
	}

	resp := s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: "SAVE50"})
	s.True(resp.Valid)
	s.Equal("50 kr rabatt", resp.Description)
	s.Require().NotNil(resp.AmountOff)
	s.True(resp.AmountOff.Equal(decimal.NewFromInt(50)))
	s.Nil(resp.PercentOff)
}

func (s *CheckoutServiceSuite) TestCheckCouponPercentWinsOverAmount() {
	s.GetGateway().PromotionCodes["BOTH"] = &payments.PromotionCode{
		ID:         "promo_3",
		PercentOff: decimal.NewFromInt(25),
		AmountOff:  decimal.NewFromInt(100),
	}

	resp := s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: "BOTH"})
	s.True(resp.Valid)
	s.Equal("25% rabatt", resp.Description)
}

func (s *CheckoutServiceSuite) TestCheckCouponProviderFailureDegrades() {
	s.GetGateway().PromotionErr = ierr.NewError("stripe unavailable").Mark(ierr.ErrProvider)

	resp := s.service.CheckCoupon(s.ctx, dto.CheckCouponRequest{Code: "SPRING10"})
	s.False(resp.Valid)
}

// ---- subscription creation: validation ----

func (s *CheckoutServiceSuite) TestSubscribeMissingRequiredFields() {
	mutations := map[string]func(*dto.SubscribeRequest){
		"email":           func(r *dto.SubscribeRequest) { r.Email = "" },
		"name":            func(r *dto.SubscribeRequest) { r.Name = "" },
		"paymentMethodId": func(r *dto.SubscribeRequest) { r.PaymentMethodID = "" },
		"productKey":      func(r *dto.SubscribeRequest) { r.ProductKey = "" },
		"quantity":        func(r *dto.SubscribeRequest) { r.Quantity = 0 },
	}

	for field, mutate := range mutations {
		req := s.validReq
		mutate(&req)

		resp, err := s.service.Subscribe(s.ctx, req)
		s.Nil(resp, "field %s", field)
		s.Require().Error(err, "field %s", field)
		s.True(ierr.IsValidation(err), "field %s", field)
		s.Zero(s.GetGateway().TotalCalls(), "no provider call for missing %s", field)
	}
}

func (s *CheckoutServiceSuite) TestSubscribeNegativeQuantity() {
	req := s.validReq
	req.Quantity = -1

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Zero(s.GetGateway().TotalCalls())
}

func (s *CheckoutServiceSuite) TestSubscribeUnknownProduct() {
	req := s.validReq
	req.ProductKey = "doesNotExist"

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Zero(s.GetGateway().TotalCalls(), "catalog check happens before any provider call")
}

// ---- subscription creation: happy path ----

func (s *CheckoutServiceSuite) TestSubscribe() {
	resp, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().NoError(err)

	s.True(resp.Success)
	s.Equal("cus_test_1", resp.CustomerID)
	s.Equal("sub_test_1", resp.SubscriptionID)
	s.Equal("trialing", resp.Status)
	s.Equal("2026-03-28", resp.FirstBillingDate)

	gateway := s.GetGateway()
	s.Require().Len(gateway.CreatedCustomers, 1)
	customer := gateway.CreatedCustomers[0]
	s.Equal("anna@example.se", customer.Email)
	s.Equal("Anna Andersson", customer.Name)
	s.Equal("Andersson AB", customer.Company)
	s.Equal("SE", customer.Country)
	s.Equal("pm_card_visa", customer.PaymentMethodID)

	s.Require().Len(gateway.CreatedSubscriptions, 1)
	sub := gateway.CreatedSubscriptions[0]
	s.Equal("cus_test_1", sub.CustomerID)
	s.Equal("price_sek_e5", sub.PriceID)
	s.Equal(int64(2), sub.Quantity)
	s.Equal("sek", sub.Currency)
	s.Empty(sub.PromotionCodeID)

	wantAnchor := time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC)
	s.True(wantAnchor.Equal(sub.BillingAnchor), "anchor %s", sub.BillingAnchor)
}

func (s *CheckoutServiceSuite) TestSubscribeAnchorRollsToNextMonth() {
	s.now = time.Date(2026, time.March, 28, 9, 0, 0, 0, time.UTC)

	resp, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().NoError(err)
	s.Equal("2026-04-28", resp.FirstBillingDate)

	sub := s.GetGateway().CreatedSubscriptions[0]
	wantAnchor := time.Date(2026, time.April, 28, 0, 0, 0, 0, time.UTC)
	s.True(wantAnchor.Equal(sub.BillingAnchor))
}

func (s *CheckoutServiceSuite) TestSubscribeEURPriceSelection() {
	req := s.validReq
	req.ProductKey = "secCloud"
	req.Currency = "EUR"

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)

	sub := s.GetGateway().CreatedSubscriptions[0]
	s.Equal("price_eur_sec", sub.PriceID)
	s.Equal("eur", sub.Currency)
}

func (s *CheckoutServiceSuite) TestSubscribeNonEURCurrencyUsesBasePrice() {
	req := s.validReq
	req.ProductKey = "secCloud"
	req.Currency = "USD"

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)

	sub := s.GetGateway().CreatedSubscriptions[0]
	s.Equal("price_sek_sec", sub.PriceID)
	s.Equal("usd", sub.Currency)
}

func (s *CheckoutServiceSuite) TestSubscribeEURWithoutConfiguredPriceFallsBack() {
	req := s.validReq
	req.Currency = "EUR"

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)

	sub := s.GetGateway().CreatedSubscriptions[0]
	s.Equal("price_sek_e5", sub.PriceID)
}

func (s *CheckoutServiceSuite) TestSubscribeWithCoupon() {
	req := s.validReq
	req.CouponID = "promo_1"

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)

	sub := s.GetGateway().CreatedSubscriptions[0]
	s.Equal("promo_1", sub.PromotionCodeID)
}

// ---- subscription creation: provider failures ----

func (s *CheckoutServiceSuite) TestSubscribeCustomerCreationFails() {
	s.GetGateway().CustomerErr = ierr.NewError("card declined").
		WithHint("Your card was declined.").
		Mark(ierr.ErrProvider)

	_, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().Error(err)
	s.True(ierr.IsProvider(err))
	s.Empty(s.GetGateway().CreatedSubscriptions, "no subscription after customer failure")
	s.Empty(s.GetMailer().Confirmations)
}

func (s *CheckoutServiceSuite) TestSubscribeSubscriptionCreationFails() {
	s.GetGateway().SubscriptionErr = ierr.NewError("no such price").
		WithHint("No such price: price_sek_e5").
		Mark(ierr.ErrProvider)

	_, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().Error(err)
	s.True(ierr.IsProvider(err))
	s.Empty(s.GetMailer().Confirmations, "no email after subscription failure")
}

// ---- confirmation email ----

func (s *CheckoutServiceSuite) TestSubscribeSendsConfirmationAndWelcome() {
	_, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().NoError(err)

	mailer := s.GetMailer()
	s.Require().Len(mailer.Confirmations, 1)
	s.Require().Len(mailer.Welcomes, 1)

	conf := mailer.Confirmations[0]
	s.Equal("anna@example.se", conf.ToAddress)
	s.Equal("Premium Paket E5", conf.ProductName)
	s.Equal(int64(2), conf.Quantity)
	s.Equal("2026-03-28", conf.FirstBillingDate)
	s.Empty(conf.DiscountDescription)

	// 2 x 899 plus 25% tax
	s.True(conf.Quote.Subtotal.Equal(decimal.NewFromInt(1798)), "subtotal %s", conf.Quote.Subtotal)
	s.True(conf.Quote.Tax.Equal(decimal.NewFromFloat(449.5)), "tax %s", conf.Quote.Tax)
	s.True(conf.Quote.Total.Equal(decimal.NewFromFloat(2247.5)), "total %s", conf.Quote.Total)

	s.Equal("anna@example.se", mailer.Welcomes[0].ToAddress)
}

func (s *CheckoutServiceSuite) TestSubscribeEmailIncludesSubscriptionDiscount() {
	gateway := s.GetGateway()
	gateway.SubscriptionDiscounts["sub_test_1"] = &payments.Discount{
		PercentOff: decimal.NewFromInt(10),
	}

	req := s.validReq
	req.CouponID = "promo_1"

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)

	s.Equal([]string{"sub_test_1"}, gateway.DiscountLookups)

	conf := s.GetMailer().Confirmations[0]
	s.Equal("10% rabatt", conf.DiscountDescription)
	s.True(conf.Quote.Discount.Equal(decimal.NewFromFloat(179.8)), "discount %s", conf.Quote.Discount)
}

func (s *CheckoutServiceSuite) TestSubscribeWithoutCouponSkipsDiscountFetch() {
	_, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().NoError(err)
	s.Empty(s.GetGateway().DiscountLookups)
}

func (s *CheckoutServiceSuite) TestSubscribeEmailFailureDoesNotFailRequest() {
	s.GetMailer().FailWith = ierr.NewError("resend unavailable").Mark(ierr.ErrEmailDelivery)

	resp, err := s.service.Subscribe(s.ctx, s.validReq)
	s.Require().NoError(err, "email failure must not surface")
	s.True(resp.Success)
}

func (s *CheckoutServiceSuite) TestSubscribeDiscountFetchFailureDoesNotFailRequest() {
	s.GetGateway().DiscountErr = ierr.NewError("stripe unavailable").Mark(ierr.ErrProvider)

	req := s.validReq
	req.CouponID = "promo_1"

	resp, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)
	s.True(resp.Success)

	// email still goes out, just without a discount row
	conf := s.GetMailer().Confirmations[0]
	s.Empty(conf.DiscountDescription)
	s.True(conf.Quote.Discount.IsZero())
}

func (s *CheckoutServiceSuite) TestSubscribeCountryOmitted() {
	req := s.validReq
	req.Country = ""

	_, err := s.service.Subscribe(s.ctx, req)
	s.Require().NoError(err)

	customer := s.GetGateway().CreatedCustomers[0]
	s.Empty(customer.Country)
}
