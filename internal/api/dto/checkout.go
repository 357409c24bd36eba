package dto

import (
	ierr "github.com/molnpaket/checkout/internal/errors"
	"github.com/molnpaket/checkout/internal/validator"
	"github.com/shopspring/decimal"
)

// Caller-facing validation messages. The checkout front end is Swedish.
const (
	MsgMissingRequiredFields = "Obligatoriska fält saknas."
	MsgUnknownProduct        = "Ogiltigt paket."
)

// CheckCouponRequest is the body of POST /api/check-coupon
type CheckCouponRequest struct {
	Code string `json:"code"`
}

// CheckCouponResponse reports whether a promotion code is redeemable.
// PercentOff and AmountOff carry the raw discount figures; AmountOff is in
// currency decimal, not minor units.
type CheckCouponResponse struct {
	Valid       bool             `json:"valid"`
	CouponID    string           `json:"couponId,omitempty"`
	Description string           `json:"description,omitempty"`
	PercentOff  *decimal.Decimal `json:"percentOff,omitempty"`
	AmountOff   *decimal.Decimal `json:"amountOff,omitempty"`
}

// SubscribeRequest is the body of POST /api/subscribe
type SubscribeRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	Name            string `json:"name"`
	Company         string `json:"company"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	Currency        string `json:"currency"`
	PaymentMethodID string `json:"paymentMethodId"`
	ProductKey      string `json:"productKey"`
	Quantity        int64  `json:"quantity"`
	CouponID        string `json:"couponId"`
}

// Validate rejects the request before any provider call when a required
// field is absent.
func (r *SubscribeRequest) Validate() error {
	var missing []string
	required := map[string]string{
		"email":           r.Email,
		"name":            r.Name,
		"paymentMethodId": r.PaymentMethodID,
		"productKey":      r.ProductKey,
	}
	for field, value := range required {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if r.Quantity <= 0 {
		missing = append(missing, "quantity")
	}

	if len(missing) > 0 {
		return ierr.NewError("missing required fields").
			WithHint(MsgMissingRequiredFields).
			WithReportableDetails(map[string]any{
				"fields": missing,
			}).
			Mark(ierr.ErrValidation)
	}

	return validator.ValidateRequest(r)
}

// SubscribeResponse is the success payload of POST /api/subscribe
type SubscribeResponse struct {
	Success          bool   `json:"success"`
	CustomerID       string `json:"customerId"`
	SubscriptionID   string `json:"subscriptionId"`
	Status           string `json:"status"`
	FirstBillingDate string `json:"firstBillingDate"`
}
